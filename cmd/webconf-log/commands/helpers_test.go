package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/webconf-project/webconf-go/pkg/log"
)

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// sessionEvents is a device start followed by one rejected and one
// accepted submission.
func sessionEvents() []log.Event {
	return []log.Event{
		{Timestamp: baseTime, Category: log.CategoryDefaults, Source: log.SourceStartup,
			Storage: &log.StorageEvent{Size: 52, ConfigVersion: "v001", VersionMismatch: true}},
		{Timestamp: baseTime.Add(time.Second), Category: log.CategoryStore, Source: log.SourceStartup,
			Storage: &log.StorageEvent{Size: 52, ConfigVersion: "v001", Path: "/data/config.img"}},
		{Timestamp: baseTime.Add(time.Minute), RequestID: "11111111-aaaa", Category: log.CategoryValidation,
			Source: log.SourceHTTP, RemoteAddr: "192.168.4.2:50000",
			Validation: &log.ValidationEvent{Fields: []log.FieldError{{ItemID: "thingName", Message: "too short"}}}},
		{Timestamp: baseTime.Add(2 * time.Minute), RequestID: "22222222-bbbb", Category: log.CategoryValidation,
			Source: log.SourceHTTP, RemoteAddr: "192.168.4.2:50001",
			Validation: &log.ValidationEvent{Valid: true}},
		{Timestamp: baseTime.Add(2 * time.Minute), RequestID: "22222222-bbbb", Category: log.CategoryUpdate,
			Source: log.SourceHTTP, RemoteAddr: "192.168.4.2:50001"},
		{Timestamp: baseTime.Add(2 * time.Minute), RequestID: "22222222-bbbb", Category: log.CategoryError,
			Source: log.SourceHTTP, Error: &log.ErrorEventData{Message: "disk full", Context: "save image"}},
	}
}

func writeLog(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.wlog")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}
