package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/webconf-project/webconf-go/pkg/log"
)

func TestFormatStorageEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	event := log.Event{
		Timestamp: ts,
		RequestID: "abc12345-6789-0123-4567-890abcdef012",
		Category:  log.CategoryStore,
		Source:    log.SourceHTTP,
		Storage:   &log.StorageEvent{Size: 128, ConfigVersion: "v001", Path: "/data/config.img"},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.123456Z",
		"[req:abc12345]",
		"HTTP",
		"STORE",
		"Size: 128 bytes",
		"Config version: v001",
		"Path: /data/config.img",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatValidationEvent(t *testing.T) {
	event := log.Event{
		Timestamp:  time.Now(),
		Category:   log.CategoryValidation,
		Source:     log.SourceHTTP,
		RemoteAddr: "10.0.0.7:4000",
		Validation: &log.ValidationEvent{Fields: []log.FieldError{{ItemID: "port", Message: "out of range"}}},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "[req:-]") {
		t.Errorf("expected placeholder request ID, got:\n%s", output)
	}
	if !strings.Contains(output, "from 10.0.0.7:4000") {
		t.Errorf("expected remote address, got:\n%s", output)
	}
	if !strings.Contains(output, "Result: rejected") || !strings.Contains(output, "port: out of range") {
		t.Errorf("expected validation details, got:\n%s", output)
	}
}

func TestRunViewFiltered(t *testing.T) {
	path := writeLog(t, sessionEvents())

	src := log.SourceStartup
	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{Source: &src}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	output := buf.String()

	if got := strings.Count(output, "STARTUP"); got != 2 {
		t.Errorf("expected 2 startup events, got %d:\n%s", got, output)
	}
	if strings.Contains(output, "HTTP") {
		t.Errorf("HTTP events should be filtered:\n%s", output)
	}
	if !strings.Contains(output, "defaults applied") {
		t.Errorf("expected version mismatch note:\n%s", output)
	}
}

func TestParseFlags(t *testing.T) {
	c, err := ParseCategoryFlag("validation")
	if err != nil || c != log.CategoryValidation {
		t.Errorf("ParseCategoryFlag(validation) = %v, %v", c, err)
	}
	if _, err := ParseCategoryFlag("bogus"); err == nil {
		t.Error("expected error for unknown category")
	}

	s, err := ParseSourceFlag("Http")
	if err != nil || s != log.SourceHTTP {
		t.Errorf("ParseSourceFlag(Http) = %v, %v", s, err)
	}
	if _, err := ParseSourceFlag("radio"); err == nil {
		t.Error("expected error for unknown source")
	}
}
