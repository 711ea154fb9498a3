package log

import (
	"testing"
	"time"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	event := Event{Timestamp: time.Now(), Category: CategoryRender}
	logger.Log(event)

	event.Storage = &StorageEvent{Size: 10}
	logger.Log(event)

	event.Storage = nil
	event.Error = &ErrorEventData{Message: "test error"}
	logger.Log(event)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
}
