package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger.
// Useful for development when you want to see configuration events in the
// console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Errors and rejected
// submissions are logged at Warn level, everything else at Debug.
func (a *SlogAdapter) Log(event Event) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
		slog.String("source", event.Source.String()),
	}

	// Add optional identifiers
	if event.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", event.RequestID))
	}
	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote", event.RemoteAddr))
	}
	if event.ItemID != "" {
		attrs = append(attrs, slog.String("item", event.ItemID))
	}

	// Add type-specific attributes
	switch {
	case event.Storage != nil:
		attrs = append(attrs,
			slog.Int("size", event.Storage.Size),
			slog.String("config_version", event.Storage.ConfigVersion),
		)
		if event.Storage.Path != "" {
			attrs = append(attrs, slog.String("path", event.Storage.Path))
		}
		if event.Storage.VersionMismatch {
			attrs = append(attrs, slog.Bool("version_mismatch", true))
		}
	case event.Validation != nil:
		attrs = append(attrs, slog.Bool("valid", event.Validation.Valid))
		if !event.Validation.Valid {
			level = slog.LevelWarn
		}
		for _, f := range event.Validation.Fields {
			attrs = append(attrs, slog.String("field."+f.ItemID, f.Message))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "config event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
