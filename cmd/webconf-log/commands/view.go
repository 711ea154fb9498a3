// Package commands implements the webconf-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/webconf-project/webconf-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Category  *log.Category
	Source    *log.Source
	RequestID string
	ItemID    string
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{
		Category:  f.Category,
		Source:    f.Source,
		RequestID: f.RequestID,
		ItemID:    f.ItemID,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [req:id] SOURCE CATEGORY remote
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	reqID := shortenRequestID(event.RequestID)
	if reqID == "" {
		reqID = "-"
	}

	fmt.Fprintf(w, "%s [req:%s] %-7s %s", ts, reqID, event.Source.String(), event.Category.String())
	if event.RemoteAddr != "" {
		fmt.Fprintf(w, " from %s", event.RemoteAddr)
	}
	fmt.Fprintln(w)

	if event.ItemID != "" {
		fmt.Fprintf(w, "  Item: %s\n", event.ItemID)
	}

	switch {
	case event.Storage != nil:
		formatStorageDetails(w, event.Storage)
	case event.Validation != nil:
		formatValidationDetails(w, event.Validation)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenRequestID returns the first 8 characters of the request ID.
func shortenRequestID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatStorageDetails(w io.Writer, s *log.StorageEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", s.Size)
	if s.ConfigVersion != "" {
		fmt.Fprintf(w, "  Config version: %s\n", s.ConfigVersion)
	}
	if s.Path != "" {
		fmt.Fprintf(w, "  Path: %s\n", s.Path)
	}
	if s.VersionMismatch {
		fmt.Fprintln(w, "  Stored version differs, defaults applied")
	}
}

func formatValidationDetails(w io.Writer, v *log.ValidationEvent) {
	if v.Valid {
		fmt.Fprintln(w, "  Result: accepted")
	} else {
		fmt.Fprintln(w, "  Result: rejected")
	}
	for _, f := range v.Fields {
		fmt.Fprintf(w, "  %s: %s\n", f.ItemID, f.Message)
	}
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Error: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// RunView reads the log file and writes the matching events to w.
func RunView(path string, filter ViewFilter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// ParseCategoryFlag parses a category name, case-insensitively.
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("unknown category: %s (valid: render, update, store, load, defaults, validation, error)", s)
	}
	return c, nil
}

// ParseSourceFlag parses a source name, case-insensitively.
func ParseSourceFlag(s string) (log.Source, error) {
	src, ok := log.ParseSource(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("unknown source: %s (valid: startup, http, console)", s)
	}
	return src, nil
}
