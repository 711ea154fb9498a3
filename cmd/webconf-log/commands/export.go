package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/webconf-project/webconf-go/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

// jsonEvent is the JSONL shape of an event, with names instead of codes.
type jsonEvent struct {
	Timestamp  time.Time            `json:"timestamp"`
	RequestID  string               `json:"request_id,omitempty"`
	Category   string               `json:"category"`
	Source     string               `json:"source"`
	RemoteAddr string               `json:"remote_addr,omitempty"`
	ItemID     string               `json:"item_id,omitempty"`
	Storage    *log.StorageEvent    `json:"storage,omitempty"`
	Validation *log.ValidationEvent `json:"validation,omitempty"`
	Error      *log.ErrorEventData  `json:"error,omitempty"`
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		out := jsonEvent{
			Timestamp:  event.Timestamp,
			RequestID:  event.RequestID,
			Category:   event.Category.String(),
			Source:     event.Source.String(),
			RemoteAddr: event.RemoteAddr,
			ItemID:     event.ItemID,
			Storage:    event.Storage,
			Validation: event.Validation,
			Error:      event.Error,
		}
		if err := encoder.Encode(out); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "request_id", "source", "category", "remote_addr", "item_id", "size", "valid", "error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		size, valid, errMsg := "", "", ""
		if event.Storage != nil {
			size = strconv.Itoa(event.Storage.Size)
		}
		if event.Validation != nil {
			valid = strconv.FormatBool(event.Validation.Valid)
		}
		if event.Error != nil {
			errMsg = event.Error.Message
		}

		record := []string{
			event.Timestamp.UTC().Format(time.RFC3339Nano),
			event.RequestID,
			event.Source.String(),
			event.Category.String(),
			event.RemoteAddr,
			event.ItemID,
			size,
			valid,
			errMsg,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return cw.Error()
}
