package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/webconf-project/webconf-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	EventsBySource   map[log.Source]int
	Requests         map[string]int
	Remotes          map[string]int
	Rejected         int
	Saves            int
	DefaultsApplied  int
	Errors           int
	RejectedFields   map[string]int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := collectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func collectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		EventsBySource:   make(map[log.Source]int),
		Requests:         make(map[string]int),
		Remotes:          make(map[string]int),
		RejectedFields:   make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++
		stats.EventsBySource[event.Source]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		if event.RequestID != "" {
			stats.Requests[event.RequestID]++
		}
		if event.RemoteAddr != "" {
			stats.Remotes[event.RemoteAddr]++
		}

		switch event.Category {
		case log.CategoryStore:
			stats.Saves++
		case log.CategoryDefaults:
			stats.DefaultsApplied++
		}
		if event.Validation != nil && !event.Validation.Valid {
			stats.Rejected++
			for _, f := range event.Validation.Fields {
				stats.RejectedFields[f.ItemID]++
			}
		}
		if event.Error != nil {
			stats.Errors++
		}
	}
	return stats, nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Config Event Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration: %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Requests: %d\n", len(stats.Requests))
	fmt.Fprintf(w, "Saves: %d\n", stats.Saves)
	fmt.Fprintf(w, "Defaults applied: %d\n", stats.DefaultsApplied)
	fmt.Fprintf(w, "Rejected submissions: %d\n", stats.Rejected)
	fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "By Category:")
	for c := log.CategoryRender; c <= log.CategoryError; c++ {
		if n := stats.EventsByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", c.String(), n)
		}
	}

	fmt.Fprintln(w, "By Source:")
	for s := log.SourceStartup; s <= log.SourceConsole; s++ {
		if n := stats.EventsBySource[s]; n > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", s.String(), n)
		}
	}

	if len(stats.RejectedFields) > 0 {
		fmt.Fprintln(w, "Rejected Fields:")
		for _, id := range sortedKeys(stats.RejectedFields) {
			fmt.Fprintf(w, "  %-12s %d\n", id, stats.RejectedFields[id])
		}
	}

	if len(stats.Remotes) > 0 {
		fmt.Fprintln(w, "Clients:")
		for _, addr := range sortedKeys(stats.Remotes) {
			fmt.Fprintf(w, "  %-22s %d events\n", addr, stats.Remotes[addr])
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
