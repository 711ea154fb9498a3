package commands

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/webconf-project/webconf-go/pkg/log"
)

func TestRunFilter(t *testing.T) {
	path := writeLog(t, sessionEvents())

	tests := []struct {
		name string
		opts FilterOptions
		want int
	}{
		{"by request", FilterOptions{RequestID: "22222222-bbbb"}, 3},
		{"by category", FilterOptions{Category: "validation"}, 2},
		{"by source", FilterOptions{Source: "startup"}, 2},
		{"by time", FilterOptions{TimeStart: "2026-03-02T09:01:00Z", TimeEnd: "2026-03-02T09:02:00Z"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Output = filepath.Join(t.TempDir(), "out.wlog")
			n, err := RunFilter(path, tt.opts)
			if err != nil {
				t.Fatalf("RunFilter failed: %v", err)
			}
			if n != tt.want {
				t.Errorf("RunFilter wrote %d events, want %d", n, tt.want)
			}

			r, err := log.NewReader(tt.opts.Output)
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()
			count := 0
			for {
				if _, err := r.Next(); err == io.EOF {
					break
				} else if err != nil {
					t.Fatal(err)
				}
				count++
			}
			if count != tt.want {
				t.Errorf("output has %d events, want %d", count, tt.want)
			}
		})
	}
}

func TestRunFilterErrors(t *testing.T) {
	path := writeLog(t, sessionEvents())
	out := filepath.Join(t.TempDir(), "out.wlog")

	if _, err := RunFilter(path, FilterOptions{}); err == nil {
		t.Error("expected error without output")
	}
	if _, err := RunFilter(path, FilterOptions{Output: out, TimeStart: "yesterday"}); err == nil {
		t.Error("expected error for bad time")
	}
	if _, err := RunFilter(path, FilterOptions{Output: out, Category: "nope"}); err == nil {
		t.Error("expected error for bad category")
	}
}
