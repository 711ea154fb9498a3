// Command webconf-log views and analyzes config event logs.
//
// Log files are written by webconf-device with the --event-log flag.
//
// Usage:
//
//	webconf-log <command> [flags] <file.wlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON lines or CSV
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View rejected and accepted submissions
//	webconf-log view --category validation device.wlog
//
//	# Follow one request
//	webconf-log view --request 3f2a9c1e-... device.wlog
//
//	# Export to CSV
//	webconf-log export --format csv -o events.csv device.wlog
//
//	# Show statistics
//	webconf-log stats device.wlog
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/webconf-project/webconf-go/cmd/webconf-log/commands"
)

const usage = `webconf-log - Config Event Log Analyzer

Usage:
  webconf-log <command> [flags] <file.wlog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON lines or CSV
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "webconf-log <command> --help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "view":
		err = runView(args)
	case "export":
		err = runExport(args)
	case "filter":
		err = runFilter(args)
	case "stats":
		err = runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet creates a flag set with a usage text for the command.
func newFlagSet(name, summary string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "webconf-log %s - %s\n\nUsage:\n  webconf-log %s [flags] <file.wlog>\n\nFlags:\n", name, summary, name)
		fs.PrintDefaults()
	}
	return fs
}

// logPath returns the single positional argument.
func logPath(fs *pflag.FlagSet) (string, error) {
	if fs.NArg() < 1 {
		fs.Usage()
		return "", fmt.Errorf("log file path required")
	}
	return fs.Arg(0), nil
}

func runView(args []string) error {
	fs := newFlagSet("view", "View log file in human-readable format")
	category := fs.StringP("category", "c", "", "Filter by category (render, update, store, load, defaults, validation, error)")
	source := fs.StringP("source", "s", "", "Filter by source (startup, http, console)")
	request := fs.StringP("request", "r", "", "Filter by request ID")
	item := fs.String("item", "", "Filter by item ID")

	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := logPath(fs)
	if err != nil {
		return err
	}

	filter := commands.ViewFilter{RequestID: *request, ItemID: *item}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			return err
		}
		filter.Category = &c
	}
	if *source != "" {
		s, err := commands.ParseSourceFlag(*source)
		if err != nil {
			return err
		}
		filter.Source = &s
	}

	return commands.RunView(path, filter, os.Stdout)
}

func runExport(args []string) error {
	fs := newFlagSet("export", "Export log file to JSON lines or CSV")
	format := fs.StringP("format", "f", "jsonl", "Output format (jsonl, csv)")
	output := fs.StringP("output", "o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := logPath(fs)
	if err != nil {
		return err
	}
	return commands.RunExport(path, *format, *output)
}

func runFilter(args []string) error {
	fs := newFlagSet("filter", "Filter log file and write to new file")
	var opts commands.FilterOptions
	fs.StringVarP(&opts.Output, "output", "o", "", "Output file (required)")
	fs.StringVar(&opts.RequestID, "request", "", "Filter by request ID")
	fs.StringVar(&opts.ItemID, "item", "", "Filter by item ID")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Include events at or after this time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Include events before this time (RFC3339)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category")
	fs.StringVar(&opts.Source, "source", "", "Filter by source")

	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := logPath(fs)
	if err != nil {
		return err
	}

	n, err := commands.RunFilter(path, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d events to %s\n", n, opts.Output)
	return nil
}

func runStats(args []string) error {
	fs := newFlagSet("stats", "Show statistics about the log file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := logPath(fs)
	if err != nil {
		return err
	}
	return commands.RunStats(path, os.Stdout)
}
