// Command webconf-device serves a configuration portal for a parameter
// tree declared in a schema file.
//
// The device:
//   - Builds the parameter tree from a YAML or JSONC schema
//   - Loads stored values, or applies defaults on a config version change
//   - Serves the config page and a /health endpoint
//   - Announces itself via mDNS as _http._tcp
//   - Optionally records config events and offers an interactive console
//
// Usage:
//
//	webconf-device [flags]
//
// Flags:
//
//	-c, --config string      Daemon configuration file (YAML)
//	-s, --schema string      Parameter tree file (YAML or JSONC)
//	-l, --listen string      HTTP listen address (default ":8080")
//	    --image string       Storage image file (default "webconf.img")
//	    --name string        mDNS instance name
//	    --mdns               Announce the portal via mDNS (default true)
//	    --interface string   Network interface for mDNS
//	    --event-log string   File path for config event logging (CBOR format)
//	    --log-level string   Log level: debug, info, warn, error
//	-i, --interactive        Start the interactive console
//
// Examples:
//
//	# Serve the thermostat schema
//	webconf-device --schema thermostat.yaml
//
//	# Use a daemon config and record events
//	webconf-device --config /etc/webconf/device.yaml --event-log events.wlog
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/webconf-project/webconf-go/cmd/webconf-device/interactive"
	"github.com/webconf-project/webconf-go/pkg/discovery"
	"github.com/webconf-project/webconf-go/pkg/log"
	"github.com/webconf-project/webconf-go/pkg/portal"
	"github.com/webconf-project/webconf-go/pkg/schema"
)

func main() {
	f := newFlags()
	cfg, err := f.resolve(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	level, _ := parseLevel(cfg.LogLevel)
	logOut := &logWriter{w: os.Stderr}
	logger := newLogger(logOut, level)
	slog.SetDefault(logger)

	s, err := schema.ReadFile(cfg.Schema)
	if err != nil {
		return err
	}
	tree, root, err := s.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Schema, err)
	}
	logger.Info("schema loaded", "file", cfg.Schema, "items", tree.Len(), "version", s.ConfigVersion)

	events, closeEvents, err := newEventLogger(cfg, logger)
	if err != nil {
		return err
	}
	defer closeEvents()

	pcfg := portal.DefaultConfig()
	pcfg.Title = s.Title
	pcfg.ConfigVersion = s.ConfigVersion
	pcfg.ImagePath = cfg.Image
	pcfg.AuthPasswordID = s.AuthPassword
	pcfg.Validator = validateForm
	pcfg.OnConfigSaved = func() { logger.Info("configuration saved", "image", cfg.Image) }
	pcfg.Logger = logger
	pcfg.EventLogger = events

	p, err := portal.New(tree, root, pcfg)
	if err != nil {
		return err
	}
	if err := p.Init(); err != nil {
		return fmt.Errorf("init portal: %w", err)
	}

	srv := portal.NewServer(cfg.Listen, p)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", "error", err)
		}
	}()

	if cfg.MDNS {
		adv := discovery.NewMDNSAdvertiser(discovery.AdvertiserConfig{Interface: cfg.Interface})
		name := cfg.Name
		if name == "" {
			name = s.Title
		}
		info := &discovery.PortalInfo{
			InstanceName:  name,
			Port:          uint16(srv.Port()),
			ConfigVersion: s.ConfigVersion,
		}
		err := adv.Advertise(ctx, info)
		if errors.Is(err, discovery.ErrUnknownInterface) {
			return err
		}
		if err != nil {
			logger.Warn("mDNS announcement failed", "error", err)
		} else {
			logger.Info("announced via mDNS", "name", name, "service", discovery.ServiceTypePortal)
			defer adv.Stop()
		}
	}

	if cfg.Interactive {
		console, err := interactive.New(p)
		if err != nil {
			return err
		}
		// Every logger writes through logOut, so this also covers the
		// portal and the server.
		logOut.Set(console.Stdout())
		go console.Run(ctx, cancel)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	case <-ctx.Done():
	}
	return nil
}

// logWriter lets log output move to the console once it is running.
type logWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *logWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// Set redirects subsequent log output to w.
func (l *logWriter) Set(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w = w
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newEventLogger builds the config event sink: debug output through slog
// and, when configured, a rotating CBOR file.
func newEventLogger(cfg Config, logger *slog.Logger) (log.Logger, func(), error) {
	adapter := log.NewSlogAdapter(logger)
	if cfg.EventLog == "" {
		return adapter, func() {}, nil
	}

	file, err := log.NewRotatingFileLogger(cfg.EventLog, cfg.EventLogMaxSize)
	if err != nil {
		return nil, nil, fmt.Errorf("create event log: %w", err)
	}
	logger.Info("event logging enabled", "file", cfg.EventLog)
	return log.NewMultiLogger(adapter, file), func() { file.Close() }, nil
}
