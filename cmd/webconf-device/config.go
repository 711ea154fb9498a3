package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds the daemon configuration. It is read from an optional YAML
// file; command-line flags override file values.
type Config struct {
	// Schema is the parameter tree file (.yaml, .yml, .json, .jsonc).
	Schema string `yaml:"schema"`

	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// Image is the file the storage image is persisted to.
	Image string `yaml:"image"`

	// Name is the mDNS instance name (default: schema title).
	Name string `yaml:"name"`

	// MDNS enables the _http._tcp announcement.
	MDNS bool `yaml:"mdns"`

	// Interface limits mDNS to one network interface.
	Interface string `yaml:"interface"`

	// EventLog is the CBOR event log file (optional).
	EventLog string `yaml:"event_log"`

	// EventLogMaxSize rotates the event log past this many bytes.
	EventLogMaxSize int64 `yaml:"event_log_max_size"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Interactive starts the command console.
	Interactive bool `yaml:"interactive"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Listen:          ":8080",
		Image:           "webconf.img",
		MDNS:            true,
		EventLogMaxSize: 1 << 20,
		LogLevel:        "info",
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Schema == "" {
		return fmt.Errorf("schema file is required")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.EventLogMaxSize < 0 {
		return fmt.Errorf("event log size must not be negative")
	}
	return nil
}

// flags binds the command-line flags.
type flags struct {
	fs         *pflag.FlagSet
	configFile string
	cfg        Config
}

func newFlags() *flags {
	f := &flags{fs: pflag.NewFlagSet("webconf-device", pflag.ContinueOnError)}
	f.fs.StringVarP(&f.configFile, "config", "c", "", "Daemon configuration file (YAML)")
	f.fs.StringVarP(&f.cfg.Schema, "schema", "s", "", "Parameter tree file (YAML or JSONC)")
	f.fs.StringVarP(&f.cfg.Listen, "listen", "l", "", "HTTP listen address")
	f.fs.StringVar(&f.cfg.Image, "image", "", "Storage image file")
	f.fs.StringVar(&f.cfg.Name, "name", "", "mDNS instance name")
	f.fs.BoolVar(&f.cfg.MDNS, "mdns", true, "Announce the portal via mDNS")
	f.fs.StringVar(&f.cfg.Interface, "interface", "", "Network interface for mDNS")
	f.fs.StringVar(&f.cfg.EventLog, "event-log", "", "File path for config event logging (CBOR format)")
	f.fs.StringVar(&f.cfg.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.fs.BoolVarP(&f.cfg.Interactive, "interactive", "i", false, "Start the interactive console")
	return f
}

// resolve merges the defaults, the config file and the flags that were
// set explicitly.
func (f *flags) resolve(args []string) (Config, error) {
	if err := f.fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if f.configFile != "" {
		var err error
		if cfg, err = LoadConfig(f.configFile); err != nil {
			return cfg, err
		}
	}

	overrides := map[string]func(){
		"schema":      func() { cfg.Schema = f.cfg.Schema },
		"listen":      func() { cfg.Listen = f.cfg.Listen },
		"image":       func() { cfg.Image = f.cfg.Image },
		"name":        func() { cfg.Name = f.cfg.Name },
		"mdns":        func() { cfg.MDNS = f.cfg.MDNS },
		"interface":   func() { cfg.Interface = f.cfg.Interface },
		"event-log":   func() { cfg.EventLog = f.cfg.EventLog },
		"log-level":   func() { cfg.LogLevel = f.cfg.LogLevel },
		"interactive": func() { cfg.Interactive = f.cfg.Interactive },
	}
	for name, apply := range overrides {
		if f.fs.Changed(name) {
			apply()
		}
	}
	return cfg, cfg.Validate()
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
