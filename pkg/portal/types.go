package portal

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/webconf-project/webconf-go/pkg/log"
	"github.com/webconf-project/webconf-go/pkg/param"
	"github.com/webconf-project/webconf-go/pkg/storage"
)

// Portal errors.
var (
	ErrInvalidConfig  = errors.New("invalid portal configuration")
	ErrNotInitialized = errors.New("portal not initialized")
)

// DefaultAuthUser is the user name of the config page login.
const DefaultAuthUser = "admin"

// Validator checks a submitted form before it is applied. It attaches
// messages with Tree.SetErrorMessage and returns false to reject the
// submission.
type Validator func(tree *param.Tree, req param.Request) bool

// Config configures a Portal.
type Config struct {
	// Title is shown as the page title.
	Title string

	// ConfigVersion marks the layout of the stored image. It is at most
	// storage.VersionLength bytes. A stored image with another marker is
	// ignored and defaults are applied.
	ConfigVersion string

	// ImagePath is the file the storage image is persisted to. Empty keeps
	// the image in memory only.
	ImagePath string

	// AuthUser is the login name for the config page (default: "admin").
	AuthUser string

	// AuthPasswordID names the password parameter protecting the config
	// page. Empty, or an empty password value, disables the login.
	AuthPasswordID string

	// Validator is called on every submission (optional).
	Validator Validator

	// OnConfigSaved is called after the image was stored (optional).
	OnConfigSaved func()

	// Logger is the optional logger for debug output.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// EventLogger receives configuration events (optional).
	EventLogger log.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Title:         "webconf",
		ConfigVersion: "init",
		AuthUser:      DefaultAuthUser,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.ConfigVersion == "" {
		return fmt.Errorf("%w: config version is empty", ErrInvalidConfig)
	}
	if len(c.ConfigVersion) > storage.VersionLength {
		return fmt.Errorf("%w: config version %q longer than %d bytes",
			ErrInvalidConfig, c.ConfigVersion, storage.VersionLength)
	}
	return nil
}
