package discovery

import (
	"errors"
	"time"
)

// Service type constants for mDNS.
const (
	// ServiceTypePortal is the service type of the config portal.
	ServiceTypePortal = "_http._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// DefaultPort is the default HTTP port.
	DefaultPort = 80
)

// TXT record keys.
const (
	TXTKeyPath          = "path"  // Config page path
	TXTKeyConfigVersion = "cv"    // Config version marker
	TXTKeyModel         = "model" // Model name (optional)
)

// Limits.
const (
	// MaxInstanceNameLen is the DNS label limit for instance names.
	MaxInstanceNameLen = 63
)

// Discovery errors.
var (
	ErrInvalidInstanceName = errors.New("invalid instance name")
	ErrMissingRequired     = errors.New("missing required TXT record")
	ErrUnknownInterface    = errors.New("unknown network interface")
)

// AdvertiserConfig configures an MDNSAdvertiser.
type AdvertiserConfig struct {
	// Interface limits advertising to one network interface. Empty means
	// all interfaces.
	Interface string

	// TTL overrides the record TTL. Zero keeps the library default.
	TTL time.Duration
}

// PortalInfo describes an advertised config portal.
type PortalInfo struct {
	// InstanceName is the visible device name.
	InstanceName string

	// Port is the HTTP port (default: 80).
	Port uint16

	// Path is the config page path (default: "/").
	Path string

	// ConfigVersion is the config version marker of the device.
	ConfigVersion string

	// Model is an optional model name.
	Model string
}
