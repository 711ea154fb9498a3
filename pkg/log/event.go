package log

import "time"

// Event represents a configuration event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RequestID correlates the events of one web request or console
	// command (UUID).
	RequestID string `cbor:"2,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Source indicates what triggered the event.
	Source Source `cbor:"4,keyasint"`

	// RemoteAddr is the peer address (IP:port) for HTTP events.
	RemoteAddr string `cbor:"5,keyasint,omitempty"`

	// ItemID is the config item concerned, if a single one.
	ItemID string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (at most one of these will be set).
	Storage    *StorageEvent    `cbor:"7,keyasint,omitempty"` // Store / load
	Validation *ValidationEvent `cbor:"8,keyasint,omitempty"` // Form validation
	Error      *ErrorEventData  `cbor:"9,keyasint,omitempty"` // Errors
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryRender indicates the form was rendered.
	CategoryRender Category = 0
	// CategoryUpdate indicates submitted values were applied to the tree.
	CategoryUpdate Category = 1
	// CategoryStore indicates the tree was stored.
	CategoryStore Category = 2
	// CategoryLoad indicates the tree was loaded.
	CategoryLoad Category = 3
	// CategoryDefaults indicates default values were applied.
	CategoryDefaults Category = 4
	// CategoryValidation indicates a submission was validated.
	CategoryValidation Category = 5
	// CategoryError indicates an error event.
	CategoryError Category = 6
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRender:
		return "RENDER"
	case CategoryUpdate:
		return "UPDATE"
	case CategoryStore:
		return "STORE"
	case CategoryLoad:
		return "LOAD"
	case CategoryDefaults:
		return "DEFAULTS"
	case CategoryValidation:
		return "VALIDATION"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the category with the given name.
func ParseCategory(name string) (Category, bool) {
	for c := CategoryRender; c <= CategoryError; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

// Source indicates what triggered an event.
type Source uint8

const (
	// SourceStartup indicates device startup.
	SourceStartup Source = 0
	// SourceHTTP indicates a web request.
	SourceHTTP Source = 1
	// SourceConsole indicates the interactive console.
	SourceConsole Source = 2
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceStartup:
		return "STARTUP"
	case SourceHTTP:
		return "HTTP"
	case SourceConsole:
		return "CONSOLE"
	default:
		return "UNKNOWN"
	}
}

// StorageEvent captures a store or load of the configuration image.
type StorageEvent struct {
	// Size is the image size in bytes.
	Size int `cbor:"1,keyasint"`

	// ConfigVersion is the version marker written or found.
	ConfigVersion string `cbor:"2,keyasint,omitempty"`

	// Path is the file backing the image, if any.
	Path string `cbor:"3,keyasint,omitempty"`

	// VersionMismatch is set on load when the stored marker differed and
	// defaults were applied instead.
	VersionMismatch bool `cbor:"4,keyasint,omitempty"`
}

// ValidationEvent captures the outcome of a form validation.
type ValidationEvent struct {
	// Valid is true when the submission was accepted.
	Valid bool `cbor:"1,keyasint"`

	// Fields lists the parameters that carried an error message.
	Fields []FieldError `cbor:"2,keyasint,omitempty"`
}

// FieldError is the validation message of one parameter.
type FieldError struct {
	ItemID  string `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint"`
}

// ErrorEventData captures errors.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}

// ParseSource returns the source with the given name.
func ParseSource(name string) (Source, bool) {
	for s := SourceStartup; s <= SourceConsole; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}
