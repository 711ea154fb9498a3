package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Schema errors.
var (
	ErrUnknownFormat = errors.New("unknown schema format")
	ErrUnknownType   = errors.New("unknown item type")
	ErrInvalidItem   = errors.New("invalid item")
)

// Format is a schema file syntax.
type Format uint8

const (
	FormatYAML Format = iota
	FormatJSONC
)

// Item types.
const (
	TypeGroup    = "group"
	TypeText     = "text"
	TypeNumber   = "number"
	TypePassword = "password"
	TypeCheckbox = "checkbox"
	TypeSelect   = "select"
)

// Schema is a declared parameter tree plus the portal settings that belong
// with it.
type Schema struct {
	// Title is the page title and default device name.
	Title string `yaml:"title" json:"title"`

	// ConfigVersion marks the storage layout. Change it whenever items are
	// added, removed or resized.
	ConfigVersion string `yaml:"config_version" json:"config_version"`

	// AuthPassword names the password item protecting the page (optional).
	AuthPassword string `yaml:"auth_password,omitempty" json:"auth_password,omitempty"`

	Root Item `yaml:"root" json:"root"`
}

// Item declares a group or a parameter.
type Item struct {
	ID    string `yaml:"id" json:"id"`
	Type  string `yaml:"type" json:"type"`
	Label string `yaml:"label,omitempty" json:"label,omitempty"`

	// Hidden items are stored but not rendered.
	Hidden bool `yaml:"hidden,omitempty" json:"hidden,omitempty"`

	// Group fields.
	Fieldset bool   `yaml:"fieldset,omitempty" json:"fieldset,omitempty"`
	Items    []Item `yaml:"items,omitempty" json:"items,omitempty"`

	// Parameter fields. Length includes the terminating NUL.
	Length      int    `yaml:"length,omitempty" json:"length,omitempty"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	CustomHTML  string `yaml:"custom_html,omitempty" json:"custom_html,omitempty"`

	// Checked is the checkbox default.
	Checked bool `yaml:"checked,omitempty" json:"checked,omitempty"`

	// Select fields.
	Options    []Option `yaml:"options,omitempty" json:"options,omitempty"`
	NameLength int      `yaml:"name_length,omitempty" json:"name_length,omitempty"`
}

// Option is one select entry.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Name  string `yaml:"name" json:"name"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSONC, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Parse decodes a schema. Unknown fields are rejected.
func Parse(data []byte, format Format) (*Schema, error) {
	var s Schema
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("parsing schema: %w", err)
		}
	case FormatJSONC:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("parsing schema: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}
	return &s, nil
}

// ReadFile reads and parses a schema file.
func ReadFile(path string) (*Schema, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
