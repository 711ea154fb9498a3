package param

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// CheckboxValue is the value a ticked checkbox submits and stores.
const CheckboxValue = "selected"

// TextSpec describes a text, number or password parameter.
type TextSpec struct {
	ID    string
	Label string

	// Buffer holds the value. When nil, a buffer of Length bytes is
	// allocated. When set, Length must be zero or equal len(Buffer).
	Buffer []byte
	Length int

	// Default is copied into the buffer by ApplyDefaultValue. An empty
	// default clears the buffer.
	Default string

	Placeholder string

	// CustomHTML is injected verbatim into the input element, e.g.
	// "min='1' max='60'".
	CustomHTML string
}

// CheckboxSpec describes a checkbox parameter.
type CheckboxSpec struct {
	ID     string
	Label  string
	Buffer []byte
	Length int

	// Default ticks the checkbox when defaults are applied.
	Default bool
}

// Option is one entry of a select parameter.
type Option struct {
	Value string
	Name  string
}

// SelectSpec describes a select parameter. Values and Names must have the
// same length. Values are truncated to the value buffer, names to
// NameLength when it is set.
type SelectSpec struct {
	ID     string
	Label  string
	Buffer []byte
	Length int

	Values     []string
	Names      []string
	NameLength int

	Default    string
	CustomHTML string
}

// NewText creates a text parameter.
func (t *Tree) NewText(spec TextSpec) (Handle, error) {
	return t.newTextKind(KindText, spec)
}

// NewNumber creates a number parameter. The value is stored as text.
func (t *Tree) NewNumber(spec TextSpec) (Handle, error) {
	return t.newTextKind(KindNumber, spec)
}

// NewPassword creates a password parameter.
func (t *Tree) NewPassword(spec TextSpec) (Handle, error) {
	return t.newTextKind(KindPassword, spec)
}

func (t *Tree) newTextKind(kind Kind, spec TextSpec) (Handle, error) {
	buf, err := resolveBuffer(spec.ID, spec.Buffer, spec.Length)
	if err != nil {
		return NoHandle, err
	}
	return t.insert(node{
		id:           spec.ID,
		kind:         kind,
		label:        spec.Label,
		buffer:       buf,
		defaultValue: spec.Default,
		hasDefault:   spec.Default != "",
		placeholder:  spec.Placeholder,
		customHTML:   spec.CustomHTML,
	})
}

// NewCheckbox creates a checkbox parameter. The buffer must be able to
// hold CheckboxValue.
func (t *Tree) NewCheckbox(spec CheckboxSpec) (Handle, error) {
	buf, err := resolveBuffer(spec.ID, spec.Buffer, spec.Length)
	if err != nil {
		return NoHandle, err
	}
	if len(buf) <= len(CheckboxValue) {
		return NoHandle, fmt.Errorf("%w: %q needs more than %d bytes", ErrInvalidLength, spec.ID, len(CheckboxValue))
	}
	n := node{
		id:     spec.ID,
		kind:   KindCheckbox,
		label:  spec.Label,
		buffer: buf,
	}
	if spec.Default {
		n.defaultValue = CheckboxValue
		n.hasDefault = true
	}
	return t.insert(n)
}

// NewSelect creates a select parameter.
func (t *Tree) NewSelect(spec SelectSpec) (Handle, error) {
	buf, err := resolveBuffer(spec.ID, spec.Buffer, spec.Length)
	if err != nil {
		return NoHandle, err
	}
	if len(spec.Values) != len(spec.Names) {
		return NoHandle, fmt.Errorf("%w: %q has %d values and %d names",
			ErrOptionMismatch, spec.ID, len(spec.Values), len(spec.Names))
	}
	if spec.NameLength < 0 {
		return NoHandle, fmt.Errorf("%w: %q name length %d", ErrInvalidLength, spec.ID, spec.NameLength)
	}

	options := make([]Option, len(spec.Values))
	for i := range spec.Values {
		name := spec.Names[i]
		if spec.NameLength > 0 {
			name = fitString(name, spec.NameLength)
		}
		options[i] = Option{
			Value: fitString(spec.Values[i], len(buf)),
			Name:  name,
		}
	}

	return t.insert(node{
		id:           spec.ID,
		kind:         KindSelect,
		label:        spec.Label,
		buffer:       buf,
		defaultValue: spec.Default,
		hasDefault:   spec.Default != "",
		customHTML:   spec.CustomHTML,
		options:      options,
		nameLength:   spec.NameLength,
	})
}

func resolveBuffer(id string, buf []byte, length int) ([]byte, error) {
	if buf == nil {
		if length < 1 {
			return nil, fmt.Errorf("%w: %q length %d", ErrInvalidLength, id, length)
		}
		return make([]byte, length), nil
	}
	if len(buf) < 1 || (length != 0 && length != len(buf)) {
		return nil, fmt.Errorf("%w: %q buffer %d, length %d", ErrInvalidLength, id, len(buf), length)
	}
	return buf, nil
}

// fitString truncates s so that it fits a NUL-terminated buffer of the
// given capacity without splitting a UTF-8 sequence.
func fitString(s string, capacity int) string {
	limit := capacity - 1
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// writeCString stores s into buf as NUL-terminated text and zeroes the
// remainder.
func writeCString(buf []byte, s string) {
	n := copy(buf, fitString(s, len(buf)))
	clear(buf[n:])
}

// cString returns the text in buf up to the first NUL.
func cString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

// param returns the node for h when it is a parameter.
func (t *Tree) param(h Handle) (*node, error) {
	n := t.node(h)
	if n == nil {
		return nil, ErrUnknownHandle
	}
	if !n.kind.IsParameter() {
		return nil, fmt.Errorf("%w: %q", ErrNotParameter, n.id)
	}
	return n, nil
}

// Value returns the current value of a parameter.
func (t *Tree) Value(h Handle) string {
	n, err := t.param(h)
	if err != nil {
		return ""
	}
	return cString(n.buffer)
}

// SetValue updates a parameter from a submitted string, truncating it to
// the buffer. An empty value leaves a password unchanged.
func (t *Tree) SetValue(h Handle, value string) error {
	n, err := t.param(h)
	if err != nil {
		return err
	}
	if n.kind == KindPassword && fitString(value, len(n.buffer)) == "" {
		return nil
	}
	writeCString(n.buffer, value)
	return nil
}

// Buffer returns the value buffer of a parameter. The slice aliases the
// parameter storage.
func (t *Tree) Buffer(h Handle) []byte {
	n, err := t.param(h)
	if err != nil {
		return nil
	}
	return n.buffer
}

// Length returns the buffer capacity of a parameter, including the NUL.
func (t *Tree) Length(h Handle) int {
	return len(t.Buffer(h))
}

// DefaultValue returns the default of a parameter and whether one is set.
func (t *Tree) DefaultValue(h Handle) (string, bool) {
	n, err := t.param(h)
	if err != nil {
		return "", false
	}
	return n.defaultValue, n.hasDefault
}

// IsChecked reports whether a checkbox holds CheckboxValue.
func (t *Tree) IsChecked(h Handle) bool {
	n, err := t.param(h)
	if err != nil || n.kind != KindCheckbox {
		return false
	}
	return cString(n.buffer) == CheckboxValue
}

// Options returns the entries of a select parameter.
func (t *Tree) Options(h Handle) []Option {
	n, err := t.param(h)
	if err != nil {
		return nil
	}
	return append([]Option(nil), n.options...)
}

// ErrorMessage returns the validation message of a parameter.
func (t *Tree) ErrorMessage(h Handle) string {
	if n := t.node(h); n != nil {
		return n.errorMessage
	}
	return ""
}

// SetErrorMessage attaches a validation message that is shown next to the
// field on the next render.
func (t *Tree) SetErrorMessage(h Handle, msg string) {
	if n, err := t.param(h); err == nil {
		n.errorMessage = msg
	}
}

// HasErrors reports whether any parameter below h carries an error
// message.
func (t *Tree) HasErrors(h Handle) bool {
	found := false
	t.Walk(h, func(c Handle) {
		if t.nodes[c].errorMessage != "" {
			found = true
		}
	})
	return found
}
