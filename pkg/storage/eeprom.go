package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/webconf-project/webconf-go/pkg/param"
)

// VersionLength is the width of the config version marker at the start of
// an image.
const VersionLength = 4

// Storage errors.
var (
	ErrOutOfSpace    = errors.New("record does not fit into storage")
	ErrInvalidOffset = errors.New("offset outside storage")
)

// EEPROM is a fixed-size in-memory byte image. It is safe for concurrent
// use; a Cursor is not.
type EEPROM struct {
	mu    sync.Mutex
	data  []byte
	dirty bool
}

// NewEEPROM creates an image of size bytes, all zero.
func NewEEPROM(size int) *EEPROM {
	return &EEPROM{data: make([]byte, size)}
}

// FromBytes creates an image holding a copy of data.
func FromBytes(data []byte) *EEPROM {
	return &EEPROM{data: append([]byte(nil), data...)}
}

// Size returns the image size in bytes.
func (e *EEPROM) Size() int {
	return len(e.data)
}

// Bytes returns a copy of the image.
func (e *EEPROM) Bytes() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]byte(nil), e.data...)
}

// Dirty reports whether the image changed since the last MarkClean.
func (e *EEPROM) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// MarkClean clears the dirty flag, typically after the image was committed.
func (e *EEPROM) MarkClean() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dirty = false
}

// WriteAt copies p into the image at off.
func (e *EEPROM) WriteAt(p []byte, off int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if off < 0 || off > len(e.data) {
		return fmt.Errorf("%w: %d", ErrInvalidOffset, off)
	}
	if len(p) > len(e.data)-off {
		return fmt.Errorf("%w: %d bytes at %d, size %d", ErrOutOfSpace, len(p), off, len(e.data))
	}
	copy(e.data[off:], p)
	e.dirty = true
	return nil
}

// ReadAt fills p from the image at off.
func (e *EEPROM) ReadAt(p []byte, off int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if off < 0 || off > len(e.data) {
		return fmt.Errorf("%w: %d", ErrInvalidOffset, off)
	}
	if len(p) > len(e.data)-off {
		return fmt.Errorf("%w: %d bytes at %d, size %d", ErrOutOfSpace, len(p), off, len(e.data))
	}
	copy(p, e.data[off:])
	return nil
}

// Cursor returns a sequential reader/writer starting at off.
func (e *EEPROM) Cursor(off int) *Cursor {
	return &Cursor{mem: e, off: off}
}

// Cursor reads and writes records back to back.
type Cursor struct {
	mem *EEPROM
	off int
}

// Offset returns the position of the next record.
func (c *Cursor) Offset() int {
	return c.off
}

// Store writes the record at the cursor and advances past it.
func (c *Cursor) Store(data *param.SerializationData) error {
	if err := c.mem.WriteAt(data.Data, c.off); err != nil {
		return err
	}
	c.off += data.Len()
	return nil
}

// Load fills the record from the cursor and advances past it.
func (c *Cursor) Load(data *param.SerializationData) error {
	if err := c.mem.ReadAt(data.Data, c.off); err != nil {
		return err
	}
	c.off += data.Len()
	return nil
}

// WriteString writes s as a fixed-width field of width bytes, truncated or
// zero padded.
func (c *Cursor) WriteString(s string, width int) error {
	field := make([]byte, width)
	copy(field, s)
	return c.Store(&param.SerializationData{Data: field})
}

// ReadString reads a fixed-width field of width bytes, dropping zero
// padding.
func (c *Cursor) ReadString(width int) (string, error) {
	field := make([]byte, width)
	if err := c.Load(&param.SerializationData{Data: field}); err != nil {
		return "", err
	}
	end := len(field)
	for end > 0 && field[end-1] == 0 {
		end--
	}
	return string(field[:end]), nil
}

// Compile-time interface satisfaction checks.
var (
	_ param.ByteSink   = (*Cursor)(nil)
	_ param.ByteSource = (*Cursor)(nil)
)
