package log

import (
	"os"
	"sync"
)

// FileLogger writes events to a file in CBOR format.
// It is safe for concurrent use from multiple goroutines.
//
// With a size limit set, the file is rotated to path+".1" once it grows
// past the limit, so at most two files of about that size exist.
type FileLogger struct {
	path    string
	maxSize int64

	mu     sync.Mutex
	file   *os.File
	size   int64
	closed bool
}

// NewFileLogger creates a new FileLogger that appends to the specified
// path without a size limit.
func NewFileLogger(path string) (*FileLogger, error) {
	return NewRotatingFileLogger(path, 0)
}

// NewRotatingFileLogger creates a FileLogger that rotates the file once it
// exceeds maxSize bytes. A maxSize of zero disables rotation.
func NewRotatingFileLogger(path string, maxSize int64) (*FileLogger, error) {
	l := &FileLogger{path: path, maxSize: maxSize}
	if err := l.open(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *FileLogger) open() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	l.file = f
	l.size = info.Size()
	return nil
}

// Path returns the file events are written to.
func (l *FileLogger) Path() string {
	return l.path
}

// Log writes an event to the log file.
// This method is safe for concurrent use.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	data, err := EncodeEvent(event)
	if err != nil {
		// Logging must not disrupt the portal.
		return
	}
	if l.maxSize > 0 && l.size > 0 && l.size+int64(len(data)) > l.maxSize {
		if err := l.rotate(); err != nil {
			return
		}
	}
	n, _ := l.file.Write(data)
	l.size += int64(n)
}

// rotate moves the current file aside and starts a new one.
func (l *FileLogger) rotate() error {
	if err := l.file.Close(); err != nil {
		return err
	}
	if err := os.Rename(l.path, l.path+".1"); err != nil {
		return err
	}
	return l.open()
}

// Close closes the log file.
// It is safe to call Close multiple times.
// After Close is called, subsequent Log calls are silently ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}

	l.closed = true
	return l.file.Close()
}

// Compile-time interface satisfaction check.
var _ Logger = (*FileLogger)(nil)
