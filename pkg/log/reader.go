package log

import (
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects events by their header fields. Zero fields match
// everything.
type Filter struct {
	RequestID string
	Category  *Category
	Source    *Source
	ItemID    string

	// TimeStart is inclusive, TimeEnd exclusive.
	TimeStart *time.Time
	TimeEnd   *time.Time
}

// eventHeader is the part of an Event that filters look at. Payload keys
// are skipped by the decoder.
type eventHeader struct {
	Timestamp time.Time `cbor:"1,keyasint"`
	RequestID string    `cbor:"2,keyasint,omitempty"`
	Category  Category  `cbor:"3,keyasint"`
	Source    Source    `cbor:"4,keyasint"`
	ItemID    string    `cbor:"6,keyasint,omitempty"`
}

// Matches reports whether the event passes the filter.
func (f *Filter) Matches(event Event) bool {
	return f.matches(eventHeader{
		Timestamp: event.Timestamp,
		RequestID: event.RequestID,
		Category:  event.Category,
		Source:    event.Source,
		ItemID:    event.ItemID,
	})
}

func (f *Filter) matches(h eventHeader) bool {
	switch {
	case f.Source != nil && h.Source != *f.Source:
		return false
	case f.Category != nil && h.Category != *f.Category:
		return false
	case f.RequestID != "" && h.RequestID != f.RequestID:
		return false
	case f.ItemID != "" && h.ItemID != f.ItemID:
		return false
	case f.TimeStart != nil && h.Timestamp.Before(*f.TimeStart):
		return false
	case f.TimeEnd != nil && !h.Timestamp.Before(*f.TimeEnd):
		return false
	}
	return true
}

func (f *Filter) empty() bool {
	return *f == Filter{}
}

// Reader streams events from a log file written by FileLogger.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader opens a log file for reading every event.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens a log file for reading the events that pass
// filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{file: f, decoder: NewDecoder(f), filter: filter}, nil
}

// Next returns the next matching event, or io.EOF at the end of the file.
// A record cut short by a crash surfaces as io.ErrUnexpectedEOF.
func (r *Reader) Next() (Event, error) {
	if r.filter.empty() {
		var event Event
		err := r.decoder.Decode(&event)
		return event, err
	}

	for {
		var raw cbor.RawMessage
		if err := r.decoder.Decode(&raw); err != nil {
			return Event{}, err
		}

		// Only records passing the header check pay for the payload.
		var h eventHeader
		if err := eventDecMode.Unmarshal(raw, &h); err != nil {
			return Event{}, err
		}
		if !r.filter.matches(h) {
			continue
		}
		return DecodeEvent(raw)
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
