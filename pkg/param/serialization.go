package param

// SerializationData describes the bytes of one parameter for the duration
// of a store or load call. Data aliases the parameter buffer: a sink reads
// it, a source fills it.
type SerializationData struct {
	// ID is the id of the parameter owning the buffer.
	ID string

	Data []byte
}

// Len returns the number of bytes in the record.
func (d *SerializationData) Len() int {
	return len(d.Data)
}

// ByteSink persists parameter buffers. Store is called once per parameter
// in tree order.
type ByteSink interface {
	Store(data *SerializationData) error
}

// ByteSource restores parameter buffers. Load is called once per parameter
// in tree order and must fill data.Data in place.
type ByteSource interface {
	Load(data *SerializationData) error
}

// StoreFunc adapts a function to ByteSink.
type StoreFunc func(data *SerializationData) error

// Store calls f(data).
func (f StoreFunc) Store(data *SerializationData) error { return f(data) }

// LoadFunc adapts a function to ByteSource.
type LoadFunc func(data *SerializationData) error

// Load calls f(data).
func (f LoadFunc) Load(data *SerializationData) error { return f(data) }

// Compile-time interface satisfaction checks.
var (
	_ ByteSink   = StoreFunc(nil)
	_ ByteSource = LoadFunc(nil)
)
