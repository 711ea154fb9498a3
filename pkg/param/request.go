package param

// Request is the web request a tree renders into and reads submitted
// values from.
type Request interface {
	// HasArg reports whether the request carries an argument named id.
	HasArg(id string) bool

	// Arg returns the argument named id, or "" when absent.
	Arg(id string) string

	// SendContent streams a chunk of the response body.
	SendContent(content string) error
}
