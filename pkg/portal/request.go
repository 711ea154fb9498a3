package portal

import (
	"io"
	"net/http"

	"github.com/webconf-project/webconf-go/pkg/param"
)

// HTTPRequest adapts a net/http request and its response writer to
// param.Request. Query and form arguments are both visible.
type HTTPRequest struct {
	w http.ResponseWriter
	r *http.Request
}

// NewHTTPRequest parses the request form and wraps it.
func NewHTTPRequest(w http.ResponseWriter, r *http.Request) (*HTTPRequest, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &HTTPRequest{w: w, r: r}, nil
}

// HasArg reports whether the argument was submitted, even when empty.
func (h *HTTPRequest) HasArg(id string) bool {
	_, ok := h.r.Form[id]
	return ok
}

// Arg returns the first value submitted for id.
func (h *HTTPRequest) Arg(id string) string {
	return h.r.Form.Get(id)
}

// SendContent writes a chunk of the response body.
func (h *HTTPRequest) SendContent(content string) error {
	_, err := io.WriteString(h.w, content)
	return err
}

// Compile-time interface satisfaction check.
var _ param.Request = (*HTTPRequest)(nil)
