package param

import (
	"bytes"
	"io"
)

// PrefixWriter writes a prefix at the start of every line written through
// it: first before the first line, rest before each following one. A
// prefix is emitted lazily, when the first byte of its line arrives.
type PrefixWriter struct {
	w     io.Writer
	first string
	rest  string

	started     bool
	atLineStart bool
}

// NewPrefixWriter wraps w.
func NewPrefixWriter(w io.Writer, first, rest string) *PrefixWriter {
	return &PrefixWriter{w: w, first: first, rest: rest, atLineStart: true}
}

// Write writes p, inserting prefixes after each newline.
func (p *PrefixWriter) Write(b []byte) (int, error) {
	written := 0
	for len(b) > 0 {
		if p.atLineStart {
			prefix := p.rest
			if !p.started {
				prefix = p.first
				p.started = true
			}
			if _, err := io.WriteString(p.w, prefix); err != nil {
				return written, err
			}
			p.atLineStart = false
		}

		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line = b[:i+1]
			p.atLineStart = true
		}
		n, err := p.w.Write(line)
		written += n
		if err != nil {
			return written, err
		}
		b = b[len(line):]
	}
	return written, nil
}

// Tree drawing fragments.
const (
	branchMid   = "|-- "
	branchLast  = "\\-- "
	pipeIndent  = "|   "
	spaceIndent = "    "
)

// treePrefixes computes the line prefixes of an item from the is-last flags
// of its ancestors below the dumped root, ending with the item itself.
func treePrefixes(path []bool) (first, rest string) {
	if len(path) == 0 {
		return "", ""
	}
	var sb bytes.Buffer
	for _, last := range path[:len(path)-1] {
		if last {
			sb.WriteString(spaceIndent)
		} else {
			sb.WriteString(pipeIndent)
		}
	}
	indent := sb.String()
	if path[len(path)-1] {
		return indent + branchLast, indent + spaceIndent
	}
	return indent + branchMid, indent + pipeIndent
}
