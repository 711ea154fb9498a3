package param

import (
	"fmt"
	"io"
)

// DebugOptions controls the debug dump.
type DebugOptions struct {
	// ShowPasswords prints password values instead of <hidden>.
	ShowPasswords bool
}

// DebugTo prints h and everything below it as an ASCII tree.
func (t *Tree) DebugTo(h Handle, w io.Writer) error {
	return t.DebugToWithOptions(h, w, DebugOptions{})
}

// DebugToWithOptions is DebugTo with explicit options.
func (t *Tree) DebugToWithOptions(h Handle, w io.Writer, opts DebugOptions) error {
	if t.node(h) == nil {
		return ErrUnknownHandle
	}
	return t.debugItem(w, h, nil, opts)
}

// debugItem prints one item. path holds the is-last flags from the dumped
// root down to h.
func (t *Tree) debugItem(w io.Writer, h Handle, path []bool, opts DebugOptions) error {
	n := &t.nodes[h]
	first, rest := treePrefixes(path)
	out := NewPrefixWriter(w, first, rest)

	switch {
	case n.kind == KindGroup:
		if _, err := fmt.Fprintf(out, "[%s]\n", n.id); err != nil {
			return err
		}
	case n.kind == KindPassword && !opts.ShowPasswords:
		if _, err := fmt.Fprintf(out, "'%s' with value: <hidden>\n", n.id); err != nil {
			return err
		}
	default:
		if _, err := fmt.Fprintf(out, "'%s' with value: '%s'\n", n.id, cString(n.buffer)); err != nil {
			return err
		}
	}

	for c := n.firstChild; c != NoHandle; c = t.nodes[c].nextSibling {
		childPath := append(path[:len(path):len(path)], t.nodes[c].nextSibling == NoHandle)
		if err := t.debugItem(w, c, childPath, opts); err != nil {
			return err
		}
	}
	return nil
}
