package param

import "fmt"

// StorageSize returns the number of bytes StoreValue hands out for h.
func (t *Tree) StorageSize(h Handle) int {
	n := t.node(h)
	if n == nil {
		return 0
	}
	if n.kind != KindGroup {
		return len(n.buffer)
	}
	size := 0
	for c := n.firstChild; c != NoHandle; c = t.nodes[c].nextSibling {
		size += t.StorageSize(c)
	}
	return size
}

// ApplyDefaultValue resets every parameter below h to its default.
func (t *Tree) ApplyDefaultValue(h Handle) {
	n := t.node(h)
	if n == nil {
		return
	}
	if n.kind != KindGroup {
		if n.hasDefault {
			writeCString(n.buffer, n.defaultValue)
		} else {
			clear(n.buffer)
		}
		return
	}
	for c := n.firstChild; c != NoHandle; c = t.nodes[c].nextSibling {
		t.ApplyDefaultValue(c)
	}
}

// StoreValue hands the buffer of every parameter below h to sink, in tree
// order. It stops at the first error.
func (t *Tree) StoreValue(h Handle, sink ByteSink) error {
	n := t.node(h)
	if n == nil {
		return ErrUnknownHandle
	}
	if n.kind != KindGroup {
		data := SerializationData{ID: n.id, Data: n.buffer}
		if err := sink.Store(&data); err != nil {
			return fmt.Errorf("store %q: %w", n.id, err)
		}
		return nil
	}
	for c := n.firstChild; c != NoHandle; c = t.nodes[c].nextSibling {
		if err := t.StoreValue(c, sink); err != nil {
			return err
		}
	}
	return nil
}

// LoadValue lets source fill the buffer of every parameter below h, in
// tree order. It stops at the first error.
func (t *Tree) LoadValue(h Handle, source ByteSource) error {
	n := t.node(h)
	if n == nil {
		return ErrUnknownHandle
	}
	if n.kind != KindGroup {
		data := SerializationData{ID: n.id, Data: n.buffer}
		if err := source.Load(&data); err != nil {
			return fmt.Errorf("load %q: %w", n.id, err)
		}
		return nil
	}
	for c := n.firstChild; c != NoHandle; c = t.nodes[c].nextSibling {
		if err := t.LoadValue(c, source); err != nil {
			return err
		}
	}
	return nil
}

// Update copies submitted values from req into every parameter below h.
// A parameter missing from the request receives the empty string, which
// unticks a checkbox and leaves a password unchanged.
func (t *Tree) Update(h Handle, req Request) {
	n := t.node(h)
	if n == nil {
		return
	}
	if n.kind != KindGroup {
		_ = t.SetValue(h, req.Arg(n.id))
		return
	}
	for c := n.firstChild; c != NoHandle; c = t.nodes[c].nextSibling {
		t.Update(c, req)
	}
}

// ClearErrorMessage drops the validation message of every parameter below
// h.
func (t *Tree) ClearErrorMessage(h Handle) {
	t.Walk(h, func(c Handle) {
		t.nodes[c].errorMessage = ""
	})
}
