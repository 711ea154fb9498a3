package param

import (
	"errors"
	"fmt"
)

// Handle addresses an item in a Tree.
type Handle int

// NoHandle is the handle of a missing item (no parent, no child, no sibling).
const NoHandle Handle = -1

// Tree errors.
var (
	ErrUnknownHandle  = errors.New("unknown item handle")
	ErrNotGroup       = errors.New("item is not a group")
	ErrNotParameter   = errors.New("item is not a parameter")
	ErrCycle          = errors.New("item would become its own ancestor")
	ErrEmptyID        = errors.New("item id is empty")
	ErrDuplicateID    = errors.New("duplicate item id")
	ErrInvalidLength  = errors.New("invalid value buffer length")
	ErrOptionMismatch = errors.New("option values and names differ in count")
)

// Kind identifies the variant of an item.
type Kind uint8

const (
	KindGroup Kind = iota
	KindText
	KindNumber
	KindPassword
	KindCheckbox
	KindSelect
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindPassword:
		return "password"
	case KindCheckbox:
		return "checkbox"
	case KindSelect:
		return "select"
	default:
		return "unknown"
	}
}

// IsParameter returns true for every kind that holds a value.
func (k Kind) IsParameter() bool {
	return k != KindGroup && k <= KindSelect
}

// inputType returns the HTML input type used to render the kind.
func (k Kind) inputType() string {
	switch k {
	case KindNumber:
		return "number"
	case KindPassword:
		return "password"
	case KindCheckbox:
		return "checkbox"
	default:
		return "text"
	}
}

// node is one arena slot. Group-only and parameter-only fields share the
// struct; kind decides which are meaningful.
type node struct {
	id      string
	kind    Kind
	visible bool

	parent      Handle
	firstChild  Handle
	nextSibling Handle

	// label is the group legend or the parameter label. A group without
	// hasLabel renders no fieldset at all.
	label    string
	hasLabel bool

	buffer       []byte
	defaultValue string
	hasDefault   bool
	errorMessage string
	placeholder  string
	customHTML   string
	options      []Option
	nameLength   int
}

// Tree is an arena of configuration items.
type Tree struct {
	nodes []node
	byID  map[string]Handle
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{byID: make(map[string]Handle)}
}

// GroupOption configures a group at construction.
type GroupOption func(*node)

// WithLabel makes the group render as a fieldset. An empty label renders
// the fieldset without a legend.
func WithLabel(label string) GroupOption {
	return func(n *node) {
		n.label = label
		n.hasLabel = true
	}
}

// NewGroup creates a group. Without WithLabel the group renders only its
// children.
func (t *Tree) NewGroup(id string, opts ...GroupOption) (Handle, error) {
	n := node{id: id, kind: KindGroup}
	for _, opt := range opts {
		opt(&n)
	}
	return t.insert(n)
}

// insert places a detached node into the arena.
func (t *Tree) insert(n node) (Handle, error) {
	if n.id == "" {
		return NoHandle, ErrEmptyID
	}
	if _, exists := t.byID[n.id]; exists {
		return NoHandle, fmt.Errorf("%w: %q", ErrDuplicateID, n.id)
	}
	n.visible = true
	n.parent = NoHandle
	n.firstChild = NoHandle
	n.nextSibling = NoHandle

	h := Handle(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.byID[n.id] = h
	return h, nil
}

// node returns the slot for h, or nil when h is not part of the tree.
func (t *Tree) node(h Handle) *node {
	if h < 0 || int(h) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[h]
}

// AddItem appends item to the children of group. Adding an item that
// already belongs to a group is a no-op.
func (t *Tree) AddItem(group, item Handle) error {
	g := t.node(group)
	it := t.node(item)
	if g == nil || it == nil {
		return ErrUnknownHandle
	}
	if g.kind != KindGroup {
		return fmt.Errorf("%w: %q", ErrNotGroup, g.id)
	}
	if it.parent != NoHandle {
		return nil
	}
	for a := group; a != NoHandle; a = t.nodes[a].parent {
		if a == item {
			return fmt.Errorf("%w: %q", ErrCycle, it.id)
		}
	}

	it.parent = group
	if g.firstChild == NoHandle {
		g.firstChild = item
		return nil
	}
	last := g.firstChild
	for t.nodes[last].nextSibling != NoHandle {
		last = t.nodes[last].nextSibling
	}
	t.nodes[last].nextSibling = item
	return nil
}

// Len returns the number of items in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Lookup returns the item with the given id.
func (t *Tree) Lookup(id string) (Handle, bool) {
	h, ok := t.byID[id]
	return h, ok
}

// ID returns the item id.
func (t *Tree) ID(h Handle) string {
	if n := t.node(h); n != nil {
		return n.id
	}
	return ""
}

// Kind returns the item kind.
func (t *Tree) Kind(h Handle) Kind {
	if n := t.node(h); n != nil {
		return n.kind
	}
	return KindGroup
}

// Label returns the group legend or parameter label.
func (t *Tree) Label(h Handle) string {
	if n := t.node(h); n != nil {
		return n.label
	}
	return ""
}

// Parent returns the group holding h, or NoHandle.
func (t *Tree) Parent(h Handle) Handle {
	if n := t.node(h); n != nil {
		return n.parent
	}
	return NoHandle
}

// Children returns the children of a group in insertion order.
func (t *Tree) Children(h Handle) []Handle {
	n := t.node(h)
	if n == nil {
		return nil
	}
	var children []Handle
	for c := n.firstChild; c != NoHandle; c = t.nodes[c].nextSibling {
		children = append(children, c)
	}
	return children
}

// Visible reports whether the item is rendered by its group.
func (t *Tree) Visible(h Handle) bool {
	if n := t.node(h); n != nil {
		return n.visible
	}
	return false
}

// SetVisible controls whether the item is rendered by its group. Hidden
// items are still stored, loaded and updated.
func (t *Tree) SetVisible(h Handle, visible bool) {
	if n := t.node(h); n != nil {
		n.visible = visible
	}
}

// Walk calls fn for h and every item below it, depth first, in insertion
// order.
func (t *Tree) Walk(h Handle, fn func(Handle)) {
	n := t.node(h)
	if n == nil {
		return
	}
	fn(h)
	for c := n.firstChild; c != NoHandle; c = t.nodes[c].nextSibling {
		t.Walk(c, fn)
	}
}
