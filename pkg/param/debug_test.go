package param

import (
	"strings"
	"testing"
)

func TestDebugTo(t *testing.T) {
	s := newSampleTree()
	s.tree.ApplyDefaultValue(s.all)

	var sb strings.Builder
	if err := s.tree.DebugTo(s.all, &sb); err != nil {
		t.Fatalf("DebugTo() error = %v", err)
	}

	want := `[all]
|-- [sys]
|   |-- 'thing' with value: 'thing'
|   \-- 'appwd' with value: <hidden>
\-- [extra]
    |-- 'port' with value: '80'
    |-- 'led' with value: 'selected'
    \-- 'mode' with value: 'b'
`
	if got := sb.String(); got != want {
		t.Errorf("DebugTo() =\n%s\nwant\n%s", got, want)
	}
}

func TestDebugToShowPasswords(t *testing.T) {
	s := newSampleTree()
	s.tree.ApplyDefaultValue(s.all)

	var sb strings.Builder
	if err := s.tree.DebugToWithOptions(s.sys, &sb, DebugOptions{ShowPasswords: true}); err != nil {
		t.Fatalf("DebugToWithOptions() error = %v", err)
	}
	if !strings.Contains(sb.String(), "\\-- 'appwd' with value: 'secret'\n") {
		t.Errorf("password not shown:\n%s", sb.String())
	}
}

func TestDebugToDeepNesting(t *testing.T) {
	tree := NewTree()
	a := mustHandle(tree.NewGroup("a"))
	b := mustHandle(tree.NewGroup("b"))
	c := mustHandle(tree.NewGroup("c"))
	x := mustHandle(tree.NewText(TextSpec{ID: "x", Length: 4}))
	y := mustHandle(tree.NewText(TextSpec{ID: "y", Length: 4}))
	for _, pair := range [][2]Handle{{a, b}, {b, c}, {c, x}, {b, y}} {
		if err := tree.AddItem(pair[0], pair[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := tree.SetValue(x, "1\n2"); err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := tree.DebugTo(a, &sb); err != nil {
		t.Fatal(err)
	}

	// A multi-line value continues under its own branch.
	want := `[a]
\-- [b]
    |-- [c]
    |   \-- 'x' with value: '1
    |       2'
    \-- 'y' with value: ''
`
	if got := sb.String(); got != want {
		t.Errorf("DebugTo() =\n%s\nwant\n%s", got, want)
	}
}

func TestDebugToUnknownHandle(t *testing.T) {
	if err := NewTree().DebugTo(Handle(0), &strings.Builder{}); err != ErrUnknownHandle {
		t.Errorf("DebugTo() error = %v, want ErrUnknownHandle", err)
	}
}

func TestTreePrefixes(t *testing.T) {
	tests := []struct {
		path      []bool
		wantFirst string
		wantRest  string
	}{
		{nil, "", ""},
		{[]bool{false}, "|-- ", "|   "},
		{[]bool{true}, "\\-- ", "    "},
		{[]bool{false, true}, "|   \\-- ", "|       "},
		{[]bool{true, false}, "    |-- ", "    |   "},
	}
	for _, tt := range tests {
		first, rest := treePrefixes(tt.path)
		if first != tt.wantFirst || rest != tt.wantRest {
			t.Errorf("treePrefixes(%v) = (%q, %q), want (%q, %q)", tt.path, first, rest, tt.wantFirst, tt.wantRest)
		}
	}
}
