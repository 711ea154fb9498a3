package param

import "strings"

// fakeRequest records sent content and serves a fixed set of arguments.
type fakeRequest struct {
	args map[string]string
	sb   strings.Builder
}

func newFakeRequest(args map[string]string) *fakeRequest {
	return &fakeRequest{args: args}
}

func (r *fakeRequest) HasArg(id string) bool {
	_, ok := r.args[id]
	return ok
}

func (r *fakeRequest) Arg(id string) string {
	return r.args[id]
}

func (r *fakeRequest) SendContent(content string) error {
	r.sb.WriteString(content)
	return nil
}

func (r *fakeRequest) String() string {
	return r.sb.String()
}

// sampleTree builds the tree used across tests:
//
//	[all]
//	|-- [sys]  (label "System")
//	|   |-- thing  (text, 16, default "thing")
//	|   \-- appwd  (password, 12, default "secret")
//	\-- [extra] (no label)
//	    |-- port   (number, 6, default "80")
//	    |-- led    (checkbox, 9+1, default true)
//	    \-- mode   (select a/b, default "b")
type sampleTree struct {
	tree                               *Tree
	all, sys, extra                    Handle
	thing, apPassword, port, led, mode Handle
}

func mustHandle(h Handle, err error) Handle {
	if err != nil {
		panic(err)
	}
	return h
}

func newSampleTree() sampleTree {
	t := NewTree()
	s := sampleTree{tree: t}
	s.all = mustHandle(t.NewGroup("all"))
	s.sys = mustHandle(t.NewGroup("sys", WithLabel("System")))
	s.extra = mustHandle(t.NewGroup("extra"))
	s.thing = mustHandle(t.NewText(TextSpec{ID: "thing", Label: "Thing name", Length: 16, Default: "thing"}))
	s.apPassword = mustHandle(t.NewPassword(TextSpec{ID: "appwd", Label: "AP password", Length: 12, Default: "secret"}))
	s.port = mustHandle(t.NewNumber(TextSpec{ID: "port", Label: "Port", Length: 6, Default: "80", CustomHTML: "min='1' max='65535'"}))
	s.led = mustHandle(t.NewCheckbox(CheckboxSpec{ID: "led", Label: "LED", Length: 10, Default: true}))
	s.mode = mustHandle(t.NewSelect(SelectSpec{
		ID: "mode", Label: "Mode", Length: 4,
		Values: []string{"a", "b"}, Names: []string{"Alpha", "Beta"}, NameLength: 10,
		Default: "b",
	}))

	for _, add := range [][2]Handle{
		{s.all, s.sys}, {s.sys, s.thing}, {s.sys, s.apPassword},
		{s.all, s.extra}, {s.extra, s.port}, {s.extra, s.led}, {s.extra, s.mode},
	} {
		if err := t.AddItem(add[0], add[1]); err != nil {
			panic(err)
		}
	}
	return s
}
