package interactive

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webconf-project/webconf-go/pkg/param"
	"github.com/webconf-project/webconf-go/pkg/portal"
)

func newTestConsole(t *testing.T) (*Console, *bytes.Buffer, *param.Tree) {
	t.Helper()
	tree := param.NewTree()
	root, err := tree.NewGroup("root")
	require.NoError(t, err)
	name, err := tree.NewText(param.TextSpec{ID: "name", Length: 8, Default: "dev"})
	require.NoError(t, err)
	pw, err := tree.NewPassword(param.TextSpec{ID: "pw", Length: 8, Default: "hunter2"})
	require.NoError(t, err)
	led, err := tree.NewCheckbox(param.CheckboxSpec{ID: "led", Length: 9})
	require.NoError(t, err)
	for _, h := range []param.Handle{name, pw, led} {
		require.NoError(t, tree.AddItem(root, h))
	}

	cfg := portal.DefaultConfig()
	p, err := portal.New(tree, root, cfg)
	require.NoError(t, err)
	require.NoError(t, p.Init())

	var out bytes.Buffer
	return newConsole(p, &out), &out, tree
}

func TestConsoleShow(t *testing.T) {
	c, out, _ := newTestConsole(t)

	assert.False(t, c.Execute("show"))
	assert.Equal(t, "[root]\n|-- 'name' with value: 'dev'\n|-- 'pw' with value: <hidden>\n\\-- 'led' with value: ''\n", out.String())

	out.Reset()
	c.Execute("show -p")
	assert.Contains(t, out.String(), "'pw' with value: 'hunter2'")
}

func TestConsoleGetSet(t *testing.T) {
	c, out, tree := newTestConsole(t)

	c.Execute("set name my box")
	assert.Contains(t, out.String(), "name updated")
	h, _ := tree.Lookup("name")
	assert.Equal(t, "my box", tree.Value(h))

	out.Reset()
	c.Execute("get name")
	assert.Equal(t, "name = \"my box\"\n", out.String())

	out.Reset()
	c.Execute("set name much too long")
	assert.Contains(t, out.String(), `Truncated to "much to"`)

	out.Reset()
	c.Execute("get pw")
	assert.Equal(t, "pw = <hidden>\n", out.String())

	c.Execute("set led on")
	led, _ := tree.Lookup("led")
	assert.True(t, tree.IsChecked(led))

	out.Reset()
	c.Execute("get missing")
	assert.Contains(t, out.String(), "unknown item: missing")
}

func TestConsoleDefaultsAndSave(t *testing.T) {
	c, out, tree := newTestConsole(t)
	h, _ := tree.Lookup("name")

	c.Execute("set name other")
	c.Execute("defaults")
	assert.Equal(t, "dev", tree.Value(h))

	out.Reset()
	c.Execute("save")
	assert.Equal(t, "Configuration saved\n", out.String())

	out.Reset()
	c.Execute("dump")
	assert.Contains(t, out.String(), "|init")
}

func TestConsoleQuitAndUnknown(t *testing.T) {
	c, out, _ := newTestConsole(t)

	assert.False(t, c.Execute("   "))
	assert.False(t, c.Execute("frobnicate"))
	assert.Contains(t, out.String(), "Unknown command: frobnicate")
	assert.True(t, c.Execute("quit"))
}
