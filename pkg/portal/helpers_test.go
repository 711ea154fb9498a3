package portal

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/webconf-project/webconf-go/pkg/log"
	"github.com/webconf-project/webconf-go/pkg/param"
)

// deviceTree is a small thermostat-like tree:
//
//	[root]
//	|-- thingName (text, 16, default "thermo")
//	|-- apPassword (password, 12, default passwordDefault)
//	\-- [net] "Network"
//	    |-- port (number, 6, default "80")
//	    |-- dhcp (checkbox, default on)
//	    \-- mode (select a/b, default "a")
type deviceTree struct {
	tree     *param.Tree
	root     param.Handle
	thing    param.Handle
	password param.Handle
	port     param.Handle
	dhcp     param.Handle
	mode     param.Handle
}

func newDeviceTree(t *testing.T, passwordDefault string) *deviceTree {
	t.Helper()
	tree := param.NewTree()
	d := &deviceTree{tree: tree}

	var err error
	d.root, err = tree.NewGroup("root")
	require.NoError(t, err)
	d.thing, err = tree.NewText(param.TextSpec{ID: "thingName", Label: "Thing name", Length: 16, Default: "thermo"})
	require.NoError(t, err)
	d.password, err = tree.NewPassword(param.TextSpec{ID: "apPassword", Label: "AP password", Length: 12, Default: passwordDefault})
	require.NoError(t, err)

	net, err := tree.NewGroup("net", param.WithLabel("Network"))
	require.NoError(t, err)
	d.port, err = tree.NewNumber(param.TextSpec{ID: "port", Label: "Port", Length: 6, Default: "80"})
	require.NoError(t, err)
	d.dhcp, err = tree.NewCheckbox(param.CheckboxSpec{ID: "dhcp", Label: "DHCP", Length: 10, Default: true})
	require.NoError(t, err)
	d.mode, err = tree.NewSelect(param.SelectSpec{
		ID: "mode", Label: "Mode", Length: 4,
		Values: []string{"a", "b"}, Names: []string{"Auto", "Boost"},
		Default: "a",
	})
	require.NoError(t, err)

	for _, h := range []param.Handle{d.thing, d.password, net} {
		require.NoError(t, tree.AddItem(d.root, h))
	}
	for _, h := range []param.Handle{d.port, d.dhcp, d.mode} {
		require.NoError(t, tree.AddItem(net, h))
	}
	return d
}

// recordingLogger collects events.
type recordingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recordingLogger) Log(event log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingLogger) categories() []log.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []log.Category
	for _, e := range r.events {
		out = append(out, e.Category)
	}
	return out
}

func (r *recordingLogger) last(c log.Category) (log.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Category == c {
			return r.events[i], true
		}
	}
	return log.Event{}, false
}

func get(p *Portal, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	p.ServeHTTP(w, req)
	return w
}

// post submits form as the config page does, with SaveFormField set.
func post(p *Portal, form url.Values) *httptest.ResponseRecorder {
	submission := url.Values{SaveFormField: {"true"}}
	for k, v := range form {
		submission[k] = v
	}
	return postRaw(p, submission)
}

func postRaw(p *Portal, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	p.ServeHTTP(w, req)
	return w
}
