package param

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, tree *Tree, h Handle, dataArrived bool, args map[string]string) string {
	t.Helper()
	req := newFakeRequest(args)
	require.NoError(t, tree.RenderHTML(h, dataArrived, req))
	return req.String()
}

func TestRenderText(t *testing.T) {
	s := newSampleTree()
	s.tree.ApplyDefaultValue(s.all)

	t.Run("StoredValue", func(t *testing.T) {
		got := renderString(t, s.tree, s.thing, false, nil)
		want := "<div class=''><label for='thing'>Thing name</label>" +
			"<input type='text' id='thing' name='thing' maxlength='16' placeholder='' value='thing' />" +
			"<div class='em'></div></div>\n"
		assert.Equal(t, want, got)
	})

	t.Run("PostedValueAfterSubmit", func(t *testing.T) {
		got := renderString(t, s.tree, s.thing, true, map[string]string{"thing": "typed"})
		assert.Contains(t, got, "value='typed'")
	})

	t.Run("PostedValueIgnoredWithoutSubmit", func(t *testing.T) {
		got := renderString(t, s.tree, s.thing, false, map[string]string{"thing": "typed"})
		assert.Contains(t, got, "value='thing'")
	})

	t.Run("ErrorMessage", func(t *testing.T) {
		s.tree.SetErrorMessage(s.thing, "Give it a name")
		defer s.tree.ClearErrorMessage(s.thing)

		got := renderString(t, s.tree, s.thing, false, nil)
		assert.True(t, strings.HasPrefix(got, "<div class='de'>"), got)
		assert.Contains(t, got, "<div class='em'>Give it a name</div>")
	})

	t.Run("EscapesValues", func(t *testing.T) {
		got := renderString(t, s.tree, s.thing, true, map[string]string{"thing": "x' onfocus='alert(1)"})
		assert.Contains(t, got, "value='x&#39; onfocus=&#39;alert(1)'")
	})

	t.Run("InjectedValueNotRescanned", func(t *testing.T) {
		got := renderString(t, s.tree, s.thing, true, map[string]string{"thing": "{i}{b}"})
		assert.Contains(t, got, "value='{i}{b}'")
	})
}

func TestRenderNumber(t *testing.T) {
	s := newSampleTree()
	s.tree.ApplyDefaultValue(s.all)

	got := renderString(t, s.tree, s.port, false, nil)
	assert.Contains(t, got, "type='number'")
	assert.Contains(t, got, "value='80' min='1' max='65535'/>")
}

func TestRenderPasswordNeverEchoes(t *testing.T) {
	s := newSampleTree()
	s.tree.ApplyDefaultValue(s.all)

	for _, dataArrived := range []bool{false, true} {
		got := renderString(t, s.tree, s.apPassword, dataArrived, map[string]string{"appwd": "typed"})
		assert.Contains(t, got, "type='password'")
		assert.Contains(t, got, "value=''")
		assert.NotContains(t, got, "secret")
		assert.NotContains(t, got, "typed")
	}
}

func TestRenderCheckbox(t *testing.T) {
	s := newSampleTree()
	s.tree.ApplyDefaultValue(s.all)

	checked := "<div class=''><label for='led'>LED</label>" +
		"<input type='checkbox' id='led' name='led' maxlength='10' placeholder='' value='selected' checked='checked'/>" +
		"<div class='em'></div></div>\n"

	tests := []struct {
		name        string
		stored      string
		dataArrived bool
		args        map[string]string
		wantChecked bool
	}{
		{"stored selected", CheckboxValue, false, nil, true},
		{"stored empty", "", false, nil, false},
		{"submitted without argument", CheckboxValue, true, nil, false},
		{"submitted selected", "", true, map[string]string{"led": CheckboxValue}, true},
		{"submitted other value", CheckboxValue, true, map[string]string{"led": "on"}, false},
		{"argument ignored without submit", "", false, map[string]string{"led": CheckboxValue}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, s.tree.SetValue(s.led, tt.stored))
			got := renderString(t, s.tree, s.led, tt.dataArrived, tt.args)

			// The value attribute is always the checkbox value.
			assert.Contains(t, got, "value='selected'")
			if tt.wantChecked {
				assert.Equal(t, checked, got)
			} else {
				assert.NotContains(t, got, HTMLCheckedAttr)
			}
		})
	}
}

func TestRenderSelect(t *testing.T) {
	s := newSampleTree()
	s.tree.ApplyDefaultValue(s.all)

	t.Run("StoredValueSelected", func(t *testing.T) {
		got := renderString(t, s.tree, s.mode, false, nil)
		want := "<div class=''><label for='mode'>Mode</label><select id='mode' name='mode' >\n" +
			"<option value='a'>Alpha</option>\n" +
			"<option value='b' selected>Beta</option>\n" +
			"</select><div class='em'></div></div>\n"
		assert.Equal(t, want, got)
	})

	t.Run("PostedAndStoredSelected", func(t *testing.T) {
		got := renderString(t, s.tree, s.mode, true, map[string]string{"mode": "a"})
		assert.Contains(t, got, "<option value='a' selected>Alpha</option>")
		assert.Contains(t, got, "<option value='b' selected>Beta</option>")
	})

	t.Run("TruncatedOptions", func(t *testing.T) {
		tree := NewTree()
		h := mustHandle(tree.NewSelect(SelectSpec{
			ID: "long", Length: 3,
			Values: []string{"abc"}, Names: []string{"Abcdefgh"}, NameLength: 4,
		}))
		assert.Equal(t, []Option{{Value: "ab", Name: "Abc"}}, tree.Options(h))
	})
}

func TestRenderGroup(t *testing.T) {
	s := newSampleTree()
	s.tree.ApplyDefaultValue(s.all)

	t.Run("LabelledFieldset", func(t *testing.T) {
		got := renderString(t, s.tree, s.sys, false, nil)
		assert.True(t, strings.HasPrefix(got, "<fieldset id='sys'><legend>System</legend><div"), got)
		assert.True(t, strings.HasSuffix(got, "</div></div>\n</fieldset>"), got)
		assert.Less(t, strings.Index(got, "id='thing'"), strings.Index(got, "id='appwd'"))
	})

	t.Run("EmptyLabelOmitsLegend", func(t *testing.T) {
		tree := NewTree()
		g := mustHandle(tree.NewGroup("g", WithLabel("")))
		got := renderString(t, tree, g, false, nil)
		assert.Equal(t, "<fieldset id='g'></fieldset>", got)
	})

	t.Run("NoLabelNoFieldset", func(t *testing.T) {
		got := renderString(t, s.tree, s.extra, false, nil)
		assert.NotContains(t, got, "fieldset")
		assert.Contains(t, got, "id='port'")
	})

	t.Run("NestedGroups", func(t *testing.T) {
		got := renderString(t, s.tree, s.all, false, nil)
		assert.Equal(t, 1, strings.Count(got, "<fieldset"))
		for _, id := range []string{"thing", "appwd", "port", "led", "mode"} {
			assert.Contains(t, got, "id='"+id+"'")
		}
	})
}

func TestRenderSkipsInvisibleItems(t *testing.T) {
	s := newSampleTree()
	s.tree.ApplyDefaultValue(s.all)
	s.tree.SetVisible(s.port, false)
	s.tree.SetVisible(s.sys, false)

	got := renderString(t, s.tree, s.all, false, nil)
	assert.NotContains(t, got, "id='port'")
	assert.NotContains(t, got, "fieldset")
	assert.NotContains(t, got, "id='thing'")
	assert.Contains(t, got, "id='led'")

	// Hidden items still take part in storage.
	assert.Equal(t, 48, s.tree.StorageSize(s.all))
	sink := &recordingSink{}
	require.NoError(t, s.tree.StoreValue(s.all, sink))
	assert.Contains(t, sink.ids, "port")
	assert.Contains(t, sink.ids, "thing")
}

// failingRequest fails every SendContent call.
type failingRequest struct{ fakeRequest }

func (failingRequest) SendContent(string) error { return errors.New("connection reset") }

func TestRenderPropagatesSendError(t *testing.T) {
	s := newSampleTree()
	err := s.tree.RenderHTML(s.all, false, &failingRequest{})
	assert.EqualError(t, err, "connection reset")
}
