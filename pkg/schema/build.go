package schema

import (
	"fmt"

	"github.com/webconf-project/webconf-go/pkg/param"
)

// Build creates the declared tree and returns it with the root handle.
func (s *Schema) Build() (*param.Tree, param.Handle, error) {
	if s.Root.Type != TypeGroup {
		return nil, param.NoHandle, fmt.Errorf("%w: root %q must be a group", ErrInvalidItem, s.Root.ID)
	}
	tree := param.NewTree()
	root, err := buildItem(tree, &s.Root)
	if err != nil {
		return nil, param.NoHandle, err
	}
	return tree, root, nil
}

func buildItem(tree *param.Tree, it *Item) (param.Handle, error) {
	h, err := newItem(tree, it)
	if err != nil {
		return param.NoHandle, fmt.Errorf("item %q: %w", it.ID, err)
	}
	if it.Hidden {
		tree.SetVisible(h, false)
	}
	if it.Type != TypeGroup {
		if len(it.Items) > 0 {
			return param.NoHandle, fmt.Errorf("item %q: %w: only groups have items", it.ID, ErrInvalidItem)
		}
		return h, nil
	}

	for i := range it.Items {
		child, err := buildItem(tree, &it.Items[i])
		if err != nil {
			return param.NoHandle, err
		}
		if err := tree.AddItem(h, child); err != nil {
			return param.NoHandle, fmt.Errorf("item %q: %w", it.Items[i].ID, err)
		}
	}
	return h, nil
}

func newItem(tree *param.Tree, it *Item) (param.Handle, error) {
	text := param.TextSpec{
		ID:          it.ID,
		Label:       it.Label,
		Length:      it.Length,
		Default:     it.Default,
		Placeholder: it.Placeholder,
		CustomHTML:  it.CustomHTML,
	}

	switch it.Type {
	case TypeGroup:
		var opts []param.GroupOption
		if it.Label != "" || it.Fieldset {
			opts = append(opts, param.WithLabel(it.Label))
		}
		return tree.NewGroup(it.ID, opts...)
	case TypeText:
		return tree.NewText(text)
	case TypeNumber:
		return tree.NewNumber(text)
	case TypePassword:
		return tree.NewPassword(text)
	case TypeCheckbox:
		return tree.NewCheckbox(param.CheckboxSpec{
			ID:      it.ID,
			Label:   it.Label,
			Length:  it.Length,
			Default: it.Checked,
		})
	case TypeSelect:
		spec := param.SelectSpec{
			ID:         it.ID,
			Label:      it.Label,
			Length:     it.Length,
			NameLength: it.NameLength,
			Default:    it.Default,
			CustomHTML: it.CustomHTML,
		}
		for _, o := range it.Options {
			spec.Values = append(spec.Values, o.Value)
			spec.Names = append(spec.Names, o.Name)
		}
		return tree.NewSelect(spec)
	default:
		return param.NoHandle, fmt.Errorf("%w: %q", ErrUnknownType, it.Type)
	}
}
