package param

import (
	"html"
	"strconv"
	"strings"
)

// RenderHTML streams the form markup of h to req. When dataArrived is set
// the request is a form submission, and text fields redisplay what was
// submitted instead of the stored value.
func (t *Tree) RenderHTML(h Handle, dataArrived bool, req Request) error {
	n := t.node(h)
	if n == nil {
		return ErrUnknownHandle
	}
	if n.kind != KindGroup {
		return req.SendContent(t.renderParam(n, dataArrived, req.HasArg(n.id), req.Arg(n.id)))
	}

	if n.hasLabel {
		var sb strings.Builder
		sb.WriteString("<fieldset id='")
		sb.WriteString(html.EscapeString(n.id))
		sb.WriteString("'>")
		if n.label != "" {
			sb.WriteString("<legend>")
			sb.WriteString(html.EscapeString(n.label))
			sb.WriteString("</legend>")
		}
		if err := req.SendContent(sb.String()); err != nil {
			return err
		}
	}
	for c := n.firstChild; c != NoHandle; c = t.nodes[c].nextSibling {
		if !t.nodes[c].visible {
			continue
		}
		if err := t.RenderHTML(c, dataArrived, req); err != nil {
			return err
		}
	}
	if n.hasLabel {
		return req.SendContent("</fieldset>")
	}
	return nil
}

// renderParam returns the markup of one parameter.
func (t *Tree) renderParam(n *node, dataArrived, hasPost bool, post string) string {
	switch n.kind {
	case KindPassword:
		return renderInput(n, true, "", n.customHTML)
	case KindCheckbox:
		checked := cString(n.buffer) == CheckboxValue
		if dataArrived {
			checked = hasPost && post == CheckboxValue
		}
		custom := ""
		if checked {
			custom = HTMLCheckedAttr
		}
		return renderInput(n, true, CheckboxValue, custom)
	case KindSelect:
		return renderSelect(n, hasPost, post)
	default:
		return renderInput(n, dataArrived && hasPost, post, n.customHTML)
	}
}

// errorTokens sets the error style and text tokens.
func errorTokens(n *node, values tokens) {
	if n.errorMessage == "" {
		values['s'] = ""
		values['e'] = ""
		return
	}
	values['s'] = HTMLErrorStyle
	values['e'] = html.EscapeString(n.errorMessage)
}

func renderInput(n *node, hasPost bool, post, custom string) string {
	value := cString(n.buffer)
	if hasPost {
		value = post
	}
	values := tokens{
		'b': html.EscapeString(n.label),
		't': n.kind.inputType(),
		'i': html.EscapeString(n.id),
		'p': html.EscapeString(n.placeholder),
		'l': strconv.Itoa(len(n.buffer)),
		'v': html.EscapeString(value),
		'c': custom,
	}
	errorTokens(n, values)
	return fill(HTMLFormParam, values)
}

func renderSelect(n *node, hasPost bool, post string) string {
	stored := cString(n.buffer)

	var options strings.Builder
	for _, opt := range n.options {
		selected := ""
		if (hasPost && post == opt.Value) || stored == opt.Value {
			selected = " selected"
		}
		options.WriteString(fill(HTMLFormOption, tokens{
			'v': html.EscapeString(opt.Value),
			'n': html.EscapeString(opt.Name),
			's': selected,
		}))
	}

	values := tokens{
		'b': html.EscapeString(n.label),
		'i': html.EscapeString(n.id),
		'c': n.customHTML,
		'o': options.String(),
	}
	errorTokens(n, values)
	return fill(HTMLFormSelectParam, values)
}
