package param

import "strings"

// HTML templates. Tokens: {b} label, {t} input type, {i} id, {p}
// placeholder, {l} buffer length, {v} value, {c} custom html, {s} error
// style, {e} error text, {o} options, {n} option name.
const (
	HTMLFormParam = "<div class='{s}'><label for='{i}'>{b}</label>" +
		"<input type='{t}' id='{i}' name='{i}' maxlength='{l}' placeholder='{p}' value='{v}' {c}/>" +
		"<div class='em'>{e}</div></div>\n"

	HTMLFormSelectParam = "<div class='{s}'><label for='{i}'>{b}</label>" +
		"<select id='{i}' name='{i}' {c}>\n{o}</select>" +
		"<div class='em'>{e}</div></div>\n"

	HTMLFormOption = "<option value='{v}'{s}>{n}</option>\n"

	// HTMLCheckedAttr is injected into a ticked checkbox.
	HTMLCheckedAttr = "checked='checked'"

	// HTMLErrorStyle is the div class of a field with an error message.
	HTMLErrorStyle = "de"
)

// tokens maps a template token letter to its replacement.
type tokens map[byte]string

// fill substitutes every {x} token of tmpl in a single pass. Replacement
// text is copied as is and never scanned again; tokens without a
// replacement are kept literally.
func fill(tmpl string, values tokens) string {
	var sb strings.Builder
	sb.Grow(len(tmpl))
	for i := 0; i < len(tmpl); {
		if tmpl[i] == '{' && i+2 < len(tmpl) && tmpl[i+2] == '}' {
			if v, ok := values[tmpl[i+1]]; ok {
				sb.WriteString(v)
				i += 3
				continue
			}
		}
		sb.WriteByte(tmpl[i])
		i++
	}
	return sb.String()
}
