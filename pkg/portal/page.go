package portal

import (
	"html"
	"strings"
)

const pageHead = "<!DOCTYPE html><html lang=\"en\"><head>" +
	"<meta name=\"viewport\" content=\"width=device-width, initial-scale=1, user-scalable=no\"/>" +
	"<title>{v}</title>\n" +
	"<style>div{padding:2px;font-size:1em;} body,textarea,input,select{background:0;border-radius:0;font-family:sans-serif;}" +
	" input,select{width:95%;} fieldset{border-radius:0.3rem;margin:0px;}" +
	" button{border:0;border-radius:0.3rem;background-color:#16A1E7;color:#fff;line-height:2.4rem;font-size:1.2rem;width:100%;}" +
	" .de{background-color:#ffaaaa;} .em{font-size:0.8em;color:#bb0000;padding-bottom:0px;}</style>\n" +
	"</head><body><div style=\"text-align:left;display:inline-block;min-width:260px;\">\n"

// SaveFormField is the hidden field marking a form submission. A POST
// without it only renders the page.
const SaveFormField = "iwcSaveForm"

const (
	pageFormStart = "<form action=\"\" method=\"post\"><input type=\"hidden\" name=\"" + SaveFormField + "\" value=\"true\"/>\n"
	pageFormEnd   = "<button type=\"submit\">Apply</button></form>\n"
	pageSaved     = "<div>Configuration saved. <a href=\"\">Return to the config page.</a></div>\n"
	pageEnd       = "</div></body></html>\n"
)

// head returns the page head with the escaped title.
func head(title string) string {
	return strings.Replace(pageHead, "{v}", html.EscapeString(title), 1)
}
