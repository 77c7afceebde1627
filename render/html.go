package render

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"
	"html"
	"io"

	"github.com/npillmayer/vistra/gen/ir"
)

// FamilyAsHTML exports a family in HTML-format: one table per class,
// listing every method with its parameters, kind and body.
func FamilyAsHTML(fam *ir.Family, w io.Writer) {
	if fam == nil {
		tracer().Errorf("no family generated yet, cannot export to HTML")
		return
	}
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("family <b>%s</b> (%s, arity %d), fingerprint sha1:%s<p>",
		html.EscapeString(fam.Name), fam.Variety, fam.Arity, Fingerprint(fam)))
	classAsHTML(fam.Base, "base class", w)
	classAsHTML(fam.Variant, "variety subclass", w)
	io.WriteString(w, "</body></html>\n")
}

func classAsHTML(c *ir.Class, role string, w io.Writer) {
	io.WriteString(w, fmt.Sprintf("<b>%s</b> (%s)<p>", html.EscapeString(c.Name), role))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td>method</td><td>parameters</td><td>kind</td><td>body</td></tr>\n")
	for _, m := range c.Methods {
		kind := "concrete"
		if m.Virtual {
			kind = "virtual"
		}
		body := ""
		if m.Body != nil {
			body = m.Body.String()
		}
		io.WriteString(w, fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td><td><code>%s</code></td></tr>\n",
			html.EscapeString(m.Name), html.EscapeString(paramList(m.Params)),
			kind, html.EscapeString(body)))
	}
	io.WriteString(w, "</table><p>\n")
}
