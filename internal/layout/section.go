package layout

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Section renders a heading followed, only when body is non-empty, by a
// body paragraph. The heading carries an anchor id derived from its text.
func Section(heading, body string) *html.Node {
	h := Element(atom.H2, "text-xl font-medium", Text(heading))
	if id := Slugify(heading); id != "" {
		SetAttr(h, "id", id)
	}

	n := Stack(GapTight, h)
	if body != "" {
		n.AppendChild(Element(atom.P, "", Text(body)))
	}
	return n
}
