package layout

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Figure renders content followed by a centered italic caption. The
// caption is always the last child; content is not inspected.
func Figure(caption string, content *html.Node) *html.Node {
	return Stack(GapTight,
		content,
		Element(atom.I, "text-center text-sm", Text(caption)),
	)
}
