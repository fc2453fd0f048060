// Package layout holds the composition primitives of the report page.
// Every primitive is a pure function returning a fresh *html.Node tree;
// nothing is cached or shared between calls.
package layout

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Gap is the vertical spacing class of a stack.
type Gap string

const (
	GapTight Gap = "gap-3"
	GapLoose Gap = "gap-5"
	GapPage  Gap = "gap-16"
)

// Stack lays out children top to bottom.
func Stack(gap Gap, children ...*html.Node) *html.Node {
	return Element(atom.Div, "flex flex-col "+string(gap), children...)
}

// Header renders the page title with its italic byline.
func Header(title, byline string) *html.Node {
	n := Stack(GapTight, Element(atom.H1, "text-4xl font-semibold", Text(title)))
	if byline != "" {
		n.AppendChild(Element(atom.I, "text-sm", Text(byline)))
	}
	return n
}

// Element creates an element with an optional class and children.
// Nil children are skipped. A child that already has a parent panics,
// as html.Node.AppendChild does.
func Element(a atom.Atom, class string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		SetAttr(n, "class", class)
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// Text creates a text node. Escaping happens when the tree is rendered.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// SetAttr sets key on n, replacing any existing value.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Attr returns the value of key on n and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify converts a heading to a fragment-safe anchor id.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = strings.TrimRight(s[:50], "-")
	}
	return s
}
