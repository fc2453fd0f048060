// Package render composes a manifest into a complete HTML document.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgallion1/raytrace-report/internal/layout"
	"github.com/dgallion1/raytrace-report/internal/manifest"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// pageClass is the layout of the outer page container.
const pageClass = "container mx-auto my-20 mb-48 flex max-w-5xl flex-col gap-16 text-gray-700"

// Head lists the collaborators the page loads: the utility-class
// stylesheet and the math typesetter.
type Head struct {
	Stylesheets []string
	Scripts     []string
	// InlineScript runs at the end of <body>, after Scripts have loaded.
	InlineScript string
}

// Composer turns a manifest into a document tree.
type Composer struct {
	Assets layout.Assets
	Math   layout.MathRenderer
	Head   Head
}

// NewComposer returns a composer typesetting math with KaTeX.
func NewComposer(assets layout.Assets, head Head) *Composer {
	return &Composer{Assets: assets, Math: layout.KaTeX{}, Head: head}
}

// Compose validates m and builds the full document. The result is a fresh
// tree; composing the same manifest again yields an identical one.
func (c *Composer) Compose(m *manifest.Manifest) (*html.Node, error) {
	if err := manifest.Validate(m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	page := layout.Stack(layout.GapPage, layout.Header(m.Title, m.Byline))
	layout.SetAttr(page, "class", pageClass)
	for i, b := range m.Blocks {
		nodes, err := c.block(b)
		if err != nil {
			return nil, fmt.Errorf("blocks[%d]: %w", i, err)
		}
		appendAll(page, nodes)
	}

	body := layout.Element(atom.Body, "", page)
	if c.Head.InlineScript != "" {
		// Script children are written unescaped by html.Render.
		body.AppendChild(layout.Element(atom.Script, "", layout.Text(c.Head.InlineScript)))
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := layout.Element(atom.Html, "", c.head(m.Title), body)
	layout.SetAttr(root, "lang", "en")
	doc.AppendChild(root)
	return doc, nil
}

// block renders one manifest block. Paragraphs may expand to several nodes.
func (c *Composer) block(b manifest.Block) ([]*html.Node, error) {
	switch b.Kind() {
	case manifest.KindSection:
		return []*html.Node{layout.Section(b.Section.Heading, b.Section.Body)}, nil

	case manifest.KindFigure:
		content, err := c.block(*b.Figure.Content)
		if err != nil {
			return nil, err
		}
		return []*html.Node{layout.Figure(b.Figure.Caption, group(content))}, nil

	case manifest.KindImageRow:
		return []*html.Node{c.Assets.ImageRow(b.Row.Images, b.Row.Style)}, nil

	case manifest.KindMath:
		math := c.Math
		if math == nil {
			math = layout.KaTeX{}
		}
		return []*html.Node{math.RenderMath(b.Math)}, nil

	case manifest.KindParagraph:
		return layout.Paragraph(b.Paragraph)

	case manifest.KindTopic:
		return c.stack(layout.GapLoose, b.Topic)

	case manifest.KindStack:
		return c.stack(layout.GapTight, b.Stack)
	}
	return nil, fmt.Errorf("unknown block kind %q", b.Kind())
}

func (c *Composer) stack(gap layout.Gap, blocks []manifest.Block) ([]*html.Node, error) {
	n := layout.Stack(gap)
	for i, b := range blocks {
		nodes, err := c.block(b)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		appendAll(n, nodes)
	}
	return []*html.Node{n}, nil
}

func (c *Composer) head(title string) *html.Node {
	h := layout.Element(atom.Head, "")

	meta := layout.Element(atom.Meta, "")
	layout.SetAttr(meta, "charset", "utf-8")
	h.AppendChild(meta)

	viewport := layout.Element(atom.Meta, "")
	layout.SetAttr(viewport, "name", "viewport")
	layout.SetAttr(viewport, "content", "width=device-width, initial-scale=1")
	h.AppendChild(viewport)

	h.AppendChild(layout.Element(atom.Title, "", layout.Text(title)))

	for _, href := range c.Head.Stylesheets {
		link := layout.Element(atom.Link, "")
		layout.SetAttr(link, "rel", "stylesheet")
		layout.SetAttr(link, "href", href)
		h.AppendChild(link)
	}
	for _, src := range c.Head.Scripts {
		s := layout.Element(atom.Script, "")
		layout.SetAttr(s, "src", src)
		h.AppendChild(s)
	}
	return h
}

// RenderBytes composes m and serializes the document.
func (c *Composer) RenderBytes(m *manifest.Manifest) ([]byte, error) {
	doc, err := c.Compose(m)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render serializes a composed document.
func Render(w io.Writer, doc *html.Node) error {
	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// group returns the single node of nodes, or a tight stack holding all of them.
func group(nodes []*html.Node) *html.Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	return layout.Stack(layout.GapTight, nodes...)
}

func appendAll(parent *html.Node, nodes []*html.Node) {
	for _, n := range nodes {
		parent.AppendChild(n)
	}
}
