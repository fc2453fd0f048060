package manifest

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownLoader builds a manifest from a Markdown outline using goldmark.
//
//   - "# Title" sets the page title; an emphasis-only paragraph right after
//     it becomes the byline.
//   - "## Heading" opens a new topic starting with a Section. A plain
//     paragraph directly after the heading becomes the section body.
//   - A paragraph made only of images is an image row. The image title
//     carries the style token: ![](a.png "bounded-height").
//   - An emphasis-only paragraph directly after an image row turns that row
//     into a figure captioned with the emphasized text.
//   - A fenced code block tagged "math" is a math expression.
//   - Anything else is kept as a raw paragraph.
type MarkdownLoader struct{}

func (l *MarkdownLoader) Load(r io.Reader, filename string) (*Manifest, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	m := &Manifest{}
	b := &outlineBuilder{m: m}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := inlineText(node, src)
			if node.Level == 1 {
				b.flush()
				m.Title = title
				b.expectByline = true
				continue
			}
			b.openTopic(title)

		case *ast.Paragraph:
			b.paragraph(node, src)

		case *ast.FencedCodeBlock:
			if string(node.Language(src)) == "math" {
				if markup := blockLines(node, src); markup != "" {
					b.add(Block{Math: markup})
				}
			} else if t := blockLines(node, src); t != "" {
				b.add(Block{Paragraph: t})
			}

		case *ast.ThematicBreak:
			// Separators carry no content.

		default:
			if t := blockText(n, src); t != "" {
				b.add(Block{Paragraph: t})
			}
		}
		b.expectByline = false
	}
	b.flush()

	return m, nil
}

// outlineBuilder accumulates blocks under the currently open topic.
type outlineBuilder struct {
	m            *Manifest
	topic        []Block // nil when no topic is open
	open         bool
	expectByline bool
}

func (b *outlineBuilder) openTopic(heading string) {
	b.flush()
	b.open = true
	b.topic = []Block{{Section: &Section{Heading: heading}}}
}

func (b *outlineBuilder) flush() {
	if b.open {
		b.m.Blocks = append(b.m.Blocks, Block{Topic: b.topic})
	}
	b.topic = nil
	b.open = false
}

func (b *outlineBuilder) add(block Block) {
	if b.open {
		b.topic = append(b.topic, block)
		return
	}
	b.m.Blocks = append(b.m.Blocks, block)
}

// last returns the most recently added block in the current container.
func (b *outlineBuilder) last() *Block {
	if b.open {
		if len(b.topic) == 0 {
			return nil
		}
		return &b.topic[len(b.topic)-1]
	}
	if len(b.m.Blocks) == 0 {
		return nil
	}
	return &b.m.Blocks[len(b.m.Blocks)-1]
}

func (b *outlineBuilder) paragraph(p *ast.Paragraph, src []byte) {
	if row, ok := imageRow(p, src); ok {
		b.add(Block{Row: row})
		return
	}

	if caption, ok := emphasisOnly(p, src); ok {
		if b.expectByline && b.m.Byline == "" {
			b.m.Byline = caption
			return
		}
		if prev := b.last(); prev != nil && prev.Kind() == KindImageRow {
			row := *prev
			*prev = Block{Figure: &Figure{Caption: caption, Content: &row}}
			return
		}
	}

	// A plain paragraph right after a heading is the section body.
	if prev := b.last(); b.open && len(b.topic) == 1 && prev.Kind() == KindSection && prev.Section.Body == "" {
		prev.Section.Body = inlineText(p, src)
		return
	}

	if t := blockLines(p, src); t != "" {
		b.add(Block{Paragraph: t})
	}
}

// imageRow reports whether p holds only images, separated by whitespace.
func imageRow(p *ast.Paragraph, src []byte) (*ImageRow, bool) {
	row := &ImageRow{}
	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Image:
			row.Images = append(row.Images, string(n.Destination))
			if style := Style(strings.TrimSpace(string(n.Title))); style != "" {
				row.Style = style
			}
		case *ast.Text:
			if strings.TrimSpace(string(n.Value(src))) != "" {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	if len(row.Images) == 0 {
		return nil, false
	}
	return row, true
}

// emphasisOnly reports whether p consists of a single emphasis span.
func emphasisOnly(p *ast.Paragraph, src []byte) (string, bool) {
	if p.ChildCount() != 1 {
		return "", false
	}
	em, ok := p.FirstChild().(*ast.Emphasis)
	if !ok {
		return "", false
	}
	return inlineText(em, src), true
}

// inlineText concatenates the text of n's inline descendants.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Value(src))
				if t.SoftLineBreak() || t.HardLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

// blockLines returns the raw source lines of a block node, so inline
// Markdown survives into the paragraph.
func blockLines(n ast.Node, src []byte) string {
	lines := n.Lines()
	out := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		out = append(out, strings.TrimRight(string(line.Value(src)), "\r\n"))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// blockText flattens container blocks such as lists and quotes.
func blockText(n ast.Node, src []byte) string {
	if n.Type() != ast.TypeBlock {
		return ""
	}
	if n.Lines().Len() > 0 {
		return blockLines(n, src)
	}
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}
