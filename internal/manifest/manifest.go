package manifest

// Manifest is the complete, literal description of the report page.
type Manifest struct {
	Title  string  `yaml:"title" json:"title"`   // Page heading
	Byline string  `yaml:"byline" json:"byline"` // Italic line under the heading
	Blocks []Block `yaml:"blocks" json:"blocks"` // Rendered top to bottom
}

// Kind names the variant carried by a Block.
type Kind string

const (
	KindNone      Kind = ""
	KindSection   Kind = "section"
	KindFigure    Kind = "figure"
	KindImageRow  Kind = "row"
	KindMath      Kind = "math"
	KindParagraph Kind = "paragraph"
	KindTopic     Kind = "topic"
	KindStack     Kind = "stack"
)

// Block is one unit of the page. Exactly one field is set.
type Block struct {
	Section   *Section  `yaml:"section,omitempty" json:"section,omitempty"`
	Figure    *Figure   `yaml:"figure,omitempty" json:"figure,omitempty"`
	Row       *ImageRow `yaml:"row,omitempty" json:"row,omitempty"`
	Math      string    `yaml:"math,omitempty" json:"math,omitempty"`           // Math markup, typeset by the page
	Paragraph string    `yaml:"paragraph,omitempty" json:"paragraph,omitempty"` // Inline Markdown
	Topic     []Block   `yaml:"topic,omitempty" json:"topic,omitempty"`         // Loosely spaced group
	Stack     []Block   `yaml:"stack,omitempty" json:"stack,omitempty"`         // Tightly spaced group
}

// Section is a heading with an optional body paragraph.
type Section struct {
	Heading string `yaml:"heading" json:"heading"`
	Body    string `yaml:"body,omitempty" json:"body,omitempty"`
}

// Figure wraps content with a caption rendered beneath it.
type Figure struct {
	Caption string `yaml:"caption" json:"caption"`
	Content *Block `yaml:"content" json:"content"`
}

// ImageRow is an ordered row of asset identifiers sharing one display style.
type ImageRow struct {
	Images []string `yaml:"images" json:"images"`
	Style  Style    `yaml:"style,omitempty" json:"style,omitempty"`
}

// Style is the display token applied to every image of a row.
type Style string

const (
	StyleDefault         Style = "default"
	StyleBoundedHeight   Style = "bounded-height"
	StyleBoundedHeightLg Style = "bounded-height-lg"
)

// Known reports whether s is a recognised style token. The empty token
// is treated as StyleDefault.
func (s Style) Known() bool {
	switch s {
	case "", StyleDefault, StyleBoundedHeight, StyleBoundedHeightLg:
		return true
	}
	return false
}

// Kind returns the variant set on b, or KindNone when none is.
// When several are set the first in declaration order wins; Validate
// rejects such blocks.
func (b Block) Kind() Kind {
	switch {
	case b.Section != nil:
		return KindSection
	case b.Figure != nil:
		return KindFigure
	case b.Row != nil:
		return KindImageRow
	case b.Math != "":
		return KindMath
	case b.Paragraph != "":
		return KindParagraph
	case b.Topic != nil:
		return KindTopic
	case b.Stack != nil:
		return KindStack
	}
	return KindNone
}

func (b Block) variantCount() int {
	n := 0
	if b.Section != nil {
		n++
	}
	if b.Figure != nil {
		n++
	}
	if b.Row != nil {
		n++
	}
	if b.Math != "" {
		n++
	}
	if b.Paragraph != "" {
		n++
	}
	if b.Topic != nil {
		n++
	}
	if b.Stack != nil {
		n++
	}
	return n
}

// Headings returns the section headings of the manifest in document order.
func (m *Manifest) Headings() []string {
	var out []string
	var walk func([]Block)
	walk = func(blocks []Block) {
		for _, b := range blocks {
			switch b.Kind() {
			case KindSection:
				out = append(out, b.Section.Heading)
			case KindFigure:
				if b.Figure.Content != nil {
					walk([]Block{*b.Figure.Content})
				}
			case KindTopic:
				walk(b.Topic)
			case KindStack:
				walk(b.Stack)
			}
		}
	}
	walk(m.Blocks)
	return out
}
