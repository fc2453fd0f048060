package manifest

import (
	"errors"
	"strings"
	"testing"
)

func validManifest() *Manifest {
	return &Manifest{
		Title:  "Chess Ray Tracer",
		Byline: "CS 488 Final Project",
		Blocks: []Block{
			{Topic: []Block{
				{Section: &Section{Heading: "Texture mapping", Body: "All primitives."}},
				{Row: &ImageRow{Images: []string{"textures.png"}}},
			}},
			{Topic: []Block{
				{Section: &Section{Heading: "Perlin noise"}},
				{Stack: []Block{
					{Row: &ImageRow{Images: []string{"perlin-graph.png"}, Style: StyleBoundedHeight}},
					{Math: `\frac{2}{1+x}`},
				}},
				{Paragraph: "where *R* is a factor."},
				{Figure: &Figure{
					Caption: "X vs Y",
					Content: &Block{Row: &ImageRow{Images: []string{"x.png", "y.png"}, Style: StyleBoundedHeightLg}},
				}},
			}},
		},
	}
}

func TestValidate_ValidPasses(t *testing.T) {
	if err := Validate(validManifest()); err != nil {
		t.Errorf("expected valid manifest to pass, got %v", err)
	}
}

func TestValidate_NilManifest(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error("expected nil manifest to fail validation")
	}
}

func TestValidate_EmptyImageRow(t *testing.T) {
	m := validManifest()
	m.Blocks[0].Topic[1].Row.Images = nil

	err := Validate(m)
	if !errors.Is(err, ErrEmptyImageRow) {
		t.Fatalf("expected ErrEmptyImageRow, got %v", err)
	}
	if !strings.Contains(err.Error(), "blocks[0].topic[1].row") {
		t.Errorf("expected error to name the row path, got %q", err.Error())
	}
}

func TestValidate_EmptyRowInsideFigure(t *testing.T) {
	m := validManifest()
	m.Blocks[1].Topic[3].Figure.Content.Row.Images = []string{}

	err := Validate(m)
	if !errors.Is(err, ErrEmptyImageRow) {
		t.Fatalf("expected ErrEmptyImageRow, got %v", err)
	}
	if !strings.Contains(err.Error(), "blocks[1].topic[3].figure.content.row") {
		t.Errorf("expected figure content path, got %q", err.Error())
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	m := validManifest()
	m.Title = " "
	m.Blocks[0].Topic[0].Section.Heading = ""
	m.Blocks[1].Topic[1].Stack[0].Row.Style = "huge"
	m.Blocks[1].Topic[3].Figure.Caption = ""

	err := Validate(m)
	if err == nil {
		t.Fatal("expected validation error")
	}
	want := []string{
		"title: must not be empty",
		"blocks[0].topic[0].section: heading must not be empty",
		`blocks[1].topic[1].stack[0].row: unknown style "huge"`,
		"blocks[1].topic[3].figure: caption must not be empty",
	}
	for _, w := range want {
		if !strings.Contains(err.Error(), w) {
			t.Errorf("expected error to contain %q, got:\n%s", w, err.Error())
		}
	}
}

func TestValidate_BlockShape(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{"empty block", Block{}, "block sets no content"},
		{"two variants", Block{Math: "x", Paragraph: "y"}, "block sets 2 kinds of content, want 1"},
		{"blank math", Block{Math: "   "}, "math: markup must not be blank"},
		{"blank paragraph", Block{Paragraph: "\n"}, "paragraph: text must not be blank"},
		{"empty topic", Block{Topic: []Block{}}, "topic: must contain at least one block"},
		{"empty stack", Block{Stack: []Block{}}, "stack: must contain at least one block"},
		{"figure without content", Block{Figure: &Figure{Caption: "c"}}, "figure: content is required"},
		{"blank identifier", Block{Row: &ImageRow{Images: []string{"a.png", " "}}}, "row.images[1]: identifier must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Manifest{Title: "T", Blocks: []Block{tt.block}}
			err := Validate(m)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestValidate_NoBlocks(t *testing.T) {
	err := Validate(&Manifest{Title: "Empty"})
	if err == nil || !strings.Contains(err.Error(), "blocks: must not be empty") {
		t.Errorf("expected empty blocks error, got %v", err)
	}
}

func TestStyle_Known(t *testing.T) {
	for _, s := range []Style{"", StyleDefault, StyleBoundedHeight, StyleBoundedHeightLg} {
		if !s.Known() {
			t.Errorf("expected %q to be known", s)
		}
	}
	if Style("max-h-60").Known() {
		t.Error("expected raw class names to be rejected as style tokens")
	}
}
