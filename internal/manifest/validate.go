package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyImageRow marks an image row without identifiers. Rows must carry
// at least one image; composition refuses manifests containing one.
var ErrEmptyImageRow = errors.New("image row has no images")

// Validate checks the structure of m and returns every problem found,
// joined into one error. A nil return means m can be composed.
func Validate(m *Manifest) error {
	if m == nil {
		return errors.New("manifest is nil")
	}
	var errs []error
	if strings.TrimSpace(m.Title) == "" {
		errs = append(errs, errors.New("title: must not be empty"))
	}
	if len(m.Blocks) == 0 {
		errs = append(errs, errors.New("blocks: must not be empty"))
	}
	for i, b := range m.Blocks {
		errs = append(errs, validateBlock(b, fmt.Sprintf("blocks[%d]", i))...)
	}
	return errors.Join(errs...)
}

func validateBlock(b Block, path string) []error {
	if n := b.variantCount(); n != 1 {
		if n == 0 {
			return []error{fmt.Errorf("%s: block sets no content", path)}
		}
		return []error{fmt.Errorf("%s: block sets %d kinds of content, want 1", path, n)}
	}

	var errs []error
	fail := func(msg string) {
		errs = append(errs, fmt.Errorf("%s.%s", path, msg))
	}

	switch b.Kind() {
	case KindSection:
		if strings.TrimSpace(b.Section.Heading) == "" {
			fail("section: heading must not be empty")
		}
	case KindFigure:
		if strings.TrimSpace(b.Figure.Caption) == "" {
			fail("figure: caption must not be empty")
		}
		if b.Figure.Content == nil {
			fail("figure: content is required")
		} else {
			errs = append(errs, validateBlock(*b.Figure.Content, path+".figure.content")...)
		}
	case KindImageRow:
		errs = append(errs, validateRow(b.Row, path+".row")...)
	case KindMath:
		if strings.TrimSpace(b.Math) == "" {
			fail("math: markup must not be blank")
		}
	case KindParagraph:
		if strings.TrimSpace(b.Paragraph) == "" {
			fail("paragraph: text must not be blank")
		}
	case KindTopic:
		errs = append(errs, validateGroup(b.Topic, path+".topic")...)
	case KindStack:
		errs = append(errs, validateGroup(b.Stack, path+".stack")...)
	}
	return errs
}

func validateRow(r *ImageRow, path string) []error {
	var errs []error
	if len(r.Images) == 0 {
		errs = append(errs, fmt.Errorf("%s: %w", path, ErrEmptyImageRow))
	}
	for i, id := range r.Images {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, fmt.Errorf("%s.images[%d]: identifier must not be empty", path, i))
		}
	}
	if !r.Style.Known() {
		errs = append(errs, fmt.Errorf("%s: unknown style %q", path, r.Style))
	}
	return errs
}

func validateGroup(blocks []Block, path string) []error {
	if len(blocks) == 0 {
		return []error{fmt.Errorf("%s: must contain at least one block", path)}
	}
	var errs []error
	for i, b := range blocks {
		errs = append(errs, validateBlock(b, fmt.Sprintf("%s[%d]", path, i))...)
	}
	return errs
}
