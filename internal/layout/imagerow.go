package layout

import (
	"strings"

	"github.com/dgallion1/raytrace-report/internal/manifest"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultAssetRoot is the URL prefix images are served under.
const DefaultAssetRoot = "/images"

// Assets resolves asset identifiers against a fixed root. Existence of
// the files is never checked; a missing file shows up as a broken image.
type Assets struct {
	Root string
}

// Resolve returns the servable reference for id.
func (a Assets) Resolve(id string) string {
	root := a.Root
	if root == "" {
		root = DefaultAssetRoot
	}
	return strings.TrimRight(root, "/") + "/" + strings.TrimLeft(id, "/")
}

// StyleClass maps a display style token to its utility classes.
func StyleClass(s manifest.Style) string {
	switch s {
	case manifest.StyleBoundedHeight:
		return "max-h-60"
	case manifest.StyleBoundedHeightLg:
		return "max-h-80"
	}
	return ""
}

// ImageRow renders one image per identifier, left to right in input
// order, spaced evenly. An empty slice renders an empty row; manifests
// with empty rows are rejected before composition.
func (a Assets) ImageRow(images []string, style manifest.Style) *html.Node {
	row := Element(atom.Div, "flex flex-row justify-around")
	class := StyleClass(style)
	for _, id := range images {
		img := Element(atom.Img, class)
		SetAttr(img, "src", a.Resolve(id))
		SetAttr(img, "alt", id)
		row.AppendChild(img)
	}
	return row
}
