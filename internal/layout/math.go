package layout

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MathRenderer turns math markup into a block equation. The markup is
// opaque here; errors in it are the renderer's concern.
type MathRenderer interface {
	RenderMath(markup string) *html.Node
}

// KaTeX delegates typesetting to KaTeX running in the page. The markup is
// kept as the element text so the page still reads without scripts.
type KaTeX struct{}

// KaTeXSelector matches every element KaTeX should typeset.
const KaTeXSelector = "[data-math]"

func (KaTeX) RenderMath(markup string) *html.Node {
	n := Element(atom.Div, "math-block text-center", Text(markup))
	SetAttr(n, "data-math", markup)
	return n
}

// KaTeXScript typesets every math block in display mode. Invalid markup
// is rendered inline by KaTeX instead of aborting the page.
const KaTeXScript = `document.querySelectorAll("` + KaTeXSelector + `").forEach(function (el) {
  katex.render(el.getAttribute("data-math"), el, { displayMode: true, throwOnError: false });
});`
