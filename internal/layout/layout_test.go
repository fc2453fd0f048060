package layout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgallion1/raytrace-report/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func countType(n *html.Node, t html.NodeType) int {
	count := 0
	if n.Type == t {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countType(c, t)
	}
	return count
}

func countAtom(n *html.Node, a atom.Atom) int {
	count := 0
	if n.Type == html.ElementNode && n.DataAtom == a {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countAtom(c, a)
	}
	return count
}

func renderString(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

func TestSection_HeadingOnly(t *testing.T) {
	n := Section("Final scene", "")

	kids := children(n)
	require.Len(t, kids, 1)
	assert.Equal(t, atom.H2, kids[0].DataAtom)
	assert.Equal(t, "Final scene", kids[0].FirstChild.Data)
	assert.Equal(t, 1, countType(n, html.TextNode))
	assert.Equal(t, 0, countAtom(n, atom.P))
}

func TestSection_WithBody(t *testing.T) {
	n := Section("Texture mapping", "Spheres and boxes.")

	kids := children(n)
	require.Len(t, kids, 2)
	assert.Equal(t, atom.H2, kids[0].DataAtom)
	assert.Equal(t, atom.P, kids[1].DataAtom)
	assert.Equal(t, "Spheres and boxes.", kids[1].FirstChild.Data)

	class, _ := Attr(kids[0], "class")
	assert.Equal(t, "text-xl font-medium", class)
	id, _ := Attr(kids[0], "id")
	assert.Equal(t, "texture-mapping", id)
}

func TestSection_BodyIsEscaped(t *testing.T) {
	out := renderString(t, Section("Threads", "The C++ <thread> library"))
	assert.Contains(t, out, "The C++ &lt;thread&gt; library")
}

func TestImageRow_ResolvesPathsInOrder(t *testing.T) {
	row := Assets{Root: "/images"}.ImageRow([]string{"a.png", "b.png"}, manifest.StyleDefault)

	class, _ := Attr(row, "class")
	assert.Equal(t, "flex flex-row justify-around", class)

	imgs := children(row)
	require.Len(t, imgs, 2)
	var srcs []string
	for _, img := range imgs {
		assert.Equal(t, atom.Img, img.DataAtom)
		src, _ := Attr(img, "src")
		srcs = append(srcs, src)
		_, hasClass := Attr(img, "class")
		assert.False(t, hasClass, "default style adds no class")
	}
	assert.Equal(t, []string{"/images/a.png", "/images/b.png"}, srcs)
}

func TestImageRow_OrderPreserved(t *testing.T) {
	inputs := [][]string{
		{"one.png"},
		{"z.png", "a.png", "m.png"},
		{"perlin-1.png", "perlin-2.png", "perlin-3.png", "perlin-4.png"},
		{"dup.png", "dup.png", "x.png"},
	}
	assets := Assets{Root: "/images"}
	for _, images := range inputs {
		row := assets.ImageRow(images, manifest.StyleBoundedHeight)
		imgs := children(row)
		require.Len(t, imgs, len(images))
		for i, img := range imgs {
			src, _ := Attr(img, "src")
			assert.Equal(t, "/images/"+images[i], src)
			class, _ := Attr(img, "class")
			assert.Equal(t, "max-h-60", class)
		}
	}
}

func TestImageRow_EmptyRendersEmptyRow(t *testing.T) {
	row := Assets{}.ImageRow(nil, manifest.StyleDefault)
	assert.Nil(t, row.FirstChild)
}

func TestAssets_Resolve(t *testing.T) {
	tests := []struct {
		root string
		id   string
		want string
	}{
		{"/images", "a.png", "/images/a.png"},
		{"/images/", "a.png", "/images/a.png"},
		{"/images", "/a.png", "/images/a.png"},
		{"", "a.png", "/images/a.png"},
		{"/static/img", "sub/b.png", "/static/img/sub/b.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Assets{Root: tt.root}.Resolve(tt.id), "root=%q id=%q", tt.root, tt.id)
	}
}

func TestStyleClass(t *testing.T) {
	assert.Equal(t, "", StyleClass(""))
	assert.Equal(t, "", StyleClass(manifest.StyleDefault))
	assert.Equal(t, "max-h-60", StyleClass(manifest.StyleBoundedHeight))
	assert.Equal(t, "max-h-80", StyleClass(manifest.StyleBoundedHeightLg))
}

func TestFigure_CaptionTrails(t *testing.T) {
	assets := Assets{Root: "/images"}
	contents := []*html.Node{
		assets.ImageRow([]string{"x.png", "y.png"}, manifest.StyleDefault),
		Stack(GapTight,
			assets.ImageRow([]string{"graph.png"}, manifest.StyleBoundedHeight),
			KaTeX{}.RenderMath("a+b=c"),
			Section("Nested", "body"),
		),
		Text("plain text content"),
	}
	for _, content := range contents {
		fig := Figure("X vs Y", content)
		kids := children(fig)
		require.Len(t, kids, 2)
		assert.Same(t, content, kids[0])

		caption := kids[len(kids)-1]
		assert.Equal(t, atom.I, caption.DataAtom)
		assert.Equal(t, "X vs Y", caption.FirstChild.Data)
		class, _ := Attr(caption, "class")
		assert.Equal(t, "text-center text-sm", class)
	}
}

func TestKaTeX_RenderMath(t *testing.T) {
	n := KaTeX{}.RenderMath("a+b=c")

	assert.Equal(t, atom.Div, n.DataAtom)
	markup, ok := Attr(n, "data-math")
	require.True(t, ok)
	assert.Equal(t, "a+b=c", markup)
	class, _ := Attr(n, "class")
	assert.Contains(t, class, "text-center")
	assert.Equal(t, "a+b=c", n.FirstChild.Data)
}

func TestKaTeX_MarkupIsNotInterpreted(t *testing.T) {
	markup := `\frac{2}{1+\big|\sin(\pi x)\big|}-1 < "q" & x`
	out := renderString(t, KaTeX{}.RenderMath(markup))
	assert.Contains(t, out, `\frac{2}{1+\big|\sin(\pi x)\big|}-1 &lt; &#34;q&#34; &amp; x`)
}

func TestParagraph_InlineMarkdown(t *testing.T) {
	nodes, err := Paragraph("where *R* is the reflection sample factor")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, atom.P, nodes[0].DataAtom)
	assert.Nil(t, nodes[0].Parent)

	out := renderString(t, nodes[0])
	assert.Equal(t, "<p>where <em>R</em> is the reflection sample factor</p>", out)
}

func TestParagraph_RawHTMLIsDropped(t *testing.T) {
	nodes, err := Paragraph("before <script>alert(1)</script> after")
	require.NoError(t, err)

	var out strings.Builder
	for _, n := range nodes {
		out.WriteString(renderString(t, n))
	}
	assert.NotContains(t, out.String(), "<script>")
}

func TestHeader(t *testing.T) {
	n := Header("Chess Ray Tracer", "CS 488 Final Project by Thomas Kou")
	kids := children(n)
	require.Len(t, kids, 2)
	assert.Equal(t, atom.H1, kids[0].DataAtom)
	assert.Equal(t, atom.I, kids[1].DataAtom)

	assert.Len(t, children(Header("Only title", "")), 1)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Texture mapping", "texture-mapping"},
		{"Bump/normal mapping", "bump-normal-mapping"},
		{"(BONUS) Multithreading", "bonus-multithreading"},
		{"  Final   scene  ", "final-scene"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "in=%q", tt.in)
	}
	assert.LessOrEqual(t, len(Slugify(strings.Repeat("ab ", 40))), 50)
}
