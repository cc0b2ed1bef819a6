package obsidian2html

import (
	"bytes"
	"regexp"
	"strconv"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// imageSizePattern matches alt text carrying a normalized trailing size:
// "alt|WIDTHxHEIGHT". Preprocess guarantees the two-part form, so a bare
// "|600" never reaches the renderer.
var imageSizePattern = regexp.MustCompile(`^(.*)\|(\d+)x(\d+)$`)

// embedRenderer renders links and images. Embeds the preprocessor marked
// get decorated; everything else goes through a fallback that reproduces
// goldmark's default output. The fallbacks are explicit fields rather
// than registry lookups, so the decoration chain stays visible in one
// place.
type embedRenderer struct {
	html.Config
	linkFallback  renderer.NodeRendererFunc
	imageFallback renderer.NodeRendererFunc
}

func newEmbedRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &embedRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	r.linkFallback = r.renderDefaultLink
	r.imageFallback = r.renderDefaultImage
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *embedRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindImage, r.renderImage)
}

// renderLink re-asserts the file-embed marker class before delegating to
// the fallback. A no-op when upstream behaved, but it gives stylesheets
// one stable hook that does not re-derive embed-ness from the URL.
func (r *embedRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering && hasClass(classOf(node), []byte(EmbedFileClass)) {
		addClass(node, []byte(EmbedFileClass))
	}
	return r.linkFallback(w, source, node, entering)
}

// renderImage writes sized images (alt carrying "|WxH") with width and
// height attributes and the size stripped from the alt text. Unsized
// images take the fallback path.
func (r *embedRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.Image)
	m := imageSizePattern.FindSubmatch(nodeText(n, source))
	if m == nil {
		return r.imageFallback(w, source, node, entering)
	}
	width, _ := strconv.Atoi(string(m[2]))
	height, _ := strconv.Atoi(string(m[3]))

	_, _ = w.WriteString(`<img src="`)
	r.writeDestination(w, n.Destination)
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML(m[1]))
	_ = w.WriteByte('"')
	if width > 0 {
		_, _ = w.WriteString(` width="`)
		_, _ = w.WriteString(strconv.Itoa(width))
		_ = w.WriteByte('"')
	}
	// Height zero means only a width was requested; the attribute is
	// omitted so the browser keeps the aspect ratio.
	if height > 0 {
		_, _ = w.WriteString(` height="`)
		_, _ = w.WriteString(strconv.Itoa(height))
		_ = w.WriteByte('"')
	}
	r.writeTitle(w, n.Title)
	if n.Attributes() != nil {
		html.RenderAttributes(w, n, html.ImageAttributeFilter)
	}
	r.closeImgTag(w)
	return ast.WalkSkipChildren, nil
}

// renderDefaultLink reproduces goldmark's stock link rendering, attribute
// handling included.
func (r *embedRenderer) renderDefaultLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if entering {
		_, _ = w.WriteString(`<a href="`)
		r.writeDestination(w, n.Destination)
		_ = w.WriteByte('"')
		r.writeTitle(w, n.Title)
		if n.Attributes() != nil {
			html.RenderAttributes(w, n, html.LinkAttributeFilter)
		}
		_ = w.WriteByte('>')
	} else {
		_, _ = w.WriteString("</a>")
	}
	return ast.WalkContinue, nil
}

// renderDefaultImage reproduces goldmark's stock image rendering.
func (r *embedRenderer) renderDefaultImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.Image)
	_, _ = w.WriteString(`<img src="`)
	r.writeDestination(w, n.Destination)
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML(nodeText(n, source)))
	_ = w.WriteByte('"')
	r.writeTitle(w, n.Title)
	if n.Attributes() != nil {
		html.RenderAttributes(w, n, html.ImageAttributeFilter)
	}
	r.closeImgTag(w)
	return ast.WalkSkipChildren, nil
}

func (r *embedRenderer) writeDestination(w util.BufWriter, destination []byte) {
	if r.Unsafe || !html.IsDangerousURL(destination) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(destination, true)))
	}
}

func (r *embedRenderer) writeTitle(w util.BufWriter, title []byte) {
	if title == nil {
		return
	}
	_, _ = w.WriteString(` title="`)
	r.Writer.Write(w, title)
	_ = w.WriteByte('"')
}

func (r *embedRenderer) closeImgTag(w util.BufWriter) {
	if r.XHTML {
		_, _ = w.WriteString(" />")
	} else {
		_, _ = w.WriteString(">")
	}
}

// nodeText concatenates the literal text under n, the way goldmark builds
// image alt text. Tag nodes contribute their original #body form.
func nodeText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(source))
		case *ast.String:
			buf.Write(c.Value)
		case *Tag:
			buf.WriteByte('#')
			buf.Write(c.Body)
		default:
			buf.Write(nodeText(c, source))
		}
	}
	return buf.Bytes()
}
