package obsidian2html

import (
	"net/url"
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// tagPattern matches an inline #tag at start of text or after whitespace.
// Tag bodies accept letters in any script, digits, underscore, hyphen,
// slash, and symbol code points plus the ZWJ and variation-selector
// joiners emoji sequences use (RE2 has no Extended_Pictographic class,
// \p{So} covers the emoji blocks).
var tagPattern = regexp.MustCompile(`(^|\s)#([\p{L}\p{N}\p{So}\x{200D}\x{FE0F}_/-]+)`)

// KindTag is the node kind of Tag nodes.
var KindTag = ast.NewNodeKind("ObsidianTag")

// Tag is an inline node for one Obsidian #tag occurrence.
type Tag struct {
	ast.BaseInline
	Body []byte // raw tag body without the '#'
}

// NewTag creates a Tag node carrying the given body.
func NewTag(body []byte) *Tag {
	return &Tag{Body: body}
}

// Kind implements ast.Node.
func (t *Tag) Kind() ast.NodeKind {
	return KindTag
}

// Dump implements ast.Node.
func (t *Tag) Dump(source []byte, level int) {
	ast.DumpHelper(t, source, level, map[string]string{"Body": string(t.Body)}, nil)
}

// tagTransformer splits text nodes on inline #tags after inline parsing.
// Text inside code spans is left alone; a '#' glued to a preceding
// non-whitespace character never starts a tag.
type tagTransformer struct{}

func (t *tagTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	// Collect first, mutate after: splitting while walking would upset
	// sibling traversal.
	var texts []*ast.Text
	_ = ast.Walk(doc, func(n ast.Node, enter bool) (ast.WalkStatus, error) {
		if !enter {
			return ast.WalkContinue, nil
		}
		if n.Kind() == ast.KindCodeSpan {
			return ast.WalkSkipChildren, nil
		}
		if tn, ok := n.(*ast.Text); ok {
			texts = append(texts, tn)
		}
		return ast.WalkContinue, nil
	})

	for _, tn := range texts {
		splitTags(tn, source)
	}
}

// splitTags replaces every tag occurrence inside one text node with a Tag
// node, keeping the surrounding text as sibling text nodes. Nodes without
// a match are left untouched, no new nodes allocated.
func splitTags(node *ast.Text, source []byte) {
	parent := node.Parent()
	if parent == nil {
		return
	}

	seg := node.Segment
	matched := false
	for {
		m := tagPattern.FindSubmatchIndex(seg.Value(source))
		if m == nil {
			break
		}
		matched = true

		// m[3] closes the boundary group: leading text runs up to and
		// including the whitespace that introduced the tag.
		if m[3] > 0 {
			lead := ast.NewTextSegment(seg.WithStop(seg.Start + m[3]))
			parent.InsertBefore(parent, node, lead)
		}
		body := seg.Value(source)[m[4]:m[5]]
		parent.InsertBefore(parent, node, NewTag(body))

		seg = seg.WithStart(seg.Start + m[5])
	}

	if !matched {
		return
	}

	// The original node becomes the remainder, keeping any line break
	// flags it carried; an empty remainder drops it.
	if seg.Len() > 0 {
		node.Segment = seg
	} else {
		parent.RemoveChild(parent, node)
	}
}

// tagRenderer renders Tag nodes as tag anchors: a fixed "tag" class, a
// /tags/ href, and the raw body in a data attribute for tooling.
type tagRenderer struct{}

func newTagRenderer() renderer.NodeRenderer {
	return &tagRenderer{}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *tagRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindTag, r.renderTag)
}

func (r *tagRenderer) renderTag(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	t := node.(*Tag)
	_, _ = w.WriteString(`<a class="tag" href="/tags/`)
	_, _ = w.WriteString(url.PathEscape(string(t.Body)))
	_, _ = w.WriteString(`" data-tag="`)
	_, _ = w.Write(util.EscapeHTML(t.Body))
	_, _ = w.WriteString(`">#`)
	_, _ = w.Write(util.EscapeHTML(t.Body))
	_, _ = w.WriteString(`</a>`)
	return ast.WalkContinue, nil
}
