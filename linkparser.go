package obsidian2html

import (
	"bytes"
	"net/url"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// wikiCloser terminates a wikilink span.
var wikiCloser = []byte("]]")

// wikiLinkParser is an inline parser for [[target]], [[target|display]]
// and [[target#heading]] spans. It registers ahead of goldmark's native
// link parser, which shares the '[' trigger.
type wikiLinkParser struct {
	index LinkIndex
}

func (p *wikiLinkParser) Trigger() []byte {
	return []byte{'['}
}

// Parse consumes one [[...]] span and emits a link node. It returns nil
// without consuming input when the span is not a wikilink (single bracket,
// or no ]] on the line), handing the text back to the native link parser.
//
// Resolution failures degrade instead of erroring: the link renders with
// an empty href and its display text intact, so a missing note is visible
// in the output but dead. An anchor survives even then, turning
// [[missing#sec]] into a same-page #sec link.
func (p *wikiLinkParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 2 || line[1] != '[' {
		return nil
	}

	end := bytes.Index(line, wikiCloser)
	if end == -1 {
		return nil
	}

	inner := string(line[2:end])
	block.Advance(end + 2)

	wl := ParseWikiLink(inner)
	res := ResolveLinkPath(wl.Path, ResolveOptions{Index: p.index})

	href := ""
	if res.Resolved {
		href = encodePathSegments(res.Path)
	}
	if wl.Anchor != "" {
		href += "#" + url.PathEscape(wl.Anchor)
	}

	display := wl.Display
	if display == "" {
		display = wl.Anchor
	}

	link := ast.NewLink()
	link.Destination = []byte(href)
	link.AppendChild(link, ast.NewString([]byte(display)))
	return link
}
