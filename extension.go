package obsidian2html

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Registration priorities. Lower runs first. The wikilink parser sits
// below goldmark's native link parser (200) so [[ wins the bracket
// ambiguity; the tag pass runs before the marker pass; both renderers sit
// below the default HTML renderer (1000) so they own their node kinds.
const (
	wikiLinkParserPriority    = 150
	tagTransformerPriority    = 200
	markerTransformerPriority = 300
	tagRendererPriority       = 500
	embedRendererPriority     = 550
)

// Extension wires Obsidian syntax support into a goldmark.Markdown:
// the wikilink inline parser, the inline tag pass, marker class
// handling, and the embed render rules, registered in a fixed order.
//
// The embed rewrite (Preprocess) operates on source text and must run
// before engine conversion; Converter does that. Extension itself keeps
// no per-document state, so one configured engine may convert any number
// of documents.
type Extension struct {
	Index    LinkIndex
	BasePath string
}

// Extend registers the Obsidian rules on m.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(&wikiLinkParser{index: e.Index}, wikiLinkParserPriority),
		),
		parser.WithASTTransformers(
			util.Prioritized(&tagTransformer{}, tagTransformerPriority),
			util.Prioritized(&markerTransformer{}, markerTransformerPriority),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(newTagRenderer(), tagRendererPriority),
			util.Prioritized(newEmbedRenderer(), embedRendererPriority),
		),
	)
}
