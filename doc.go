// Package obsidian2html converts Obsidian-flavored Markdown to standard
// HTML: wikilinks, embeds, and inline tags resolve against a vault link
// index and render as plain anchors, images, and tag links.
//
// # Quick Start
//
// Build a link index, create a converter, and convert documents:
//
//	index := obsidian2html.NewLinkIndex(map[string][]string{
//	    "home": {"/docs/home"},
//	})
//	conv, err := obsidian2html.New(obsidian2html.WithLinkIndex(index))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, obsidian2html.Input{
//	    Markdown: "See [[home|the homepage]] #docs",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("home.html", result.HTML, 0644)
//
// The result holds the full HTML page; use WithoutPageWrap for a bare
// fragment.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Frontmatter split (title, date, tags)
//  2. Embed preprocessing (![[...]] rewritten to standard image/link syntax)
//  3. Markdown to HTML via goldmark (GFM, footnotes, syntax highlighting,
//     wikilink and tag rules)
//  4. Page wrap and CSS injection
//
// # Link Resolution
//
// Wikilink targets resolve through the LinkIndex: exact key match first,
// then basename match with path-suffix disambiguation for ambiguous keys.
// Unresolved wikilinks keep their display text with an empty href;
// unresolved embeds fall back under the attachment base path.
// ResolveLinkPath and FindSimilar expose the same rules for tooling.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := obsidian2html.New(
//	    obsidian2html.WithLinkIndex(index),
//	    obsidian2html.WithBasePath("/static"),
//	    obsidian2html.WithStyle("plain"),
//	    obsidian2html.WithDate("auto:long"),
//	)
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to reuse converters across
// workers:
//
//	pool := obsidian2html.NewConverterPool(4, obsidian2html.WithLinkIndex(index))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Custom Assets
//
// Override built-in styles and templates using AssetLoader:
//
//	loader, err := obsidian2html.NewAssetLoader("/path/to/assets")
//	conv, err := obsidian2html.New(obsidian2html.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── custom.html
package obsidian2html
