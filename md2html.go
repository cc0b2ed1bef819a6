package obsidian2html

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// htmlConverter abstracts Markdown to HTML conversion.
type htmlConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// obsidianConverter converts Markdown to an HTML fragment using goldmark
// with the Obsidian rules wired in.
type obsidianConverter struct {
	md goldmark.Markdown
}

// newObsidianConverter assembles the goldmark instance: GFM plus footnotes
// plus class-based syntax highlighting, with wikilink, tag, and embed
// handling from Extension.
func newObsidianConverter(index LinkIndex, basePath string) *obsidianConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					// CSS classes instead of inline styles so the
					// stylesheet owns the colors
					chromahtml.WithClasses(true),
				),
			),
			&Extension{Index: index, BasePath: basePath},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Heading IDs so anchors have a target
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Obsidian treats newlines as <br>
			html.WithXHTML(),     // Self-closing tags
		),
	)
	return &obsidianConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *obsidianConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
