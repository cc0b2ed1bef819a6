package obsidian2html

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
)

// cssInjector defines the contract for CSS injection into HTML.
type cssInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// cssInjection injects CSS as a <style> block into HTML content.
type cssInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *cssInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return htmlContent
	}

	sanitizedCSS := sanitizeCSS(cssContent)
	styleBlock := "<style>" + sanitizedCSS + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </head>
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	// Try inserting after <body>
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		// Find the closing > of <body...>
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	// Fallback: prepend
	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
// Prevents CSS injection by escaping </style> and similar closing sequences.
func sanitizeCSS(css string) string {
	// Escape </ sequences to prevent closing the style tag prematurely
	return strings.ReplaceAll(css, "</", `<\/`)
}

// pageData holds document chrome for the page template.
// This is the internal type used by the wrapper.
type pageData struct {
	Title string
	Date  string
}

// pagePayload is the template's dot: chrome fields plus the converted body.
type pagePayload struct {
	Title string
	Date  string
	Body  template.HTML
}

// pageWrapper defines the contract for wrapping HTML fragments into
// complete documents.
type pageWrapper interface {
	WrapPage(ctx context.Context, htmlContent string, data *pageData) (string, error)
}

// pageWrap renders the page template around a converted fragment.
// Title and date go through html/template's contextual escaping; the body
// is goldmark output and passes through verbatim.
type pageWrap struct {
	tmpl *template.Template
}

// newPageWrap parses the page template content.
func newPageWrap(tmplContent string) (*pageWrap, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, err
	}
	return &pageWrap{tmpl: tmpl}, nil
}

// WrapPage renders the page template with the fragment as the body.
// If data is nil, returns htmlContent unchanged.
// Returns error if template rendering fails.
func (p *pageWrap) WrapPage(ctx context.Context, htmlContent string, data *pageData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var buf bytes.Buffer
	payload := pagePayload{
		Title: data.Title,
		Date:  data.Date,
		Body:  template.HTML(htmlContent), // #nosec G203 -- goldmark output, already escaped
	}
	if err := p.tmpl.Execute(&buf, payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}

	return buf.String(), nil
}
