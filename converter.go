package obsidian2html

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"

	"github.com/alnah/go-obsidian2html/internal/assets"
	"github.com/alnah/go-obsidian2html/internal/fileutil"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ htmlConverter         = (*obsidianConverter)(nil)
	_ cssInjector           = (*cssInjection)(nil)
	_ pageWrapper           = (*pageWrap)(nil)
	_ goldmark.Extender     = (*Extension)(nil)
	_ parser.InlineParser   = (*wikiLinkParser)(nil)
	_ parser.ASTTransformer = (*tagTransformer)(nil)
	_ parser.ASTTransformer = (*markerTransformer)(nil)
	_ renderer.NodeRenderer = (*tagRenderer)(nil)
	_ renderer.NodeRenderer = (*embedRenderer)(nil)
	_ assets.AssetLoader    = (*publicToInternalAdapter)(nil)
)

// Converter orchestrates the Obsidian-markdown-to-HTML conversion pipeline.
// Create with New(), use Convert() per document. A Converter is safe to
// reuse sequentially; for parallel conversion give each worker its own
// Converter (see ConverterPool).
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader // internal loader
	publicAssetLoader AssetLoader        // public loader (from WithAssetLoader)
	htmlConverter     htmlConverter
	cssInjector       cssInjector
	pageWrapper       pageWrapper
}

// pageMeta is the frontmatter subset the converter reads.
type pageMeta struct {
	Title string   `yaml:"title"`
	Date  string   `yaml:"date"`
	Tags  []string `yaml:"tags"`
}

// publicToInternalAdapter wraps a public AssetLoader as the internal
// assets.AssetLoader.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *publicToInternalAdapter) LoadTemplate(name string) (string, error) {
	return a.pub.LoadTemplate(name)
}

// New creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithLinkIndex, WithStyle,
// WithAssetLoader). Returns error if asset loading or template parsing
// fails.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			basePath:     DefaultBasePath,
			styleInput:   DefaultStyle,
			templateName: DefaultTemplate,
		},
		assetLoader: assets.NewEmbeddedLoader(),
		cssInjector: &cssInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Handle WithAssetPath: custom assets with embedded fallback
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	// Resolve style input (name, path, or CSS content) to CSS content
	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	// Fragment mode never touches the page template, so skip loading it
	if !c.cfg.fragment {
		tmplContent, err := c.assetLoader.LoadTemplate(c.cfg.templateName)
		if err != nil {
			return nil, fmt.Errorf("loading template %q: %w", c.cfg.templateName, convertAssetError(err))
		}
		c.pageWrapper, err = newPageWrap(tmplContent)
		if err != nil {
			return nil, fmt.Errorf("parsing template %q: %w", c.cfg.templateName, err)
		}
	}

	// Validate the date option early so Convert cannot fail on it later
	if _, err := ResolveDate(c.cfg.date, time.Now()); err != nil {
		return nil, err
	}

	c.htmlConverter = newObsidianConverter(c.cfg.index, c.cfg.basePath)
	return c, nil
}

// Convert runs the full pipeline on one document: frontmatter split, embed
// preprocessing, markdown-to-HTML conversion, page wrap, and CSS injection.
// The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	meta, body := splitFrontmatter(input.Markdown)

	// Rewrite embeds before tokenization; the engine has no source hook
	mdContent := Preprocess(body, PreprocessOptions{
		Index:       c.cfg.index,
		BasePath:    c.cfg.basePath,
		CurrentPath: input.Path,
	})
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Convert to an HTML fragment
	htmlContent, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	res := &Result{
		Title: resolveTitle(input, meta, body),
		Tags:  meta.Tags,
	}

	if c.cfg.fragment {
		res.HTML = []byte(htmlContent)
		return res, nil
	}

	// Wrap the fragment in a full document
	date := c.cfg.date
	if date == "" {
		date = meta.Date
	}
	resolvedDate, dateErr := ResolveDate(date, time.Now())
	if dateErr != nil {
		// Frontmatter dates are document data, not caller config: pass
		// them through rather than failing the conversion.
		resolvedDate = date
	}
	htmlContent, err = c.pageWrapper.WrapPage(ctx, htmlContent, &pageData{
		Title: res.Title,
		Date:  resolvedDate,
	})
	if err != nil {
		return nil, fmt.Errorf("wrapping page: %w", err)
	}

	// Build combined CSS (converter style + user CSS)
	// Order matters: converter style first (base), user CSS last (can override)
	cssContent := c.cfg.resolvedStyle
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res.HTML = []byte(htmlContent)
	return res, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during New() after options are applied and the asset loader is configured.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil // styling disabled
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	// Style name -> use asset loader
	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}

// splitFrontmatter strips a leading frontmatter block and decodes the
// fields the converter consumes. Malformed frontmatter is left in place
// so the document still renders.
func splitFrontmatter(markdown string) (pageMeta, string) {
	var meta pageMeta
	rest, err := frontmatter.Parse(strings.NewReader(markdown), &meta)
	if err != nil {
		return pageMeta{}, markdown
	}
	return meta, string(rest)
}

// resolveTitle picks the page title: explicit input first, then
// frontmatter, then the first H1, then the document's file name.
func resolveTitle(input Input, meta pageMeta, body string) string {
	if input.Title != "" {
		return input.Title
	}
	if meta.Title != "" {
		return meta.Title
	}
	if h1 := firstHeading(body); h1 != "" {
		return h1
	}
	if input.Path != "" {
		base := path.Base(input.Path)
		return strings.TrimSuffix(base, path.Ext(base))
	}
	return "Document"
}

// firstHeading returns the text of the first level-one ATX heading.
func firstHeading(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
