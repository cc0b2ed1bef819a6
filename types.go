package obsidian2html

// Input contains conversion parameters for a single document.
type Input struct {
	Markdown string // Obsidian-flavored markdown content (required)
	Path     string // vault-relative path of the document (optional)
	Title    string // page title ("" = frontmatter, then first H1, then Path)
	CSS      string // extra CSS appended after the converter style (optional)
}

// Result contains conversion output.
type Result struct {
	HTML  []byte // rendered document (full page, or fragment in fragment mode)
	Title string // the title the page ended up with
	Tags  []string
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	index         LinkIndex
	basePath      string
	styleInput    string // name, file path, or raw CSS
	resolvedStyle string
	templateName  string
	assetPath     string
	date          string // footer date value, "auto" resolves to today
	fragment      bool   // skip the page wrap, emit the fragment only
}

// WithLinkIndex sets the vault link index wikilinks and embeds resolve
// against. Without it every link falls back per the resolution rules.
func WithLinkIndex(index LinkIndex) Option {
	return func(c *Converter) {
		c.cfg.index = index
	}
}

// WithBasePath sets the attachment root used when embed resolution fails.
// Defaults to DefaultBasePath.
func WithBasePath(basePath string) Option {
	return func(c *Converter) {
		c.cfg.basePath = basePath
	}
}

// WithStyle selects the CSS style. Accepts a built-in style name
// ("obsidian", "plain"), a file path, or raw CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithTemplate selects the page template by name.
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithAssetPath points the converter at a custom asset directory. Custom
// assets take precedence, with fallback to the embedded defaults.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader installs a custom asset backend. Takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithDate sets the page footer date. "auto" renders today's date,
// "auto:FORMAT" applies a custom format (e.g. "auto:DD/MM/YYYY"), any
// other value passes through, and empty omits the footer date.
func WithDate(date string) Option {
	return func(c *Converter) {
		c.cfg.date = date
	}
}

// WithoutPageWrap emits the rendered HTML fragment only, skipping the
// page template, styles, and footer. Useful when the caller owns the
// surrounding document.
func WithoutPageWrap() Option {
	return func(c *Converter) {
		c.cfg.fragment = true
	}
}
