// Package assets provides CSS styles and HTML page templates for HTML
// generation. Assets can be loaded from embedded files or custom
// filesystem paths.
package assets

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "obsidian"

// DefaultTemplateName is the name of the built-in page template.
const DefaultTemplateName = "page"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an HTML template by name using the default embedded loader.
// The name should not include the .html extension or path components.
// Returns ErrTemplateNotFound if the template does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
