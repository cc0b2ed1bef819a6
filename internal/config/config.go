package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-obsidian2html/internal/fileutil"
	"github.com/alnah/go-obsidian2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits so a hostile config cannot balloon memory.
const (
	MaxTitleLength    = 200   // Page title override
	MaxDateLength     = 60    // "auto:FORMAT" or literal date
	MaxStyleLength    = 65536 // Style may be raw CSS content
	MaxPathLength     = 4096  // Directories and asset paths
	MaxTemplateLength = 100   // Template name
	MaxBasePathLength = 500   // Attachment base path
	MaxWorkers        = 64    // Conversion pool upper bound
)

// Config holds all configuration for vault conversion.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Vault    VaultConfig    `yaml:"vault"`
	CSS      CSSConfig      `yaml:"css"`
	Template TemplateConfig `yaml:"template"`
	Assets   AssetsConfig   `yaml:"assets"`
	Page     PageConfig     `yaml:"page"`
	Convert  ConvertConfig  `yaml:"convert"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default vault directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// VaultConfig defines link index options.
type VaultConfig struct {
	BasePath      string `yaml:"basePath"`      // Attachment root for unresolved embeds (default: /attachments)
	ExcludeDrafts bool   `yaml:"excludeDrafts"` // Skip pages marked draft: true when indexing
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // Style name, file path, or raw CSS (empty = built-in default)
}

// TemplateConfig defines page template options.
type TemplateConfig struct {
	Name string `yaml:"name"` // Template name in assets/templates/ (empty = "page")
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PageConfig defines per-page rendering options.
type PageConfig struct {
	Title    string `yaml:"title"`    // Title override (normally derived per document)
	Date     string `yaml:"date"`     // "auto", "auto:FORMAT", or literal text
	Fragment bool   `yaml:"fragment"` // Emit the HTML fragment without the page wrap
}

// ConvertConfig defines batch conversion options.
type ConvertConfig struct {
	Workers int `yaml:"workers"` // Pool size (0 = derive from CPU count)
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("vault.basePath", c.Vault.BasePath, MaxBasePathLength); err != nil {
		return err
	}
	if err := validateFieldLength("css.style", c.CSS.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("template.name", c.Template.Name, MaxTemplateLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.title", c.Page.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.date", c.Page.Date, MaxDateLength); err != nil {
		return err
	}

	if c.Vault.BasePath != "" && !strings.HasPrefix(c.Vault.BasePath, "/") && !fileutil.IsURL(c.Vault.BasePath) {
		return fmt.Errorf("vault.basePath: must be absolute (start with /) or a URL, got %q", c.Vault.BasePath)
	}

	if c.Convert.Workers < 0 || c.Convert.Workers > MaxWorkers {
		return fmt.Errorf("convert.workers: must be between 0 and %d, got %d", MaxWorkers, c.Convert.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration. Zero values defer to the
// converter's own defaults (obsidian style, page template, /attachments).
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns every location LoadConfig would try for a config
// name, for use in error hints.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "obsidian2html", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/obsidian2html/
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
