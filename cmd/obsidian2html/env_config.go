package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-obsidian2html/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // OBSIDIAN2HTML_CONFIG: config file name or path
	Style      string // OBSIDIAN2HTML_STYLE: CSS style name or path
	Template   string // OBSIDIAN2HTML_TEMPLATE: page template name
	InputDir   string // OBSIDIAN2HTML_INPUT_DIR: default input directory
	OutputDir  string // OBSIDIAN2HTML_OUTPUT_DIR: default output directory
	BasePath   string // OBSIDIAN2HTML_BASE_PATH: attachment root
	AssetPath  string // OBSIDIAN2HTML_ASSET_PATH: custom asset directory
	Date       string // OBSIDIAN2HTML_DATE: page footer date
	Workers    int    // OBSIDIAN2HTML_WORKERS: parallel workers
}

// knownEnvVars lists valid OBSIDIAN2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"OBSIDIAN2HTML_CONFIG":     true,
	"OBSIDIAN2HTML_STYLE":      true,
	"OBSIDIAN2HTML_TEMPLATE":   true,
	"OBSIDIAN2HTML_INPUT_DIR":  true,
	"OBSIDIAN2HTML_OUTPUT_DIR": true,
	"OBSIDIAN2HTML_BASE_PATH":  true,
	"OBSIDIAN2HTML_ASSET_PATH": true,
	"OBSIDIAN2HTML_DATE":       true,
	"OBSIDIAN2HTML_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized OBSIDIAN2HTML_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("OBSIDIAN2HTML_CONFIG"),
		Style:      os.Getenv("OBSIDIAN2HTML_STYLE"),
		Template:   os.Getenv("OBSIDIAN2HTML_TEMPLATE"),
		InputDir:   os.Getenv("OBSIDIAN2HTML_INPUT_DIR"),
		OutputDir:  os.Getenv("OBSIDIAN2HTML_OUTPUT_DIR"),
		BasePath:   os.Getenv("OBSIDIAN2HTML_BASE_PATH"),
		AssetPath:  os.Getenv("OBSIDIAN2HTML_ASSET_PATH"),
		Date:       os.Getenv("OBSIDIAN2HTML_DATE"),
	}

	// Parse int for workers
	if workers := os.Getenv("OBSIDIAN2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized OBSIDIAN2HTML_* variables.
// Helps catch typos like OBSIDIAN2HTML_STYL instead of OBSIDIAN2HTML_STYLE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "OBSIDIAN2HTML_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.CSS.Style == "" {
		cfg.CSS.Style = env.Style
	}
	if env.Template != "" && cfg.Template.Name == "" {
		cfg.Template.Name = env.Template
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.BasePath != "" && cfg.Vault.BasePath == "" {
		cfg.Vault.BasePath = env.BasePath
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Date != "" && cfg.Page.Date == "" {
		cfg.Page.Date = env.Date
	}
	// ConfigPath is consulted when the config file is loaded, Workers in
	// resolveWorkers; neither lives in config.Config.
}
