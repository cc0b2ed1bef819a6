package main

import (
	"errors"
	"os"

	obsidian2html "github.com/alnah/go-obsidian2html"
	"github.com/alnah/go-obsidian2html/internal/config"
	"github.com/alnah/go-obsidian2html/internal/dateutil"
	"github.com/alnah/go-obsidian2html/internal/vault"
)

// Exit codes for the obsidian2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitConvert = 4 // Markdown rendering errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Rendering errors (exit 4)
	if errors.Is(err, obsidian2html.ErrHTMLConversion) ||
		errors.Is(err, obsidian2html.ErrPageRender) {
		return ExitConvert
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, vault.ErrVaultNotFound) ||
		errors.Is(err, vault.ErrNotDirectory) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, obsidian2html.ErrEmptyMarkdown) ||
		errors.Is(err, obsidian2html.ErrStyleNotFound) ||
		errors.Is(err, obsidian2html.ErrTemplateNotFound) ||
		errors.Is(err, obsidian2html.ErrInvalidAssetPath) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
