package main

// Notes:
// - exitCodeFor: we test the mapping from sentinel errors to exit codes,
//   including wrapped errors (errors.Is traversal).
// - Exit code constants: we pin the documented values so scripts relying
//   on them don't break silently.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	obsidian2html "github.com/alnah/go-obsidian2html"
	"github.com/alnah/go-obsidian2html/internal/config"
	"github.com/alnah/go-obsidian2html/internal/dateutil"
	"github.com/alnah/go-obsidian2html/internal/vault"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Conversion errors
		{"html conversion", obsidian2html.ErrHTMLConversion, ExitConvert},
		{"page render", obsidian2html.ErrPageRender, ExitConvert},
		{"wrapped conversion", fmt.Errorf("converting doc.md: %w", obsidian2html.ErrHTMLConversion), ExitConvert},

		// I/O errors
		{"not exist", os.ErrNotExist, ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write html", ErrWriteHTML, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"vault not found", vault.ErrVaultNotFound, ExitIO},
		{"not a directory", vault.ErrNotDirectory, ExitIO},
		{"wrapped not exist", fmt.Errorf("reading config: %w", os.ErrNotExist), ExitIO},

		// Usage errors
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"empty markdown", obsidian2html.ErrEmptyMarkdown, ExitUsage},
		{"style not found", obsidian2html.ErrStyleNotFound, ExitUsage},
		{"template not found", obsidian2html.ErrTemplateNotFound, ExitUsage},
		{"invalid asset path", obsidian2html.ErrInvalidAssetPath, ExitUsage},
		{"invalid date format", dateutil.ErrInvalidDateFormat, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid worker count", ErrInvalidWorkerCount, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading %q: %w", "obsidian2html.yaml", config.ErrConfigParse), ExitUsage},

		// Everything else
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("outer: %w", errors.New("inner")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Documented exit code values
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	// These values are documented in the README and used by scripts.
	// Changing them is a breaking change.
	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}
	if ExitIO >= 126 {
		t.Errorf("ExitIO = %d, want < 126 (shell reserves 126+)", ExitIO)
	}
	if ExitConvert >= 126 {
		t.Errorf("ExitConvert = %d, want < 126 (shell reserves 126+)", ExitConvert)
	}
}
