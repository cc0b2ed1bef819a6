// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/obsidian2html/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/obsidian2html) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/obsidian2html") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForVaultNotFound returns hints for vault directory errors.
func ForVaultNotFound() string {
	return format("pass a directory containing .md files, or a single .md file")
}

// ForUnresolvedLink returns a did-you-mean hint from FindSimilar results.
func ForUnresolvedLink(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return format("similar: " + strings.Join(suggestions, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
