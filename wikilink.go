package obsidian2html

import (
	"regexp"
	"strings"
)

// sizePattern matches embed size specs: a bare width ("600") or an explicit
// width and height ("300x200").
var sizePattern = regexp.MustCompile(`^\d+(x\d+)?$`)

// WikiLink is the parsed form of the text between [[ and ]].
type WikiLink struct {
	Path    string // target path with any trailing .md stripped
	Display string // display text shown to the reader
	Anchor  string // heading fragment without '#', empty when absent
	Size    string // embed size spec ("600", "300x200"), empty when absent
}

// ParseWikiLink parses the inner text of a wikilink into its parts.
// It is total: any input produces a well-formed result, never an error.
//
// Grammar: path[#anchor][|display]
//   - display splits on the LAST pipe, so pipes in the path survive
//   - anchor splits on the FIRST '#' in the target, so anchors may
//     themselves contain '#'
//   - a trailing .md extension on the path is stripped case-insensitively
//   - a display segment of the form "600" or "300x200" is a size spec for
//     embeds, not display text; the path doubles as display in that case
func ParseWikiLink(raw string) WikiLink {
	var wl WikiLink

	trimmed := strings.TrimSpace(raw)

	target := trimmed
	display := ""
	hasDisplay := false
	if idx := strings.LastIndex(trimmed, "|"); idx != -1 {
		target = trimmed[:idx]
		display = trimmed[idx+1:]
		hasDisplay = true
	}

	pathPart := target
	if idx := strings.Index(target, "#"); idx != -1 {
		pathPart = target[:idx]
		wl.Anchor = strings.TrimSpace(target[idx+1:])
	}

	wl.Path = stripMarkdownExt(pathPart)

	if size := strings.TrimSpace(display); size != "" && sizePattern.MatchString(size) {
		wl.Size = size
		wl.Display = wl.Path
		return wl
	}

	if hasDisplay && display != "" {
		wl.Display = display
	} else {
		wl.Display = wl.Path
	}

	return wl
}

// stripMarkdownExt removes one trailing .md extension, case-insensitively.
// Only the final extension strips: "a.md.md" becomes "a.md".
func stripMarkdownExt(path string) string {
	if len(path) >= 3 && strings.EqualFold(path[len(path)-3:], ".md") {
		return path[:len(path)-3]
	}
	return path
}
