package obsidian2html

import "strings"

// LinkRef is one wikilink or embed occurrence in a document.
type LinkRef struct {
	WikiLink
	Embed bool // true for ![[...]] embeds
	Line  int  // 1-based line of the opening token
	Col   int  // 1-based byte column of the opening token
}

// ListLinks scans src and returns every wikilink and embed in order of
// appearance, parsed but not resolved. Unterminated markers are skipped
// the same way the preprocessor skips them.
func ListLinks(src string) []LinkRef {
	var refs []LinkRef
	line, lineStart := 1, 0

	i := 0
	for i < len(src) {
		if src[i] == '\n' {
			line++
			i++
			lineStart = i
			continue
		}

		embed := strings.HasPrefix(src[i:], "![[")
		open := strings.HasPrefix(src[i:], "[[")
		if !embed && !open {
			i++
			continue
		}

		start := i
		inner := i + 2
		if embed {
			inner = i + 3
		}
		end := strings.Index(src[inner:], "]]")
		if end == -1 {
			i++
			continue
		}

		refs = append(refs, LinkRef{
			WikiLink: ParseWikiLink(src[inner : inner+end]),
			Embed:    embed,
			Line:     line,
			Col:      start - lineStart + 1,
		})

		// Inner text can contain a newline; keep line accounting correct
		// across the consumed span.
		for j := start; j < inner+end+2; j++ {
			if src[j] == '\n' {
				line++
				lineStart = j + 1
			}
		}
		i = inner + end + 2
	}

	return refs
}
