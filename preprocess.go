package obsidian2html

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/alnah/go-obsidian2html/internal/fileutil"
)

// DefaultBasePath is the attachment root used when embed resolution fails.
const DefaultBasePath = "/attachments"

// Marker classes attached to rewritten embeds. Render rules and stylesheets
// hook on these instead of re-deriving embed-ness downstream.
const (
	EmbedImageClass = "obsidian-embed"
	EmbedFileClass  = "obsidian-embed-file"
)

// bareWidthPattern matches an image alt text ending in a bare numeric size
// ("|600]") so the post-pass can normalize it to the two-part form
// ("|600x0]") that image sizing expects.
var bareWidthPattern = regexp.MustCompile(`(!\[[^\]]*\|)(\d+)(\]\()`)

// PreprocessOptions carries the inputs for Preprocess.
type PreprocessOptions struct {
	Index       LinkIndex
	BasePath    string // attachment root for unresolved embeds; DefaultBasePath when empty
	CurrentPath string // referencing document, forwarded to resolution
}

// Preprocess rewrites every embed (![[...]]) in src into standard markdown
// before tokenization: images become image constructs, everything else
// becomes links, both tagged with a marker class. Plain wikilinks
// ([[...]] without '!') pass through untouched for the inline rule to
// handle at render time. Everything else is copied byte for byte.
//
// The scan is a single forward pass. Unterminated delimiters are treated
// as literal text one byte at a time, never consuming the rest of the
// document. Preprocess is total and pure: no I/O, no logging, no state
// across calls.
func Preprocess(src string, opts PreprocessOptions) string {
	basePath := opts.BasePath
	if basePath == "" {
		basePath = DefaultBasePath
	}

	var b strings.Builder
	b.Grow(len(src) + len(src)/8)

	for i := 0; i < len(src); {
		switch {
		case strings.HasPrefix(src[i:], "![["):
			end := strings.Index(src[i+3:], "]]")
			if end == -1 {
				b.WriteByte('!')
				i++
				continue
			}
			inner := src[i+3 : i+3+end]
			b.WriteString(rewriteEmbed(inner, opts.Index, basePath, opts.CurrentPath))
			i += 3 + end + 2
		case strings.HasPrefix(src[i:], "[["):
			end := strings.Index(src[i+2:], "]]")
			if end == -1 {
				b.WriteByte('[')
				i++
				continue
			}
			b.WriteString(src[i : i+2+end+2])
			i += 2 + end + 2
		default:
			b.WriteByte(src[i])
			i++
		}
	}

	return bareWidthPattern.ReplaceAllString(b.String(), "${1}${2}x0${3}")
}

// rewriteEmbed turns one embed's inner text into standard markdown. The
// size spec rides in the alt text ("alt|600") so the image renderer can
// turn it into width and height attributes later.
func rewriteEmbed(inner string, index LinkIndex, basePath, currentPath string) string {
	wl := ParseWikiLink(inner)

	res := ResolveLinkPath(wl.Path, ResolveOptions{Index: index, CurrentPath: currentPath})
	target := res.Path
	if !res.Resolved {
		target = basePath + "/" + wl.Path
	}

	encoded := encodePathSegments(target)

	if isImageExt(strings.ToLower(path.Ext(target))) {
		alt := wl.Display
		if wl.Size != "" {
			alt += "|" + wl.Size
		}
		return "![" + alt + "](" + encoded + "){." + EmbedImageClass + "}"
	}

	return "[" + wl.Display + "](" + encoded + "){." + EmbedFileClass + "}"
}

// encodePathSegments percent-encodes a path one '/'-delimited segment at a
// time, leaving the separators intact. An http:// or https:// scheme
// prefix passes through unencoded; only the remainder is encoded.
func encodePathSegments(p string) string {
	prefix := ""
	if fileutil.IsURL(p) {
		idx := strings.Index(p, "://")
		prefix = p[:idx+3]
		p = p[idx+3:]
	}

	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return prefix + strings.Join(segments, "/")
}

// isImageExt reports whether ext (lowercase, dot included) is on the fixed
// image allowlist for embeds. Anything else renders as a file link.
func isImageExt(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".bmp", ".avif":
		return true
	}
	return false
}
