package obsidian2html

import (
	"sort"
	"strings"
)

// Resolution is the outcome of resolving one wikilink path against a
// LinkIndex. Resolution never fails: a miss falls back to the requested
// path so the document still renders, degraded but usable.
type Resolution struct {
	Path       string   // site path to link to; the input path on a miss
	Resolved   bool     // true when the index produced the path
	Ambiguous  bool     // true when more than one candidate shared the key
	Candidates []string // all candidates on ambiguity, nil otherwise
}

// ResolveOptions carries the inputs for ResolveLinkPath.
//
// CurrentPath is the path of the referencing document. The current policy
// ignores it: disambiguation is purely suffix-based. It is accepted so
// callers already thread it through when a context-aware policy lands.
type ResolveOptions struct {
	Index       LinkIndex
	CurrentPath string
}

// ResolveLinkPath resolves a wikilink path to a site path. Priority order,
// first match wins:
//
//  1. Exact key match. Multiple candidates resolve to the first one, with
//     Ambiguous set and Candidates carrying the full list.
//  2. Basename match on the last '/'-delimited segment. Multiple candidates
//     prefer the one whose path has the requested path as a suffix
//     (leading '/' ignored on both sides), else the first candidate.
//  3. No match: the path comes back unchanged with Resolved false.
//
// Ambiguity is never an error. Multiple notes can share a title; the
// resolver picks deterministically and reports the tie via Ambiguous so an
// audit can surface it.
func ResolveLinkPath(path string, opts ResolveOptions) Resolution {
	if target, ok := opts.Index[path]; ok {
		return resolutionFor(target, target.First())
	}

	base := path
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		base = path[idx+1:]
	}
	if base != path {
		if target, ok := opts.Index[base]; ok {
			return resolutionFor(target, pickBySuffix(target, path))
		}
	}

	return Resolution{Path: path}
}

// resolutionFor builds a Resolution from a matched target and the chosen
// path.
func resolutionFor(target LinkTarget, chosen string) Resolution {
	res := Resolution{Path: chosen, Resolved: true}
	if target.IsAmbiguous() {
		res.Ambiguous = true
		res.Candidates = target.All()
	}
	return res
}

// pickBySuffix chooses among a target's candidates the one whose path ends
// with the requested path, comparing with any leading '/' stripped from
// both sides. No suffix match falls back to the first candidate.
func pickBySuffix(target LinkTarget, path string) string {
	want := strings.TrimPrefix(path, "/")
	for _, cand := range target.All() {
		if strings.HasSuffix(strings.TrimPrefix(cand, "/"), want) {
			return cand
		}
	}
	return target.First()
}

// FindSimilar returns every candidate URL in the index whose basename,
// extension stripped, equals query ignoring case. Diagnostics only, never
// used for resolution. Results are deduplicated and sorted so map
// iteration order does not leak into output.
func FindSimilar(query string, index LinkIndex) []string {
	seen := make(map[string]struct{})
	var matches []string
	for _, target := range index {
		for _, url := range target.All() {
			base := url
			if idx := strings.LastIndex(base, "/"); idx != -1 {
				base = base[idx+1:]
			}
			if idx := strings.LastIndex(base, "."); idx != -1 {
				base = base[:idx]
			}
			if !strings.EqualFold(base, query) {
				continue
			}
			if _, dup := seen[url]; dup {
				continue
			}
			seen[url] = struct{}{}
			matches = append(matches, url)
		}
	}
	sort.Strings(matches)
	return matches
}
