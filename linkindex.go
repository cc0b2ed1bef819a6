package obsidian2html

// LinkTarget is one entry in a LinkIndex. Exactly one of the two fields is
// populated: Single for an unambiguous key, Candidates when several files
// share the key. The split makes ambiguity explicit in the type instead of
// being inferred from slice length at each call site.
type LinkTarget struct {
	Single     string
	Candidates []string
}

// IsAmbiguous reports whether the target carries more than one candidate.
func (t LinkTarget) IsAmbiguous() bool {
	return len(t.Candidates) > 1
}

// First returns the preferred path: the single target, or the first
// candidate. Empty when the target is zero-valued.
func (t LinkTarget) First() string {
	if t.Single != "" {
		return t.Single
	}
	if len(t.Candidates) > 0 {
		return t.Candidates[0]
	}
	return ""
}

// All returns every path the target names, in order.
func (t LinkTarget) All() []string {
	if t.Single != "" {
		return []string{t.Single}
	}
	return t.Candidates
}

// LinkIndex maps link keys to site paths. Keys are vault-relative paths and
// bare note titles, both without extension; values are the site paths they
// publish to. The index is built once per site generation and treated as
// read-only during rendering, so concurrent renders may share one index.
type LinkIndex map[string]LinkTarget

// NewLinkIndex normalizes a raw key-to-paths mapping into a LinkIndex.
// Keys with one path become Single entries, keys with several become
// Candidates entries in the given order. Empty path lists are dropped.
func NewLinkIndex(raw map[string][]string) LinkIndex {
	idx := make(LinkIndex, len(raw))
	for key, paths := range raw {
		switch len(paths) {
		case 0:
		case 1:
			idx[key] = LinkTarget{Single: paths[0]}
		default:
			cands := make([]string, len(paths))
			copy(cands, paths)
			idx[key] = LinkTarget{Candidates: cands}
		}
	}
	return idx
}

// SingleTarget wraps one path as an unambiguous LinkTarget.
func SingleTarget(path string) LinkTarget {
	return LinkTarget{Single: path}
}

// CandidateTargets wraps several paths as an ambiguous LinkTarget.
func CandidateTargets(paths ...string) LinkTarget {
	return LinkTarget{Candidates: paths}
}
