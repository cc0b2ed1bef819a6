// Package vault scans Obsidian vault directories: it lists convertible
// pages and accumulates the link targets wikilinks resolve against.
package vault

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
)

// Sentinel errors for vault operations.
var (
	ErrVaultNotFound = errors.New("vault directory not found")
	ErrNotDirectory  = errors.New("vault path is not a directory")
)

// Page is one markdown file found in the vault.
type Page struct {
	RelPath string   // vault-relative path with extension, slash-separated
	AbsPath string   // absolute filesystem path
	Target  string   // site URL: "/" + relative path without extension
	Title   string   // frontmatter title, may be empty
	Aliases []string // frontmatter aliases, extra link keys
	Tags    []string // frontmatter tags
	Date    string   // frontmatter date, passed through verbatim
	Draft   bool     // frontmatter draft flag
}

// Options controls the scan.
type Options struct {
	ExcludeDrafts bool // drop pages marked draft: true
}

// Vault is the scan result.
type Vault struct {
	Root  string // absolute vault root
	Pages []Page // sorted by RelPath
}

// pageMeta is the frontmatter subset the scanner reads.
type pageMeta struct {
	Title   string   `yaml:"title"`
	Aliases []string `yaml:"aliases"`
	Tags    []string `yaml:"tags"`
	Date    string   `yaml:"date"`
	Draft   bool     `yaml:"draft"`
}

// Scan walks root collecting every .md file. Dot-directories and
// node_modules are skipped, matching what Obsidian itself indexes.
// Malformed frontmatter does not fail the scan; the page is kept with
// empty metadata.
func Scan(root string, opts Options) (*Vault, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving vault path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrVaultNotFound, absRoot)
		}
		return nil, fmt.Errorf("reading vault path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, absRoot)
	}

	v := &Vault{Root: absRoot}

	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			name := d.Name()
			if p != absRoot && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return fs.SkipDir
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		page, err := readPage(p, rel)
		if err != nil {
			return err
		}
		if opts.ExcludeDrafts && page.Draft {
			return nil
		}

		v.Pages = append(v.Pages, page)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning vault: %w", err)
	}

	sort.Slice(v.Pages, func(i, j int) bool {
		return v.Pages[i].RelPath < v.Pages[j].RelPath
	})

	return v, nil
}

// readPage builds a Page from one markdown file, decoding its frontmatter.
func readPage(absPath, relPath string) (Page, error) {
	data, err := os.ReadFile(absPath) // #nosec G304 -- path comes from the walked vault
	if err != nil {
		return Page{}, fmt.Errorf("reading %s: %w", relPath, err)
	}

	var meta pageMeta
	if _, err := frontmatter.Parse(bytes.NewReader(data), &meta); err != nil {
		meta = pageMeta{}
	}

	relNoExt := strings.TrimSuffix(relPath, path.Ext(relPath))

	return Page{
		RelPath: relPath,
		AbsPath: absPath,
		Target:  "/" + relNoExt,
		Title:   meta.Title,
		Aliases: meta.Aliases,
		Tags:    meta.Tags,
		Date:    meta.Date,
		Draft:   meta.Draft,
	}, nil
}

// LinkTargets accumulates link keys for every page: the relative path
// without extension, the basename without extension, and each frontmatter
// alias. Candidate lists are deduplicated and sorted so resolution order
// never depends on walk order.
func (v *Vault) LinkTargets() map[string][]string {
	targets := make(map[string][]string)
	add := func(key, target string) {
		if key == "" {
			return
		}
		for _, t := range targets[key] {
			if t == target {
				return
			}
		}
		targets[key] = append(targets[key], target)
	}

	for _, p := range v.Pages {
		relNoExt := strings.TrimPrefix(p.Target, "/")
		add(relNoExt, p.Target)
		add(path.Base(relNoExt), p.Target)
		for _, alias := range p.Aliases {
			add(strings.TrimSpace(alias), p.Target)
		}
	}

	for k := range targets {
		sort.Strings(targets[k])
	}
	return targets
}
