package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	obsidian2html "github.com/alnah/go-obsidian2html"
	"github.com/alnah/go-obsidian2html/internal/hints"
	"github.com/alnah/go-obsidian2html/internal/vault"
)

// Problem kinds reported by the check command.
const (
	problemUnresolved = "unresolved"
	problemAmbiguous  = "ambiguous"
)

// checkReport holds the full audit outcome.
type checkReport struct {
	Status   string        `json:"status"` // "ok", "problems"
	Root     string        `json:"root"`
	Pages    int           `json:"pages"`
	Links    int           `json:"links"`
	Problems []linkProblem `json:"problems,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
}

// linkProblem is one wikilink the audit flagged.
type linkProblem struct {
	File        string   `json:"file"`
	Line        int      `json:"line"`
	Col         int      `json:"col"`
	Target      string   `json:"target"`
	Kind        string   `json:"kind"`
	Candidates  []string `json:"candidates,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// runCheckCmd executes the check command and returns an exit code.
// Exit codes: 0 = every link resolves, 1 = problems found.
func runCheckCmd(args []string, env *Environment) int {
	flags, positional, err := parseCheckFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	root := "."
	if len(positional) > 0 {
		root = positional[0]
	}

	var progress io.Writer
	if flags.common.verbose {
		progress = env.Stderr
	}

	report, err := runCheck(root, vault.Options{ExcludeDrafts: flags.excludeDrafts}, progress)
	if err != nil {
		if errors.Is(err, vault.ErrVaultNotFound) || errors.Is(err, vault.ErrNotDirectory) {
			fmt.Fprintf(env.Stderr, "%v%s\n", err, hints.ForVaultNotFound())
		} else {
			fmt.Fprintln(env.Stderr, err)
		}
		return exitCodeFor(err)
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else if !flags.common.quiet || report.Status == "problems" {
		printCheckReport(env.Stdout, report)
	}

	if report.Status == "problems" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runCheck scans the vault, builds its link index, and resolves every
// wikilink against it. Embeds are skipped: attachments are not markdown,
// so they never appear in the index and their base-path fallback is the
// normal publishing path, not a defect. A non-nil progress writer gets
// one line per checked page.
func runCheck(root string, opts vault.Options, progress io.Writer) (*checkReport, error) {
	v, err := vault.Scan(root, opts)
	if err != nil {
		return nil, err
	}

	index := obsidian2html.NewLinkIndex(v.LinkTargets())
	report := &checkReport{Status: "ok", Root: v.Root, Pages: len(v.Pages)}

	for _, page := range v.Pages {
		if progress != nil {
			fmt.Fprintf(progress, "checking %s\n", page.RelPath)
		}

		content, err := os.ReadFile(page.AbsPath) // #nosec G304 -- scanned path
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("reading %s: %v", page.RelPath, err))
			continue
		}

		for _, ref := range obsidian2html.ListLinks(string(content)) {
			if ref.Embed {
				continue
			}
			report.Links++

			// Anchor-only links ([[#heading]]) target the same document
			if ref.Path == "" {
				continue
			}

			res := obsidian2html.ResolveLinkPath(ref.Path, obsidian2html.ResolveOptions{
				Index:       index,
				CurrentPath: page.RelPath,
			})
			switch {
			case !res.Resolved:
				report.Problems = append(report.Problems, linkProblem{
					File:        page.RelPath,
					Line:        ref.Line,
					Col:         ref.Col,
					Target:      ref.Path,
					Kind:        problemUnresolved,
					Suggestions: obsidian2html.FindSimilar(lastSegment(ref.Path), index),
				})
			case res.Ambiguous:
				report.Problems = append(report.Problems, linkProblem{
					File:       page.RelPath,
					Line:       ref.Line,
					Col:        ref.Col,
					Target:     ref.Path,
					Kind:       problemAmbiguous,
					Candidates: res.Candidates,
				})
			}
		}
	}

	if len(report.Problems) > 0 || len(report.Errors) > 0 {
		report.Status = "problems"
	}

	return report, nil
}

// lastSegment returns the final '/'-delimited segment of a link path, the
// note title FindSimilar matches against.
func lastSegment(path string) string {
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		return path[idx+1:]
	}
	return path
}

// printCheckReport outputs human-readable audit results.
func printCheckReport(w io.Writer, r *checkReport) {
	fmt.Fprintln(w, "obsidian2html check")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Vault")
	fmt.Fprintf(w, "  [OK] Root: %s\n", r.Root)
	fmt.Fprintf(w, "  [OK] Pages: %d\n", r.Pages)
	fmt.Fprintf(w, "  [OK] Links: %d\n", r.Links)
	fmt.Fprintln(w)

	if len(r.Problems) > 0 {
		fmt.Fprintln(w, "Problems:")
		for _, p := range r.Problems {
			switch p.Kind {
			case problemAmbiguous:
				fmt.Fprintf(w, "  [WARN] %s:%d:%d [[%s]] ambiguous\n", p.File, p.Line, p.Col, p.Target)
				fmt.Fprintf(w, "         candidates: %s\n", strings.Join(p.Candidates, ", "))
			default:
				fmt.Fprintf(w, "  [WARN] %s:%d:%d [[%s]] unresolved%s\n",
					p.File, p.Line, p.Col, p.Target, hints.ForUnresolvedLink(p.Suggestions))
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", e)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ok":
		fmt.Fprintln(w, "Status: All links resolve")
	default:
		fmt.Fprintf(w, "Status: %d problem(s) found\n", len(r.Problems)+len(r.Errors))
	}
}
