package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds per-page rendering flags.
type pageFlags struct {
	title    string
	date     string
	fragment bool
}

// vaultFlags holds link index flags.
type vaultFlags struct {
	basePath      string
	excludeDrafts bool
}

// assetFlags holds asset-related flags (CSS, templates, custom asset path).
type assetFlags struct {
	style     string // Name, path, or raw CSS
	template  string // Page template name
	assetPath string // Override asset directory
	noStyle   bool   // Disable CSS styling
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	page    pageFlags
	vault   vaultFlags
	assets  assetFlags
}

// checkFlags holds all flags for the check command.
type checkFlags struct {
	common        commonFlags
	json          bool
	excludeDrafts bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page rendering flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.title, "title", "", "page title (\"\" = frontmatter, then first H1)")
	fs.StringVar(&f.date, "date", "", "page footer date (\"auto\" = today)")
	fs.BoolVar(&f.fragment, "fragment", false, "emit the HTML fragment without the page wrap")
}

// addVaultFlags adds link index flags to a FlagSet.
func addVaultFlags(fs *flag.FlagSet, f *vaultFlags) {
	fs.StringVar(&f.basePath, "base-path", "", "attachment root for unresolved embeds")
	fs.BoolVar(&f.excludeDrafts, "exclude-drafts", false, "skip pages marked draft: true")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.template, "template", "", "page template name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addVaultFlags(fs, &f.vault)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string) (*checkFlags, []string, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	f := &checkFlags{}

	fs.BoolVar(&f.json, "json", false, "output machine-readable JSON")
	fs.BoolVar(&f.excludeDrafts, "exclude-drafts", false, "skip pages marked draft: true")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printCheckUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
