package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	obsidian2html "github.com/alnah/go-obsidian2html"
	"github.com/alnah/go-obsidian2html/internal/config"
	"github.com/alnah/go-obsidian2html/internal/hints"
	"github.com/alnah/go-obsidian2html/internal/vault"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteHTML          = errors.New("failed to write HTML file")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input obsidian2html.Input) (*obsidian2html.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*obsidian2html.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (Converter, error)
	Release(Converter)
	Size() int
}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string // filesystem path to read
	RelPath    string // vault-relative slash path, the document identity for link resolution
	OutputPath string // filesystem path to write
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	// Load configuration; the flag wins over the environment for the path
	cfg := config.DefaultConfig()
	configPath := flags.common.config
	if configPath == "" {
		configPath = envCfg.ConfigPath
	}
	if configPath != "" {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(configPath)))
			}
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge environment then CLI flags into config (CLI wins)
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	workers := resolveWorkers(flags.workers, envCfg.Workers, cfg.Convert.Workers)
	if err := validateWorkers(workers); err != nil {
		return err
	}

	// Resolve "auto" date once for the entire batch
	resolvedDate, err := obsidian2html.ResolveDate(cfg.Page.Date, env.Now())
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	cfg.Page.Date = resolvedDate

	// Resolve input paths
	inputs, err := resolveInputPaths(positionalArgs, cfg)
	if err != nil {
		return err
	}

	// Resolve output directory
	outputDir := resolveOutputDir(flags.output, cfg)

	// Discover files and build the link index from every scanned root
	files, targets, err := discoverInputs(inputs, outputDir, vault.Options{
		ExcludeDrafts: cfg.Vault.ExcludeDrafts,
	})
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", strings.Join(inputs, ", "))
	}

	index := obsidian2html.NewLinkIndex(targets)

	poolSize := obsidian2html.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Indexed %d link keys, pool size %d\n", len(index), poolSize)
	}

	pool := obsidian2html.NewConverterPool(poolSize, buildConverterOptions(flags, cfg, index)...)
	defer pool.Close()
	adapter := &poolAdapter{pool: pool}

	// Warm one converter so option errors surface before the batch starts
	svc, err := adapter.Acquire()
	if err != nil {
		return fmt.Errorf("configuring converter: %w", err)
	}
	adapter.Release(svc)

	// Convert files
	results := convertBatch(ctx, adapter, files, cfg.Page.Title)

	// Print results
	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Page flags
	if flags.page.title != "" {
		cfg.Page.Title = flags.page.title
	}
	if flags.page.date != "" {
		cfg.Page.Date = flags.page.date
	}
	if flags.page.fragment {
		cfg.Page.Fragment = true
	}

	// Vault flags
	if flags.vault.basePath != "" {
		cfg.Vault.BasePath = flags.vault.basePath
	}
	if flags.vault.excludeDrafts {
		cfg.Vault.ExcludeDrafts = true
	}

	// Asset flags
	if flags.assets.style != "" {
		cfg.CSS.Style = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Template.Name = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
}

// resolveWorkers picks the worker count: flag > environment > config file.
// Zero everywhere means auto-size from the CPU count.
func resolveWorkers(flagValue, envValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if envValue > 0 {
		return envValue
	}
	if configValue > 0 {
		return configValue
	}
	return 0
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > obsidian2html.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, obsidian2html.MaxPoolSize)
	}
	return nil
}

// resolveInputPaths determines the input paths from args or config.
func resolveInputPaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// buildConverterOptions translates merged config into converter options.
func buildConverterOptions(flags *convertFlags, cfg *config.Config, index obsidian2html.LinkIndex) []obsidian2html.Option {
	opts := []obsidian2html.Option{obsidian2html.WithLinkIndex(index)}

	if cfg.Vault.BasePath != "" {
		opts = append(opts, obsidian2html.WithBasePath(cfg.Vault.BasePath))
	}
	// --no-style beats any configured style; an empty style means the
	// built-in default, so it cannot double as the disable switch.
	if flags.assets.noStyle {
		opts = append(opts, obsidian2html.WithStyle(""))
	} else if cfg.CSS.Style != "" {
		opts = append(opts, obsidian2html.WithStyle(cfg.CSS.Style))
	}
	if cfg.Template.Name != "" {
		opts = append(opts, obsidian2html.WithTemplate(cfg.Template.Name))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, obsidian2html.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Page.Date != "" {
		opts = append(opts, obsidian2html.WithDate(cfg.Page.Date))
	}
	if cfg.Page.Fragment {
		opts = append(opts, obsidian2html.WithoutPageWrap())
	}

	return opts
}

// discoverInputs finds all markdown files to convert and accumulates link
// targets from every scanned root. Directory arguments are scanned as
// vaults; file arguments index their containing directory so their links
// resolve the same way they would in a full vault build.
func discoverInputs(inputs []string, outputDir string, opts vault.Options) ([]FileToConvert, map[string][]string, error) {
	var files []FileToConvert
	targets := make(map[string][]string)
	scanned := make(map[string]*vault.Vault)

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, nil, err
		}

		if info.IsDir() {
			v, err := scanRoot(input, opts, scanned)
			if err != nil {
				return nil, nil, err
			}
			for _, page := range v.Pages {
				files = append(files, FileToConvert{
					InputPath:  page.AbsPath,
					RelPath:    page.RelPath,
					OutputPath: resolveOutputPath(page.AbsPath, outputDir, v.Root),
				})
			}
			mergeTargets(targets, v.LinkTargets())
			continue
		}

		if err := validateMarkdownExtension(input); err != nil {
			return nil, nil, err
		}
		v, err := scanRoot(filepath.Dir(input), opts, scanned)
		if err != nil {
			return nil, nil, err
		}
		mergeTargets(targets, v.LinkTargets())
		files = append(files, FileToConvert{
			InputPath:  input,
			RelPath:    filepath.Base(input),
			OutputPath: resolveOutputPath(input, outputDir, ""),
		})
	}

	return files, targets, nil
}

// scanRoot scans a vault root once, caching by absolute path so a file
// argument next to a directory argument does not trigger a second walk.
func scanRoot(root string, opts vault.Options, scanned map[string]*vault.Vault) (*vault.Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if v, ok := scanned[abs]; ok {
		return v, nil
	}

	v, err := vault.Scan(root, opts)
	if err != nil {
		if errors.Is(err, vault.ErrVaultNotFound) || errors.Is(err, vault.ErrNotDirectory) {
			return nil, fmt.Errorf("%w%s", err, hints.ForVaultNotFound())
		}
		return nil, err
	}
	scanned[abs] = v
	return v, nil
}

// mergeTargets folds src into dst, deduplicating candidate paths per key.
func mergeTargets(dst, src map[string][]string) {
	for key, paths := range src {
		existing := dst[key]
		for _, p := range paths {
			dup := false
			for _, e := range existing {
				if e == p {
					dup = true
					break
				}
			}
			if !dup {
				existing = append(existing, p)
			}
		}
		dst[key] = existing
	}
}

// resolveOutputPath determines the HTML output path for a markdown file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".html")
	}

	if strings.HasSuffix(outputDir, ".html") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".html")
		}
	}

	return filepath.Join(outputDir, base+".html")
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	ext := filepath.Ext(path)
	if ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, title string) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(svc)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, svc, files[idx], title)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, service Converter, f FileToConvert, title string) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
		result.Duration = time.Since(start)
		return result
	}

	res, err := service.Convert(ctx, obsidian2html.Input{
		Markdown: string(content),
		Path:     f.RelPath,
		Title:    title,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	// #nosec G306 -- rendered pages are meant to be readable
	if err := os.WriteFile(f.OutputPath, res.HTML, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteHTML, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
