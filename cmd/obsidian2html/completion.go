package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	TakesDirs   bool   // accepts directory arguments
	FilePattern string // glob for file arguments (e.g., "*.md")
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	FileGlob string // file glob pattern
	IsDir    bool   // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// File flags with glob patterns
	"config": {FileGlob: "*.yaml,*.yml"},
	"style":  {FileGlob: "*.css"},

	// Directory flags
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// buildConvertFlagSet creates a FlagSet with all convert command flags.
// This reuses the same flag registration as parseConvertFlags.
func buildConvertFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addVaultFlags(fs, &f.vault)
	addAssetFlags(fs, &f.assets)

	return fs
}

// buildCheckFlagSet creates a FlagSet with all check command flags.
func buildCheckFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	f := &checkFlags{}

	fs.BoolVar(&f.json, "json", false, "output machine-readable JSON")
	fs.BoolVar(&f.excludeDrafts, "exclude-drafts", false, "skip pages marked draft: true")
	addCommonFlags(fs, &f.common)

	return fs
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets - single source of truth.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert Obsidian markdown to HTML",
			Flags:       extractFlagsFromFlagSet(buildConvertFlagSet()),
			TakesFiles:  true,
			TakesDirs:   true,
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:      "check",
			Desc:      "Audit vault wikilinks",
			Flags:     extractFlagsFromFlagSet(buildCheckFlagSet()),
			TakesDirs: true,
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// bashExtGlob converts "*.md,*.markdown" into the extended glob bash's
// compgen -X expects, negated to keep matching files.
func bashExtGlob(pattern string) string {
	parts := strings.Split(pattern, ",")
	if len(parts) == 1 {
		return "!" + parts[0]
	}
	exts := make([]string, len(parts))
	for i, p := range parts {
		exts[i] = strings.TrimPrefix(p, "*.")
	}
	return "!*.@(" + strings.Join(exts, "|") + ")"
}

// generateBash writes a bash completion script built from the command registry.
func generateBash(w io.Writer) error {
	cmds := getCommands()

	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}

	fmt.Fprintln(w, "# bash completion for obsidian2html")
	fmt.Fprintln(w, "_obsidian2html() {")
	fmt.Fprintln(w, `    local cur prev`)
	fmt.Fprintln(w, `    cur="${COMP_WORDS[COMP_CWORD]}"`)
	fmt.Fprintln(w, `    prev="${COMP_WORDS[COMP_CWORD-1]}"`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if [[ $COMP_CWORD -eq 1 ]]; then")
	fmt.Fprintf(w, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `    case "${COMP_WORDS[1]}" in`)

	for _, cmd := range cmds {
		fmt.Fprintf(w, "    %s)\n", cmd.Name)

		// Flags that take a path argument complete from the filesystem
		var valueArms []string
		for _, f := range cmd.Flags {
			spec := "--" + f.Long
			if f.Short != "" {
				spec += "|-" + f.Short
			}
			switch f.Type {
			case flagFile:
				valueArms = append(valueArms, fmt.Sprintf(
					"        %s) COMPREPLY=($(compgen -f -X '%s' -- \"$cur\") $(compgen -d -- \"$cur\")); return ;;",
					spec, bashExtGlob(f.FileGlob)))
			case flagDir:
				valueArms = append(valueArms, fmt.Sprintf(
					"        %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;", spec))
			}
		}
		if len(valueArms) > 0 {
			fmt.Fprintln(w, `        case "$prev" in`)
			for _, arm := range valueArms {
				fmt.Fprintln(w, arm)
			}
			fmt.Fprintln(w, "        esac")
		}

		var flagWords []string
		for _, f := range cmd.Flags {
			flagWords = append(flagWords, "--"+f.Long)
			if f.Short != "" {
				flagWords = append(flagWords, "-"+f.Short)
			}
		}
		if len(flagWords) > 0 {
			fmt.Fprintln(w, `        if [[ $cur == -* ]]; then`)
			fmt.Fprintf(w, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords, " "))
			fmt.Fprintln(w, "            return")
			fmt.Fprintln(w, "        fi")
		}

		switch {
		case cmd.TakesFiles && cmd.TakesDirs:
			fmt.Fprintf(w, "        COMPREPLY=($(compgen -f -X '%s' -- \"$cur\") $(compgen -d -- \"$cur\"))\n",
				bashExtGlob(cmd.FilePattern))
		case cmd.TakesDirs:
			fmt.Fprintln(w, `        COMPREPLY=($(compgen -d -- "$cur"))`)
		case cmd.Name == "help":
			fmt.Fprintf(w, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
		case cmd.Name == "completion":
			fmt.Fprintln(w, `        COMPREPLY=($(compgen -W "bash zsh fish powershell" -- "$cur"))`)
		}

		fmt.Fprintln(w, "        ;;")
	}

	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "complete -F _obsidian2html obsidian2html")
	return nil
}

// generateZsh writes a zsh completion script. It rides on zsh's bash
// compatibility layer, the usual route for tools without native zsh
// completion functions.
func generateZsh(w io.Writer) error {
	fmt.Fprintln(w, "#compdef obsidian2html")
	fmt.Fprintln(w, "autoload -U +X bashcompinit && bashcompinit")
	fmt.Fprintln(w)
	return generateBash(w)
}

// generateFish writes a fish completion script built from the command registry.
func generateFish(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "# fish completion for obsidian2html")
	fmt.Fprintln(w, "complete -c obsidian2html -f")

	for _, cmd := range cmds {
		fmt.Fprintf(w, "complete -c obsidian2html -n __fish_use_subcommand -a %s -d '%s'\n", cmd.Name, cmd.Desc)
	}

	for _, cmd := range cmds {
		cond := fmt.Sprintf("'__fish_seen_subcommand_from %s'", cmd.Name)
		if cmd.TakesFiles || cmd.TakesDirs {
			fmt.Fprintf(w, "complete -c obsidian2html -n %s -F\n", cond)
		}
		for _, f := range cmd.Flags {
			line := fmt.Sprintf("complete -c obsidian2html -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			if f.Type != flagBool {
				line += " -r"
			}
			if f.Type == flagFile || f.Type == flagDir {
				line += " -F"
			}
			line += fmt.Sprintf(" -d '%s'", strings.ReplaceAll(f.Desc, "'", `\'`))
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w, "complete -c obsidian2html -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish powershell'")
	fmt.Fprintln(w, "complete -c obsidian2html -n '__fish_seen_subcommand_from help' -a 'convert check version help completion'")
	return nil
}

// generatePowerShell writes a PowerShell argument completer built from the
// command registry.
func generatePowerShell(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "# powershell completion for obsidian2html")
	fmt.Fprintln(w, "Register-ArgumentCompleter -Native -CommandName obsidian2html -ScriptBlock {")
	fmt.Fprintln(w, "    param($wordToComplete, $commandAst, $cursorPosition)")
	fmt.Fprintln(w, "    $flags = @{")
	for _, cmd := range cmds {
		var words []string
		for _, f := range cmd.Flags {
			words = append(words, "'--"+f.Long+"'")
			if f.Short != "" {
				words = append(words, "'-"+f.Short+"'")
			}
		}
		fmt.Fprintf(w, "        '%s' = @(%s)\n", cmd.Name, strings.Join(words, ", "))
	}
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w, "    $tokens = $commandAst.CommandElements | ForEach-Object { $_.ToString() }")
	fmt.Fprintln(w, "    if ($tokens.Count -le 2) {")
	fmt.Fprintln(w, "        $flags.Keys | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {")
	fmt.Fprintln(w, "            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)")
	fmt.Fprintln(w, "        }")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w, "    $cmd = $tokens[1]")
	fmt.Fprintln(w, "    if ($flags.ContainsKey($cmd)) {")
	fmt.Fprintln(w, "        $flags[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {")
	fmt.Fprintln(w, "            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)")
	fmt.Fprintln(w, "        }")
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w, "}")
	return nil
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: obsidian2html completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(obsidian2html completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(obsidian2html completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    obsidian2html completion fish > ~/.config/fish/completions/obsidian2html.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    obsidian2html completion powershell | Out-String | Invoke-Expression")
}
