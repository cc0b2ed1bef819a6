package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verboseRequested(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// verboseRequested scans raw arguments for the verbose flag before any
// command-specific parsing happens. maxprocs logs during Set, which runs
// ahead of flag parsing.
func verboseRequested(args []string) bool {
	for _, arg := range args[1:] {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}

// runMain dispatches to the requested command and returns an exit code.
// Split from main so tests can drive it with a fake environment.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]

	if !isCommand(cmd) {
		// Legacy invocation: obsidian2html notes.md
		if looksLikeMarkdown(cmd) {
			fmt.Fprintln(env.Stderr, "DEPRECATED: pass files through the convert command: obsidian2html convert <file>")
			return runConvertCmd(args[1:], env)
		}
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch cmd {
	case "convert":
		return runConvertCmd(rest, env)
	case "check":
		return runCheckCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "obsidian2html %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	default: // "completion", the last name isCommand accepts
		if err := runCompletion(rest, env); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	}
}

// runConvertCmd parses convert flags and runs the conversion under a
// signal-canceled context.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether s names a known command. Case sensitive.
func isCommand(s string) bool {
	switch s {
	case "convert", "check", "version", "help", "completion":
		return true
	}
	return false
}

// looksLikeMarkdown reports whether s looks like a markdown file argument,
// for routing legacy invocations to convert.
func looksLikeMarkdown(s string) bool {
	return strings.HasSuffix(s, ".md") || strings.HasSuffix(s, ".markdown")
}
