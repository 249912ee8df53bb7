// Package main is the entry point for the structlab command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/structlab/internal/app"
	"github.com/dshills/structlab/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// cliOptions holds the parsed command line.
type cliOptions struct {
	app app.Options

	// Eval is a one-shot command string, statements separated by
	// newlines or semicolons.
	Eval string

	// ScriptPath is a script or scenario file to run.
	ScriptPath string

	// LuaPath is a Lua script to run against the lab API.
	LuaPath string
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.Eval != "":
		return runScript(application, opts.Eval)

	case opts.ScriptPath != "":
		return runScriptFile(application, opts.ScriptPath)

	case opts.LuaPath != "":
		if err := application.RunLua(ctx, opts.LuaPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0

	default:
		repl := app.NewREPL(application, os.Stdin, os.Stdout)
		if err := repl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
}

// runScript runs script text and prints one line per statement plus a
// summary.
func runScript(application *app.Application, text string) int {
	report := application.RunScript(text)
	printReport(os.Stdout, report)
	if report.Failed > 0 {
		return 1
	}
	return 0
}

// runScriptFile runs a .yaml/.yml scenario or a plain script file.
func runScriptFile(application *app.Application, path string) int {
	if script.IsScenarioFile(path) {
		scenario, report, err := application.RunScenario(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if scenario.Name != "" {
			fmt.Printf("scenario: %s\n", scenario.Name)
		}
		printReport(os.Stdout, report)
		if report.Failed > 0 {
			return 1
		}
		return 0
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return runScript(application, string(data))
}

func printReport(w io.Writer, report script.Report) {
	for _, o := range report.Outcomes {
		fmt.Fprintf(w, "%3d  %-40s %s\n", o.Line, o.Text, app.RenderStatus(o.Result))
	}
	fmt.Fprintf(w, "%d ok, %d failed\n", report.Succeeded, report.Failed)
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool
	var showHelp bool
	var watch bool

	flag.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Eval, "e", "", "Run command text and exit")
	flag.StringVar(&opts.ScriptPath, "script", "", "Run a script or .yaml scenario file and exit")
	flag.StringVar(&opts.ScriptPath, "s", "", "Run a script or .yaml scenario file (shorthand)")
	flag.StringVar(&opts.LuaPath, "lua", "", "Run a Lua script against the lab API and exit")
	flag.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.app.Quiet, "quiet", false, "Silence log output")
	flag.BoolVar(&opts.app.Quiet, "q", false, "Silence log output (shorthand)")
	flag.BoolVar(&watch, "watch", false, "Reload runtime settings when the config file changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Structlab - interactive data structure lab\n\n")
		fmt.Fprintf(os.Stderr, "Usage: structlab [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  structlab                              Start the REPL\n")
		fmt.Fprintf(os.Stderr, "  structlab -e 'create stack with 1, 2'  Run one command\n")
		fmt.Fprintf(os.Stderr, "  structlab -s warmup.yaml               Run a scenario file\n")
		fmt.Fprintf(os.Stderr, "  structlab -lua demo.lua                Run a Lua script\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Structlab %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.app.LogLevel != "" {
		switch opts.app.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.app.LogLevel)
			os.Exit(1)
		}
	}

	// A positional argument is treated as a script file.
	if opts.ScriptPath == "" && flag.NArg() > 0 {
		opts.ScriptPath = flag.Arg(0)
	}

	opts.app.WatchConfig = watch && opts.app.ConfigPath != ""

	return opts
}
