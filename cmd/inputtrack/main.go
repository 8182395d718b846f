// Package main is the entry point for the inputtrack terminal host.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/inputtrack/internal/app"
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

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var exclusive bool
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&exclusive, "exclusive", false, "Track input only while the terminal holds pointer capture")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua frame script")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error, disable)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Log file (default: discard)")
	flag.IntVar(&opts.FPS, "fps", 0, "Frame rate (default from config, 60)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "inputtrack - terminal input state tracker\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inputtrack [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  inputtrack                        Track keys and pointer\n")
		fmt.Fprintf(os.Stderr, "  inputtrack -exclusive             Click to capture, Esc to release\n")
		fmt.Fprintf(os.Stderr, "  inputtrack -script hud.lua        Draw the status line from Lua\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment variables prefixed INPUTTRACK_ override the config file.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("inputtrack %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Only an explicit -exclusive overrides the config.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "exclusive" {
			opts.Exclusive = &exclusive
		}
	})

	return opts
}
