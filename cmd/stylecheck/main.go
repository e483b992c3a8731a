// Package main is the entry point for the stylecheck CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/dshills/stylecheck/internal/checker"
	"github.com/dshills/stylecheck/internal/configfile"
	"github.com/dshills/stylecheck/internal/engine"
	"github.com/dshills/stylecheck/internal/preset"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	log := newLogger(opts.logLevel)

	config, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	chk, err := checker.New(".", checker.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer chk.Close()

	if err := chk.Configure(config); err != nil {
		var cfgErr *engine.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "Error: %s (%s)\n", cfgErr.Message, cfgErr.Kind)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	problems, err := chk.Check(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	for _, p := range problems {
		if p.Column > 0 {
			fmt.Printf("%s:%d:%d: %s (%s)\n", p.Path, p.Line, p.Column, p.Message, p.Rule)
		} else {
			fmt.Printf("%s:%d: %s (%s)\n", p.Path, p.Line, p.Message, p.Rule)
		}
	}

	if len(problems) > 0 {
		fmt.Fprintf(os.Stderr, "%d problem(s) found\n", len(problems))
		return 2
	}
	return 0
}

type options struct {
	configPath string
	presetName string
	logLevel   string
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var listPresets bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.presetName, "preset", "", "Preset to use when no config file is given")
	flag.StringVar(&opts.logLevel, "log-level", "error", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&listPresets, "presets", false, "List built-in presets")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "stylecheck - pluggable code style checker\n\n")
		fmt.Fprintf(os.Stderr, "Usage: stylecheck [options] [paths...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  stylecheck src/                  Check using .stylecheckrc.toml\n")
		fmt.Fprintf(os.Stderr, "  stylecheck -c style.json src/    Check using an explicit config\n")
		fmt.Fprintf(os.Stderr, "  stylecheck -preset google src/   Check using a built-in preset\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("stylecheck %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	if listPresets {
		names, err := preset.Names()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	return opts
}

// loadConfig picks the configuration source (explicit file or discovered
// file) and folds the flag overrides on top.
func loadConfig(opts options) (map[string]any, error) {
	var config map[string]any

	if opts.configPath != "" {
		cfg, err := configfile.ForPath(opts.configPath).LoadFrom(opts.configPath)
		if err != nil {
			return nil, err
		}
		if cfg == nil {
			return nil, fmt.Errorf("config file %s not found", opts.configPath)
		}
		config = cfg
	} else {
		cfg, _, err := configfile.Discover(".")
		if err != nil {
			return nil, err
		}
		config = cfg
	}

	// The -preset flag overrides whatever the file sets.
	if opts.presetName != "" {
		config = configfile.DeepMerge(config, map[string]any{"preset": opts.presetName})
	}

	if config == nil {
		return nil, errors.New("no configuration found: provide -config, -preset, or a .stylecheckrc file")
	}
	return config, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.ErrorLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
