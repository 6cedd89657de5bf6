// Package main provides the browserinit command, which launches a configured
// Chromium session, optionally runs scripted steps against it and keeps it
// open until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/entrhq/browserinit/pkg/config"
)

const version = "0.1.0"

// Flags holds the command line. Only flags the user actually set override
// the loaded configuration.
type Flags struct {
	ConfigPath   string
	Language     string
	UserAgent    string
	URL          string
	WindowSize   string
	Undetectable bool
	ForceInstall bool
	LogLevel     string
	Hold         time.Duration
	ShowVersion  bool

	set map[string]bool
}

func main() {
	flags := parseFlags()

	if flags.ShowVersion {
		fmt.Printf("browserinit v%s\n", version)
		return
	}

	cfg, err := config.LoadLaunchConfig(flags.ConfigPath)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	flags.apply(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, flags.Hold); err != nil {
		cancel()
		log.Fatalf("browserinit: %v", err)
	}
}

func parseFlags() *Flags {
	f := &Flags{}

	flag.StringVar(&f.ConfigPath, "config", "", "Path to a YAML or TOML launch configuration")
	flag.StringVar(&f.Language, "lang", "", "Browser language name, e.g. Spanish")
	flag.StringVar(&f.UserAgent, "user-agent", "", "User agent string (default: persisted value)")
	flag.StringVar(&f.URL, "url", "", "URL to open after launch")
	flag.StringVar(&f.WindowSize, "window", "", "Window size: max, min (headless) or WIDTHxHEIGHT")
	flag.BoolVar(&f.Undetectable, "undetectable", false, "Launch the browser directly with automation fingerprints masked")
	flag.BoolVar(&f.ForceInstall, "force-install", false, "Download a browser even if a binary path is configured")
	flag.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	flag.DurationVar(&f.Hold, "hold", 0, "Close the browser after this long (default: wait for interrupt)")
	flag.BoolVar(&f.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "browserinit - launch a preconfigured browser session\n\n")
		fmt.Fprintf(os.Stderr, "Usage: browserinit [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  %sLANGUAGE, %sWINDOW_SIZE, %sLOG_LEVEL, ...\n", config.EnvPrefix, config.EnvPrefix, config.EnvPrefix)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  browserinit -lang Spanish -url https://example.com\n")
		fmt.Fprintf(os.Stderr, "  browserinit -config launch.yaml -window 1280x800 -hold 5m\n")
		fmt.Fprintf(os.Stderr, "  browserinit -undetectable -window min\n")
	}

	flag.Parse()

	f.set = make(map[string]bool)
	flag.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})
	return f
}

// apply overlays explicitly set flags onto cfg.
func (f *Flags) apply(cfg *config.LaunchConfig) {
	if f.set["lang"] {
		cfg.Language = f.Language
	}
	if f.set["user-agent"] {
		cfg.UserAgent = f.UserAgent
	}
	if f.set["url"] {
		cfg.InitialURL = f.URL
	}
	if f.set["window"] {
		cfg.WindowSize = f.WindowSize
	}
	if f.set["undetectable"] {
		cfg.Undetectable = f.Undetectable
	}
	if f.set["force-install"] {
		cfg.ForceInstall = f.ForceInstall
	}
	if f.set["log-level"] {
		cfg.Logging.Level = f.LogLevel
	}
}
