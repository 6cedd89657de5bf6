package browser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/entrhq/browserinit/pkg/driver"
	"github.com/entrhq/browserinit/pkg/logging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/playwright-community/playwright-go"
)

// Launcher starts Chromium with either launch strategy.
//
// The standard strategy runs through Playwright's managed driver; the evasion
// strategy drives the binary directly over CDP with go-rod.
type Launcher struct {
	logger     *logging.Logger
	runOptions *playwright.RunOptions
}

// NewLauncher creates a launcher logging to logger (nil discards).
func NewLauncher(logger *logging.Logger) *Launcher {
	if logger == nil {
		logger = logging.Discard()
	}

	// Install only the Playwright driver, never its bundled browsers, and keep
	// its output off the console
	return &Launcher{
		logger: logger,
		runOptions: &playwright.RunOptions{
			SkipInstallBrowsers: true,
			Verbose:             false,
			Stdout:              io.Discard,
			Stderr:              io.Discard,
		},
	}
}

// LaunchStandard starts the binary through a Playwright persistent context.
func (l *Launcher) LaunchStandard(service driver.Service, cfg driver.StandardConfig) (driver.Handle, error) {
	if err := playwright.Install(l.runOptions); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(l.runOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	profileDir, err := os.MkdirTemp("", "browserinit-profile-*")
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}

	if err := writePreferences(profileDir, cfg.Preferences); err != nil {
		pw.Stop()
		os.RemoveAll(profileDir)
		return nil, fmt.Errorf("failed to write preferences: %w", err)
	}

	l.logger.Debugf("Launching %s with profile %s", service.BinaryPath, profileDir)

	context, err := pw.Chromium.LaunchPersistentContext(profileDir, playwright.BrowserTypeLaunchPersistentContextOptions{
		ExecutablePath:    playwright.String(service.BinaryPath),
		Args:              cfg.Args,
		IgnoreDefaultArgs: switchArgs(cfg.ExcludeSwitches),
		Headless:          playwright.Bool(cfg.Headless),
		NoViewport:        playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		os.RemoveAll(profileDir)
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	// A persistent context opens with one page already
	var page playwright.Page
	if pages := context.Pages(); len(pages) > 0 {
		page = pages[0]
	} else {
		page, err = context.NewPage()
		if err != nil {
			context.Close()
			pw.Stop()
			os.RemoveAll(profileDir)
			return nil, fmt.Errorf("failed to create page: %w", err)
		}
	}

	return &playwrightHandle{
		pw:         pw,
		context:    context,
		page:       page,
		profileDir: profileDir,
	}, nil
}

// LaunchEvasion starts the binary directly and masks automation fingerprints on every document.
func (l *Launcher) LaunchEvasion(binaryPath string, cfg driver.EvasionConfig) (driver.Handle, error) {
	rl := launcher.New().
		Bin(binaryPath).
		Headless(cfg.Headless).
		Delete(flags.Flag("enable-automation"))

	for _, arg := range cfg.Args {
		name, values := splitArg(arg)
		if name == "" {
			continue
		}
		rl = rl.Set(flags.Flag(name), values...)
	}

	l.logger.Debugf("Launching %s directly (evasion mode)", binaryPath)

	controlURL, err := rl.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		rl.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		browser.Close()
		rl.Kill()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if _, err := page.EvalOnNewDocument(fmt.Sprintf("(%s)()", evasionScript)); err != nil {
		browser.Close()
		rl.Kill()
		return nil, fmt.Errorf("failed to install evasion script: %w", err)
	}

	return &rodHandle{
		launcher: rl,
		browser:  browser,
		page:     page,
	}, nil
}

// switchArgs turns bare switch names into command line flags.
func switchArgs(switches []string) []string {
	if len(switches) == 0 {
		return nil
	}
	args := make([]string, 0, len(switches))
	for _, s := range switches {
		args = append(args, "--"+strings.TrimPrefix(s, "--"))
	}
	return args
}

// splitArg splits "--name=value" into its flag name and values.
func splitArg(arg string) (string, []string) {
	arg = strings.TrimLeft(arg, "-")
	name, value, ok := strings.Cut(arg, "=")
	if !ok {
		return name, nil
	}
	return name, []string{value}
}
