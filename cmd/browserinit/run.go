package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/entrhq/browserinit/pkg/browser"
	"github.com/entrhq/browserinit/pkg/config"
	"github.com/entrhq/browserinit/pkg/driver"
	"github.com/entrhq/browserinit/pkg/flow"
	"github.com/entrhq/browserinit/pkg/locale"
	"github.com/entrhq/browserinit/pkg/logging"
)

// run launches the configured session, runs its steps and holds it open
// until ctx is done or hold elapses.
func run(ctx context.Context, cfg *config.LaunchConfig, hold time.Duration) error {
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		// The returned logger is still usable
		logger.Warnf("Logging setup: %v", err)
	}
	defer logger.Close()

	pair, err := locale.NewResolver(cfg.LangFile).Resolve(cfg.Language)
	if err != nil {
		return fmt.Errorf("failed to resolve language: %w", err)
	}
	logger.Debugf("Resolved language %q to %s", cfg.Language, pair)

	builder := driver.NewBuilder(
		driver.Config{
			DriverPath:   cfg.DriverPath,
			UserAgent:    cfg.UserAgent,
			Locale:       pair,
			ForceInstall: cfg.ForceInstall,
		},
		driver.WithInstaller(browser.NewInstaller(logger.With("installer"))),
		driver.WithLauncher(browser.NewLauncher(logger.With("launcher"))),
		driver.WithUserAgentStore(config.NewUserAgentStore(cfg.UserAgentFile)),
		driver.WithLogger(logger.With("driver")),
	)

	session, err := builder.Start(launchOptions(cfg))
	if session != nil {
		defer func() {
			if closeErr := session.Close(); closeErr != nil {
				logger.Warnf("Failed to close browser: %v", closeErr)
			}
		}()
	}
	if err != nil {
		return err
	}

	if len(cfg.Steps) > 0 {
		result, err := flow.NewRunner(logger).Run(ctx, session, flowSteps(cfg.Steps)...)
		logger.Infof("Steps completed: %d, skipped: %d", len(result.Completed), len(result.Skipped))
		if err != nil {
			return err
		}
	}

	return holdOpen(ctx, hold, logger)
}

func newLogger(cfg config.LoggingConfig) (*logging.Logger, error) {
	// An unknown level falls back to info
	level, levelErr := logging.ParseLevel(cfg.Level)

	logger, err := logging.New(logging.Config{
		Component: "browserinit",
		Level:     level,
		Dir:       cfg.Dir,
		Console:   os.Stderr,
		NoColor:   cfg.NoColor,
	})
	if err == nil {
		err = levelErr
	}
	return logger, err
}

// launchOptions maps the file and environment representation onto driver options.
func launchOptions(cfg *config.LaunchConfig) driver.Options {
	opts := driver.DefaultOptions()

	opts.WindowSize = cfg.WindowSize
	if len(cfg.WindowPosition) == 2 {
		opts.WindowPosition = driver.Position{X: cfg.WindowPosition[0], Y: cfg.WindowPosition[1]}
	}
	opts.SandboxEnabled = cfg.SandboxEnabled
	opts.WaitTime = time.Duration(cfg.WaitTime) * time.Second
	opts.NotificationLevel = driver.NotificationLevel(cfg.NotificationLevel)
	opts.SavePasswords = cfg.SavePasswords
	opts.Camouflage = cfg.Camouflage
	opts.WebSecurity = cfg.WebSecurity
	opts.Undetectable = cfg.Undetectable
	opts.Cookies = driver.CookiesFromMap(cfg.Cookies)
	opts.InitialURL = cfg.InitialURL
	opts.PersistUserAgent = cfg.SaveUserAgent

	return opts
}

// flowSteps converts configured steps into runnable ones.
func flowSteps(steps []config.StepConfig) []flow.Step {
	out := make([]flow.Step, 0, len(steps))
	for _, s := range steps {
		var step flow.Step
		switch s.Action {
		case config.ActionNavigate:
			step = flow.Navigate(s.URL)
		case config.ActionClick:
			step = flow.Click(s.Selector)
		case config.ActionFill:
			step = flow.Fill(s.Selector, s.Text)
		case config.ActionWaitURL:
			step = flow.WaitFor("wait for "+s.URL, driver.URLHasPrefix(s.URL))
		default:
			continue
		}
		if s.Optional {
			step = flow.Optional(step)
		}
		out = append(out, step)
	}
	return out
}

func holdOpen(ctx context.Context, hold time.Duration, logger *logging.Logger) error {
	if hold <= 0 {
		logger.Infof("Browser ready, press Ctrl+C to close")
		<-ctx.Done()
		return nil
	}

	logger.Infof("Browser ready, closing in %s", hold)
	timer := time.NewTimer(hold)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
	return nil
}
