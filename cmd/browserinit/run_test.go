package main

import (
	"context"
	"testing"
	"time"

	"github.com/entrhq/browserinit/pkg/config"
	"github.com/entrhq/browserinit/pkg/driver"
	"github.com/entrhq/browserinit/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchOptions(t *testing.T) {
	cfg := config.DefaultLaunchConfig()
	cfg.WindowSize = "1280x800"
	cfg.WindowPosition = []int{10, 20}
	cfg.WaitTime = 5
	cfg.NotificationLevel = 1
	cfg.Undetectable = true
	cfg.Cookies = map[string]string{"session": "abc"}
	cfg.InitialURL = "https://example.com"
	cfg.SaveUserAgent = false

	opts := launchOptions(cfg)

	assert.Equal(t, "1280x800", opts.WindowSize)
	assert.Equal(t, driver.Position{X: 10, Y: 20}, opts.WindowPosition)
	assert.Equal(t, 5*time.Second, opts.WaitTime)
	assert.Equal(t, driver.NotificationsAllow, opts.NotificationLevel)
	assert.True(t, opts.Undetectable)
	assert.True(t, opts.SandboxEnabled)
	assert.True(t, opts.Camouflage)
	assert.Equal(t, []driver.Cookie{{Name: "session", Value: "abc"}}, opts.Cookies)
	assert.Equal(t, "https://example.com", opts.InitialURL)
	assert.False(t, opts.PersistUserAgent)
}

func TestLaunchOptionsDefaultsMatchDriver(t *testing.T) {
	opts := launchOptions(config.DefaultLaunchConfig())
	assert.Equal(t, driver.DefaultOptions(), opts)
}

func TestFlowSteps(t *testing.T) {
	steps := flowSteps([]config.StepConfig{
		{Action: config.ActionNavigate, URL: "https://example.com/login"},
		{Action: config.ActionFill, Selector: "#user", Text: "alice"},
		{Action: config.ActionClick, Selector: "#banner", Optional: true},
		{Action: config.ActionWaitURL, URL: "https://example.com/home"},
	})

	require.Len(t, steps, 4)
	assert.Equal(t, "navigate to https://example.com/login", steps[0].Name)
	assert.Equal(t, "fill #user", steps[1].Name)
	assert.Empty(t, steps[1].Tolerate)
	assert.Contains(t, steps[2].Tolerate, driver.ErrElementNotFound)
	assert.Contains(t, steps[2].Tolerate, driver.ErrWaitTimeout)
	assert.Equal(t, "wait for https://example.com/home", steps[3].Name)
}

func TestFlagsApplyOnlySetValues(t *testing.T) {
	cfg := config.DefaultLaunchConfig()
	cfg.InitialURL = "https://from-file.example"

	f := &Flags{
		Language: "Spanish",
		URL:      "",
		LogLevel: "debug",
		set:      map[string]bool{"lang": true, "log-level": true},
	}
	f.apply(cfg)

	assert.Equal(t, "Spanish", cfg.Language)
	assert.Equal(t, "https://from-file.example", cfg.InitialURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "max", cfg.WindowSize)
}

func TestHoldOpen(t *testing.T) {
	start := time.Now()
	require.NoError(t, holdOpen(context.Background(), 10*time.Millisecond, logging.Discard()))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, holdOpen(ctx, 0, logging.Discard()))
}
