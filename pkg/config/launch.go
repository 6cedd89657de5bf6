package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable read by LoadLaunchConfig.
const EnvPrefix = "BROWSERINIT_"

// LaunchConfig is the file and environment representation of a browser launch.
type LaunchConfig struct {
	// Construction-time settings
	DriverPath    string `yaml:"driver_path" toml:"driver_path" env:"DRIVER_PATH"`
	UserAgent     string `yaml:"user_agent" toml:"user_agent" env:"USER_AGENT"`
	Language      string `yaml:"language" toml:"language" env:"LANGUAGE"`
	LangFile      string `yaml:"lang_file" toml:"lang_file" env:"LANG_FILE"`
	UserAgentFile string `yaml:"user_agent_file" toml:"user_agent_file" env:"USER_AGENT_FILE"`
	ForceInstall  bool   `yaml:"force_install" toml:"force_install" env:"FORCE_INSTALL"`

	// Call-time settings
	WindowSize        string            `yaml:"window_size" toml:"window_size" env:"WINDOW_SIZE"`
	WindowPosition    []int             `yaml:"window_position" toml:"window_position" env:"WINDOW_POSITION"`
	SandboxEnabled    bool              `yaml:"sandbox_enabled" toml:"sandbox_enabled" env:"SANDBOX_ENABLED"`
	WaitTime          int               `yaml:"wait_time" toml:"wait_time" env:"WAIT_TIME"`
	NotificationLevel int               `yaml:"notification_level" toml:"notification_level" env:"NOTIFICATION_LEVEL"`
	SavePasswords     bool              `yaml:"save_passwords" toml:"save_passwords" env:"SAVE_PASSWORDS"`
	Camouflage        bool              `yaml:"camouflage" toml:"camouflage" env:"CAMOUFLAGE"`
	WebSecurity       bool              `yaml:"web_security" toml:"web_security" env:"WEB_SECURITY"`
	Undetectable      bool              `yaml:"undetectable" toml:"undetectable" env:"UNDETECTABLE"`
	Cookies           map[string]string `yaml:"cookies" toml:"cookies" env:"COOKIES"`
	InitialURL        string            `yaml:"initial_url" toml:"initial_url" env:"INITIAL_URL"`
	SaveUserAgent     bool              `yaml:"save_user_agent" toml:"save_user_agent" env:"SAVE_USER_AGENT"`

	// Steps run in order once the browser is up
	Steps []StepConfig `yaml:"steps" toml:"steps"`

	Logging LoggingConfig `yaml:"logging" toml:"logging" envPrefix:"LOG_"`
}

// Step actions understood in a StepConfig.
const (
	ActionNavigate = "navigate"
	ActionClick    = "click"
	ActionFill     = "fill"
	ActionWaitURL  = "wait_url"
)

// StepConfig is one scripted interaction.
type StepConfig struct {
	Action   string `yaml:"action" toml:"action"`
	Selector string `yaml:"selector" toml:"selector"`
	Text     string `yaml:"text" toml:"text"`
	URL      string `yaml:"url" toml:"url"`
	Optional bool   `yaml:"optional" toml:"optional"`
}

func (s StepConfig) validate() error {
	switch s.Action {
	case ActionNavigate, ActionWaitURL:
		if s.URL == "" {
			return fmt.Errorf("%s requires url", s.Action)
		}
	case ActionClick, ActionFill:
		if s.Selector == "" {
			return fmt.Errorf("%s requires selector", s.Action)
		}
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}

// LoggingConfig configures log output for the CLI.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level" env:"LEVEL"`
	Dir     string `yaml:"dir" toml:"dir" env:"DIR"`
	NoColor bool   `yaml:"no_color" toml:"no_color" env:"NO_COLOR"`
}

// DefaultLaunchConfig returns the defaults used when neither a file nor the environment set a value.
func DefaultLaunchConfig() *LaunchConfig {
	return &LaunchConfig{
		Language:          "English",
		WindowSize:        "max",
		SandboxEnabled:    true,
		WaitTime:          20,
		NotificationLevel: 2,
		Camouflage:        true,
		SaveUserAgent:     true,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadLaunchConfig builds a LaunchConfig from defaults, the optional file at
// path and BROWSERINIT_* environment variables, in that order of precedence.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func LoadLaunchConfig(path string) (*LaunchConfig, error) {
	cfg := DefaultLaunchConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrMissingResource, path)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			err = toml.Unmarshal(data, cfg)
		default:
			err = yaml.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrMalformedConfig, err)
	}

	return cfg, nil
}

// Validate checks values that can be verified without touching the browser.
func (c *LaunchConfig) Validate() error {
	if c.NotificationLevel < 0 || c.NotificationLevel > 2 {
		return fmt.Errorf("notification_level must be 0, 1 or 2, got %d", c.NotificationLevel)
	}
	if c.WaitTime < 0 {
		return fmt.Errorf("wait_time must not be negative, got %d", c.WaitTime)
	}
	if n := len(c.WindowPosition); n != 0 && n != 2 {
		return fmt.Errorf("window_position must have exactly two values, got %d", n)
	}
	if c.Language == "" {
		return fmt.Errorf("language is required")
	}
	for i, step := range c.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}
