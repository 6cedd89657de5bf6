package driver

import (
	"time"
)

// Strategy selects how the browser process is launched.
type Strategy int

const (
	// StrategyStandard launches through a managed service with flags and preferences
	StrategyStandard Strategy = iota

	// StrategyEvasion launches the binary directly with flags only, reducing automation fingerprints
	StrategyEvasion
)

func (s Strategy) String() string {
	switch s {
	case StrategyStandard:
		return "standard"
	case StrategyEvasion:
		return "evasion"
	default:
		return "unknown"
	}
}

// Launch flags applied to every session.
var baselineArgs = []string{
	"--disable-extensions",
	"--disable-notifications",
	"--ignore-certificate-errors",
	"--log-level=3",
	"--allow-running-insecure-content",
	"--no-default-browser-check",
	"--no-first-run",
	"--no-proxy-server",
}

// Conditional launch flags.
const (
	ArgStartMaximized     = "--start-maximized"
	ArgHeadless           = "--headless"
	ArgUserAgentPrefix    = "--user-agent="
	ArgDisableWebSecurity = "--disable-web-security"
	ArgNoSandbox          = "--no-sandbox"
	ArgHideAutomation     = "--disable-blink-features=AutomationControlled"
)

// Default switches removed from the standard strategy's command line.
var standardExcludeSwitches = []string{
	"enable-automation",
	"ignore-certificate-errors",
	"enable-logging",
}

// Preference keys set by the standard strategy.
const (
	PrefNotifications   = "profile.default_content_setting_values.notifications"
	PrefAcceptLanguages = "intl.accept_languages"
	PrefCredentials     = "credentials_enable_service"
)

// BaselineArgs returns a copy of the flags applied to every session.
func BaselineArgs() []string {
	return append([]string(nil), baselineArgs...)
}

// Preferences maps dotted browser preference keys to values.
type Preferences map[string]any

// ActionKind identifies a post-launch action.
type ActionKind int

const (
	// ActionResize resizes and repositions an explicit-size window
	ActionResize ActionKind = iota

	// ActionNavigate opens the initial URL
	ActionNavigate

	// ActionInjectCookies adds the configured cookies to the current page
	ActionInjectCookies

	// ActionPersistUserAgent stores the resolved user agent for later runs
	ActionPersistUserAgent
)

func (k ActionKind) String() string {
	switch k {
	case ActionResize:
		return "resize"
	case ActionNavigate:
		return "navigate"
	case ActionInjectCookies:
		return "inject_cookies"
	case ActionPersistUserAgent:
		return "persist_user_agent"
	default:
		return "unknown"
	}
}

// PostAction is one step run after the browser handle exists.
type PostAction struct {
	Kind ActionKind
}

// LaunchPlan is the validated, fully assembled configuration for one session.
type LaunchPlan struct {
	Strategy   Strategy
	BinaryPath string

	// Args are the command line flags passed to the browser
	Args []string

	// Preferences are only handed to the standard strategy
	Preferences Preferences

	// ExcludeSwitches are default switches dropped by the standard strategy
	ExcludeSwitches []string

	Headless bool
	Window   WindowSpec
	Position Position

	// UserAgent is the resolved identity, from Config or the persisted store
	UserAgent string

	WaitTimeout time.Duration
	InitialURL  string
	Cookies     []Cookie

	// PostActions run in order once the handle exists
	PostActions []PostAction
}

// HasAction reports whether the plan schedules kind.
func (p *LaunchPlan) HasAction(kind ActionKind) bool {
	for _, action := range p.PostActions {
		if action.Kind == kind {
			return true
		}
	}
	return false
}
