package driver

import (
	"fmt"
	"sort"
	"time"

	"github.com/entrhq/browserinit/pkg/locale"
)

// NotificationLevel is the browser's default permission for site notifications.
type NotificationLevel int

const (
	NotificationsAsk   NotificationLevel = 0
	NotificationsAllow NotificationLevel = 1
	NotificationsBlock NotificationLevel = 2
)

// Valid reports whether the level is one the browser understands.
func (n NotificationLevel) Valid() bool {
	return n >= NotificationsAsk && n <= NotificationsBlock
}

// Default values for Options
const (
	DefaultWaitTime          = 20 * time.Second
	DefaultNotificationLevel = NotificationsBlock
)

// Config holds construction-time settings shared by every session a Builder creates.
type Config struct {
	// DriverPath is the browser binary to launch. Empty means install one.
	DriverPath string

	// UserAgent overrides the reported browser identity. Empty means reuse the persisted one.
	UserAgent string

	// Locale feeds the accept-languages preference (default: locale.EnglishUSA)
	Locale locale.Pair

	// ForceInstall installs a fresh binary even when DriverPath is set
	ForceInstall bool
}

// Cookie is injected into the session after the initial navigation.
// When Domain is empty the cookie is scoped to the current page URL.
type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string
}

// CookiesFromMap converts a flat mapping into cookies.
//
// A mapping with a "name" key is treated as a single cookie record
// ({"name": ..., "value": ..., "domain": ..., "path": ...}); any other mapping
// yields one cookie per entry, sorted by name.
func CookiesFromMap(m map[string]string) []Cookie {
	if len(m) == 0 {
		return nil
	}

	if name, ok := m["name"]; ok {
		return []Cookie{{
			Name:   name,
			Value:  m["value"],
			Domain: m["domain"],
			Path:   m["path"],
		}}
	}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	cookies := make([]Cookie, 0, len(names))
	for _, name := range names {
		cookies = append(cookies, Cookie{Name: name, Value: m[name]})
	}
	return cookies
}

// Options configures a single session. Start from DefaultOptions; several
// fields default to true.
type Options struct {
	// WindowSize is "max", "min" or "WIDTHxHEIGHT"
	WindowSize string

	// WindowPosition is applied only with an explicit window size
	WindowPosition Position

	// SandboxEnabled keeps the browser sandbox; false adds --no-sandbox
	SandboxEnabled bool

	// WaitTime bounds the returned Wait helper
	WaitTime time.Duration

	// NotificationLevel must be 0 (ask), 1 (allow) or 2 (block)
	NotificationLevel NotificationLevel

	// SavePasswords enables the browser credential service
	SavePasswords bool

	// Camouflage hides the AutomationControlled blink feature
	Camouflage bool

	// WebSecurity keeps the same-origin policy; false adds --disable-web-security
	WebSecurity bool

	// Undetectable selects the detection-evading launch strategy
	Undetectable bool

	// Cookies are injected after the initial navigation
	Cookies []Cookie

	// InitialURL is navigated to right after launch
	InitialURL string

	// PersistUserAgent writes the resolved user agent back for later runs
	PersistUserAgent bool
}

// DefaultOptions returns the options used when the caller changes nothing.
func DefaultOptions() Options {
	return Options{
		WindowSize:        WindowMax,
		SandboxEnabled:    true,
		WaitTime:          DefaultWaitTime,
		NotificationLevel: DefaultNotificationLevel,
		SavePasswords:     false,
		Camouflage:        true,
		WebSecurity:       false,
		Undetectable:      false,
		PersistUserAgent:  true,
	}
}

// validate checks everything that can be rejected without touching a resource.
func (o Options) validate() (WindowSpec, error) {
	if !o.NotificationLevel.Valid() {
		return WindowSpec{}, fmt.Errorf("%w: notification level must be 0, 1, or 2, got %d", ErrInvalidOption, o.NotificationLevel)
	}

	window, err := ParseWindowSpec(o.WindowSize)
	if err != nil {
		return WindowSpec{}, err
	}

	if o.WaitTime < 0 {
		return WindowSpec{}, fmt.Errorf("%w: wait time must not be negative, got %s", ErrInvalidOption, o.WaitTime)
	}

	return window, nil
}
