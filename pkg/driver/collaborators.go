package driver

// Installer obtains a local browser binary compatible with the automation engine.
type Installer interface {
	Install() (string, error)
}

// Service wraps the browser binary for the standard strategy.
type Service struct {
	BinaryPath string
}

// StandardConfig is everything the standard strategy receives besides the service.
type StandardConfig struct {
	Args            []string
	Preferences     Preferences
	ExcludeSwitches []string
	Headless        bool
}

// EvasionConfig is everything the evasion strategy receives besides the binary path.
// It has no preferences; the evasion strategy relies on flags alone.
type EvasionConfig struct {
	Args     []string
	Headless bool
}

// Launcher starts a browser process and returns a handle to it.
type Launcher interface {
	LaunchStandard(service Service, cfg StandardConfig) (Handle, error)
	LaunchEvasion(binaryPath string, cfg EvasionConfig) (Handle, error)
}

// Handle controls a running browser.
type Handle interface {
	Get(url string) error
	SetWindowSize(width, height int) error
	SetWindowPosition(x, y int) error
	AddCookie(cookie Cookie) error
	CurrentURL() (string, error)

	// FindElement returns ErrElementNotFound when nothing matches
	FindElement(selector string) (Element, error)

	Quit() error
}

// Element is a node located on the current page.
type Element interface {
	Click() error
	SendKeys(text string) error
	Text() (string, error)
}

// UserAgentStore persists the user agent between runs.
type UserAgentStore interface {
	Load() (string, error)
	Save(userAgent string) error
}
