package driver

import "errors"

var (
	// ErrInvalidOption is returned for option values rejected before anything is launched.
	ErrInvalidOption = errors.New("invalid option")

	// ErrMissingUserAgent is returned when no user agent was given and none was persisted.
	ErrMissingUserAgent = errors.New("missing user agent")

	// ErrDriverInstall wraps failures of the Installer.
	ErrDriverInstall = errors.New("driver install failed")

	// ErrLaunch wraps failures of the Launcher. The original cause stays reachable with errors.Is/As.
	ErrLaunch = errors.New("browser launch failed")

	// ErrElementNotFound is returned by Handle.FindElement when nothing matches the selector.
	ErrElementNotFound = errors.New("element not found")

	// ErrWaitTimeout is returned when a Wait condition is not met in time.
	ErrWaitTimeout = errors.New("wait timed out")
)
