package browser

import (
	"fmt"

	"github.com/entrhq/browserinit/pkg/logging"
	"github.com/go-rod/rod/lib/launcher"
)

// Installer fetches a Chromium build compatible with the launcher into the
// local browser cache and reports its executable path.
type Installer struct {
	logger *logging.Logger
}

// NewInstaller creates an installer logging to logger (nil discards).
func NewInstaller(logger *logging.Logger) *Installer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Installer{logger: logger}
}

// Install downloads the browser if it is not cached yet and returns the binary path.
func (i *Installer) Install() (string, error) {
	b := launcher.NewBrowser()

	i.logger.Infof("Resolving browser binary in %s", b.RootDir)

	path, err := b.Get()
	if err != nil {
		return "", fmt.Errorf("failed to download browser: %w", err)
	}

	i.logger.Debugf("Browser binary ready at %s", path)
	return path, nil
}
