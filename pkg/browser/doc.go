// Package browser provides the concrete collaborators behind pkg/driver.
//
// Launcher implements both launch strategies: the standard strategy drives
// Chromium through a Playwright persistent context whose profile is seeded
// with the plan's preferences, and the evasion strategy starts the binary
// directly with go-rod and injects a fingerprint-masking script into every
// document. Installer downloads a matching Chromium build on demand.
package browser
