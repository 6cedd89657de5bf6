package browser

import (
	"path/filepath"
	"strings"

	"github.com/entrhq/browserinit/pkg/config"
	"github.com/entrhq/browserinit/pkg/driver"
)

// nestPreferences expands dotted keys into the nested layout of Chrome's
// Preferences file. String sequences are joined with commas, the form Chrome
// stores intl.accept_languages in.
func nestPreferences(prefs driver.Preferences) map[string]any {
	root := make(map[string]any)

	for key, value := range prefs {
		parts := strings.Split(key, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}

		if list, ok := value.([]string); ok {
			value = strings.Join(list, ",")
		}
		node[parts[len(parts)-1]] = value
	}

	return root
}

// writePreferences seeds profileDir/Default/Preferences so the browser starts with prefs applied.
func writePreferences(profileDir string, prefs driver.Preferences) error {
	if len(prefs) == 0 {
		return nil
	}
	return config.WriteJSON(filepath.Join(profileDir, "Default", "Preferences"), nestPreferences(prefs))
}
