package config

import (
	"fmt"
	"strings"
	"sync"
)

// DefaultUserAgentPath is where the last used user agent is kept between runs.
const DefaultUserAgentPath = "./driver_info/driver_data.json"

// UserAgentStore persists the last used user agent as a bare JSON string.
//
// The store assumes a single process writes to it at a time.
type UserAgentStore struct {
	path string
	mu   sync.Mutex
}

// NewUserAgentStore creates a store backed by path.
// If path is empty, defaults to DefaultUserAgentPath.
func NewUserAgentStore(path string) *UserAgentStore {
	if path == "" {
		path = DefaultUserAgentPath
	}
	return &UserAgentStore{path: path}
}

// Load returns the persisted user agent.
// A missing file yields ErrMissingResource; an unparseable or empty value yields ErrMalformedConfig.
func (s *UserAgentStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var userAgent string
	if err := ReadJSON(s.path, &userAgent); err != nil {
		return "", err
	}

	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return "", fmt.Errorf("%w: %s: empty user agent", ErrMalformedConfig, s.path)
	}

	return userAgent, nil
}

// Save writes userAgent to disk, replacing any previous value.
func (s *UserAgentStore) Save(userAgent string) error {
	if strings.TrimSpace(userAgent) == "" {
		return fmt.Errorf("refusing to persist empty user agent")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return WriteJSON(s.path, userAgent)
}

// Path returns the file path of the store.
func (s *UserAgentStore) Path() string {
	return s.path
}
