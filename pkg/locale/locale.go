// Package locale maps human language names to the locale pair fed to the
// browser's accept-languages preference.
package locale

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/entrhq/browserinit/pkg/config"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTablePath is the locale table read when no path is given.
const DefaultTablePath = "./driver_info/langs.json"

// ErrNotFound is returned when a language name has no entry in the table.
var ErrNotFound = errors.New("language not found")

// Pair is a browser accept-language code duplicated into a two element sequence.
type Pair [2]string

// Predefined pairs usable without a locale table.
var (
	Spanish    = Pair{"es-ES", "es"}
	EnglishUSA = Pair{"en", "en_US"}
)

// Languages returns the pair as the sequence the accept-languages preference expects.
func (p Pair) Languages() []string {
	return []string{p[0], p[1]}
}

// String joins the pair with a comma.
func (p Pair) String() string {
	return p[0] + "," + p[1]
}

// Table maps a language name to its raw, possibly comma-separated, locale string.
type Table map[string]string

type tableDocument struct {
	Langs Table `json:"langs"`
}

// LoadTable reads the locale table stored under the "langs" key of the JSON document at path.
func LoadTable(path string) (Table, error) {
	var doc tableDocument
	if err := config.ReadJSON(path, &doc); err != nil {
		return nil, err
	}

	if doc.Langs == nil {
		return nil, fmt.Errorf("%w: %s: missing \"langs\" key", config.ErrMalformedConfig, path)
	}

	for name, raw := range doc.Langs {
		if primaryCode(raw) == "" {
			return nil, fmt.Errorf("%w: %s: no locale code for %q", config.ErrMalformedConfig, path, name)
		}
	}

	return doc.Langs, nil
}

// Resolver resolves language names against a locale table file.
type Resolver struct {
	path   string
	caser  cases.Caser
	mu     sync.Mutex
	cached map[string]Pair
}

// NewResolver creates a resolver reading the table at path.
// If path is empty, defaults to DefaultTablePath.
func NewResolver(path string) *Resolver {
	if path == "" {
		path = DefaultTablePath
	}
	return &Resolver{
		path:   path,
		caser:  cases.Title(language.Und),
		cached: make(map[string]Pair),
	}
}

// Path returns the table file backing this resolver.
func (r *Resolver) Path() string {
	return r.path
}

// Resolve returns the locale pair for name.
//
// The name is title-cased before lookup, so "spanish" and "SPANISH" both match
// a "Spanish" key. The first comma-separated code of the entry is trimmed and
// duplicated into the pair.
func (r *Resolver) Resolve(name string) (Pair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.normalize(name)

	if pair, ok := r.cached[key]; ok {
		return pair, nil
	}

	table, err := LoadTable(r.path)
	if err != nil {
		return Pair{}, err
	}

	raw, ok := table[key]
	if !ok {
		return Pair{}, fmt.Errorf("%w: %q in %s", ErrNotFound, key, r.path)
	}

	code := primaryCode(raw)
	pair := Pair{code, code}
	r.cached[key] = pair
	return pair, nil
}

// normalize must be called with r.mu held; a Caser is not safe for concurrent use.
func (r *Resolver) normalize(name string) string {
	return r.caser.String(strings.TrimSpace(name))
}

// primaryCode returns the first comma-separated token of raw, trimmed.
func primaryCode(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(first)
}
