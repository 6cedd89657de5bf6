package driver

import (
	"fmt"

	"github.com/entrhq/browserinit/pkg/config"
)

type fakeInstaller struct {
	path  string
	err   error
	calls int
}

func (f *fakeInstaller) Install() (string, error) {
	f.calls++
	return f.path, f.err
}

type fakeLauncher struct {
	handle *fakeHandle
	err    error

	standardCalls int
	evasionCalls  int
	service       Service
	standard      StandardConfig
	evasionPath   string
	evasion       EvasionConfig
}

func (f *fakeLauncher) LaunchStandard(service Service, cfg StandardConfig) (Handle, error) {
	f.standardCalls++
	f.service = service
	f.standard = cfg
	if f.err != nil {
		return nil, f.err
	}
	return f.handle, nil
}

func (f *fakeLauncher) LaunchEvasion(binaryPath string, cfg EvasionConfig) (Handle, error) {
	f.evasionCalls++
	f.evasionPath = binaryPath
	f.evasion = cfg
	if f.err != nil {
		return nil, f.err
	}
	return f.handle, nil
}

func (f *fakeLauncher) calls() int {
	return f.standardCalls + f.evasionCalls
}

// fakeHandle records every call in order.
type fakeHandle struct {
	log      []string
	url      string
	elements map[string]*fakeElement
	failOn   map[string]error
	quit     bool

	// appearAfter makes a selector visible only after this many lookups
	appearAfter map[string]int
	lookups     map[string]int
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{
		url:         "about:blank",
		elements:    make(map[string]*fakeElement),
		failOn:      make(map[string]error),
		appearAfter: make(map[string]int),
		lookups:     make(map[string]int),
	}
}

func (h *fakeHandle) record(call string) error {
	h.log = append(h.log, call)
	for prefix, err := range h.failOn {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			return err
		}
	}
	return nil
}

func (h *fakeHandle) Get(url string) error {
	if err := h.record("get " + url); err != nil {
		return err
	}
	h.url = url
	return nil
}

func (h *fakeHandle) SetWindowSize(width, height int) error {
	return h.record(fmt.Sprintf("size %dx%d", width, height))
}

func (h *fakeHandle) SetWindowPosition(x, y int) error {
	return h.record(fmt.Sprintf("position %d,%d", x, y))
}

func (h *fakeHandle) AddCookie(cookie Cookie) error {
	return h.record(fmt.Sprintf("cookie %s=%s", cookie.Name, cookie.Value))
}

func (h *fakeHandle) CurrentURL() (string, error) {
	return h.url, nil
}

func (h *fakeHandle) FindElement(selector string) (Element, error) {
	h.lookups[selector]++
	if err, ok := h.failOn["find "+selector]; ok {
		return nil, err
	}
	if h.lookups[selector] <= h.appearAfter[selector] {
		return nil, ErrElementNotFound
	}
	el, ok := h.elements[selector]
	if !ok {
		return nil, ErrElementNotFound
	}
	return el, nil
}

func (h *fakeHandle) Quit() error {
	h.quit = true
	return h.record("quit")
}

type fakeElement struct {
	text    string
	clicked int
	keys    []string
}

func (e *fakeElement) Click() error {
	e.clicked++
	return nil
}

func (e *fakeElement) SendKeys(text string) error {
	e.keys = append(e.keys, text)
	return nil
}

func (e *fakeElement) Text() (string, error) {
	return e.text, nil
}

// memStore is an in-memory UserAgentStore.
type memStore struct {
	userAgent string
	loadErr   error
	saveErr   error
	saved     []string
}

func (m *memStore) Load() (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	if m.userAgent == "" {
		return "", fmt.Errorf("%w: memory", config.ErrMissingResource)
	}
	return m.userAgent, nil
}

func (m *memStore) Save(userAgent string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, userAgent)
	m.userAgent = userAgent
	return nil
}
