package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/entrhq/browserinit/pkg/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubElement struct {
	clicks int
	typed  []string
}

func (e *stubElement) Click() error {
	e.clicks++
	return nil
}

func (e *stubElement) SendKeys(text string) error {
	e.typed = append(e.typed, text)
	return nil
}

func (e *stubElement) Text() (string, error) {
	return "", nil
}

type stubHandle struct {
	url      string
	elements map[string]*stubElement
	visits   []string
}

func newStubHandle() *stubHandle {
	return &stubHandle{url: "about:blank", elements: make(map[string]*stubElement)}
}

func (h *stubHandle) Get(url string) error {
	h.visits = append(h.visits, url)
	h.url = url
	return nil
}

func (h *stubHandle) SetWindowSize(int, int) error     { return nil }
func (h *stubHandle) SetWindowPosition(int, int) error { return nil }
func (h *stubHandle) AddCookie(driver.Cookie) error    { return nil }
func (h *stubHandle) CurrentURL() (string, error)      { return h.url, nil }
func (h *stubHandle) Quit() error                      { return nil }

func (h *stubHandle) FindElement(selector string) (driver.Element, error) {
	el, ok := h.elements[selector]
	if !ok {
		return nil, driver.ErrElementNotFound
	}
	return el, nil
}

func newSession(h *stubHandle) *driver.Session {
	return &driver.Session{
		Handle: h,
		Wait:   driver.NewWait(h, 50*time.Millisecond).WithInterval(5 * time.Millisecond),
	}
}

func TestRunExecutesStepsInOrder(t *testing.T) {
	h := newStubHandle()
	user := &stubElement{}
	submit := &stubElement{}
	h.elements["#user"] = user
	h.elements["#submit"] = submit

	result, err := NewRunner(nil).Run(context.Background(), newSession(h),
		Navigate("https://example.com/login"),
		Fill("#user", "alice"),
		Click("#submit"),
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"navigate to https://example.com/login", "fill #user", "click #submit"}, result.Completed)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, []string{"https://example.com/login"}, h.visits)
	assert.Equal(t, []string{"alice"}, user.typed)
	assert.Equal(t, 1, submit.clicks)
}

func TestRunAbortsOnMissingElement(t *testing.T) {
	h := newStubHandle()
	after := &stubElement{}
	h.elements["#after"] = after

	result, err := NewRunner(nil).Run(context.Background(), newSession(h),
		Click("#missing"),
		Click("#after"),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, driver.ErrWaitTimeout)
	assert.Empty(t, result.Completed)
	assert.Equal(t, 0, after.clicks)
}

func TestOptionalStepIsSkipped(t *testing.T) {
	h := newStubHandle()
	after := &stubElement{}
	h.elements["#after"] = after

	result, err := NewRunner(nil).Run(context.Background(), newSession(h),
		Optional(Click("#cookie-banner")),
		Click("#after"),
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"click #cookie-banner"}, result.Skipped)
	assert.Equal(t, []string{"click #after"}, result.Completed)
	assert.Equal(t, 1, after.clicks)
}

func TestToleratedErrorKinds(t *testing.T) {
	errCaptcha := errors.New("captcha shown")
	errFatal := errors.New("account locked")

	steps := []Step{
		{
			Name:     "solve captcha",
			Run:      func(context.Context, *driver.Session) error { return errCaptcha },
			Tolerate: []error{errCaptcha},
		},
		{
			Name:     "check account",
			Run:      func(context.Context, *driver.Session) error { return errFatal },
			Tolerate: []error{errCaptcha},
		},
	}

	result, err := NewRunner(nil).Run(context.Background(), newSession(newStubHandle()), steps...)

	assert.ErrorIs(t, err, errFatal)
	assert.Contains(t, err.Error(), "check account")
	assert.Equal(t, []string{"solve captcha"}, result.Skipped)
}

func TestWaitForURL(t *testing.T) {
	h := newStubHandle()
	h.url = "https://example.com/home"

	_, err := NewRunner(nil).Run(context.Background(), newSession(h),
		WaitFor("leave login", driver.URLLacksPrefix("https://example.com/login")),
	)
	assert.NoError(t, err)
}

func TestRunWithoutSession(t *testing.T) {
	_, err := NewRunner(nil).Run(context.Background(), nil, Click("#a"))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewRunner(nil).Run(ctx, newSession(newStubHandle()), Navigate("https://example.com"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Completed)
}

func TestStepWithoutAction(t *testing.T) {
	_, err := NewRunner(nil).Run(context.Background(), newSession(newStubHandle()), Step{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1")
}
