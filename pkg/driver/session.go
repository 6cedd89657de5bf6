package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultPollInterval is how often a Wait re-checks its condition.
const DefaultPollInterval = 500 * time.Millisecond

// Session is a launched browser and its bounded-wait helper.
// The caller owns it and must Close it.
type Session struct {
	Handle    Handle
	Wait      *Wait
	UserAgent string
}

// Close quits the browser.
func (s *Session) Close() error {
	if s == nil || s.Handle == nil {
		return nil
	}
	return s.Handle.Quit()
}

// Condition is polled by Wait until it reports true or fails.
type Condition func(h Handle) (bool, error)

// Wait polls conditions against a handle for at most a fixed duration.
type Wait struct {
	handle   Handle
	timeout  time.Duration
	interval time.Duration
}

// NewWait creates a Wait bounded by timeout.
func NewWait(handle Handle, timeout time.Duration) *Wait {
	return &Wait{
		handle:   handle,
		timeout:  timeout,
		interval: DefaultPollInterval,
	}
}

// WithInterval returns a copy of w polling every interval.
func (w *Wait) WithInterval(interval time.Duration) *Wait {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	copied := *w
	copied.interval = interval
	return &copied
}

// Timeout returns the bound of this Wait.
func (w *Wait) Timeout() time.Duration {
	return w.timeout
}

// Until polls cond until it returns true, returns an error, the timeout
// elapses (ErrWaitTimeout) or ctx is done.
func (w *Wait) Until(ctx context.Context, cond Condition) error {
	deadline := time.NewTimer(w.timeout)
	defer deadline.Stop()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		ok, err := cond(w.handle)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("%w after %s", ErrWaitTimeout, w.timeout)
		case <-ticker.C:
		}
	}
}

// ForElement waits until selector matches an element on the current page.
// Only ErrElementNotFound is retried; any other lookup error ends the wait.
func (w *Wait) ForElement(ctx context.Context, selector string) (Element, error) {
	var found Element
	err := w.Until(ctx, func(h Handle) (bool, error) {
		el, err := h.FindElement(selector)
		if errors.Is(err, ErrElementNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		found = el
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("waiting for %q: %w", selector, err)
	}
	return found, nil
}

// URLHasPrefix is satisfied once the current URL starts with prefix.
func URLHasPrefix(prefix string) Condition {
	return func(h Handle) (bool, error) {
		current, err := h.CurrentURL()
		if err != nil {
			return false, err
		}
		return strings.HasPrefix(current, prefix), nil
	}
}

// URLLacksPrefix is satisfied once the current URL no longer starts with any of prefixes.
func URLLacksPrefix(prefixes ...string) Condition {
	return func(h Handle) (bool, error) {
		current, err := h.CurrentURL()
		if err != nil {
			return false, err
		}
		for _, prefix := range prefixes {
			if strings.HasPrefix(current, prefix) {
				return false, nil
			}
		}
		return true, nil
	}
}
