package flow

import (
	"context"

	"github.com/entrhq/browserinit/pkg/driver"
)

// Navigate loads url.
func Navigate(url string) Step {
	return Step{
		Name: "navigate to " + url,
		Run: func(_ context.Context, session *driver.Session) error {
			return session.Handle.Get(url)
		},
	}
}

// Click waits for selector and clicks it.
func Click(selector string) Step {
	return Step{
		Name: "click " + selector,
		Run: func(ctx context.Context, session *driver.Session) error {
			el, err := session.Wait.ForElement(ctx, selector)
			if err != nil {
				return err
			}
			return el.Click()
		},
	}
}

// Fill waits for selector and types text into it.
func Fill(selector, text string) Step {
	return Step{
		Name: "fill " + selector,
		Run: func(ctx context.Context, session *driver.Session) error {
			el, err := session.Wait.ForElement(ctx, selector)
			if err != nil {
				return err
			}
			return el.SendKeys(text)
		},
	}
}

// WaitFor blocks until cond holds or the session wait times out.
func WaitFor(name string, cond driver.Condition) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context, session *driver.Session) error {
			return session.Wait.Until(ctx, cond)
		},
	}
}

// Optional lets step fail with a missing element or an expired wait without
// aborting the flow.
func Optional(step Step) Step {
	tolerate := make([]error, 0, len(step.Tolerate)+2)
	tolerate = append(tolerate, step.Tolerate...)
	tolerate = append(tolerate, driver.ErrElementNotFound, driver.ErrWaitTimeout)
	step.Tolerate = tolerate
	return step
}
