// Package flow runs caller-supplied interaction sequences against a launched session.
//
// A flow is an ordered list of Steps. Each step names the error kinds it may
// tolerate; a tolerated failure is logged and the flow moves on, anything else
// aborts the run. Steps never know about specific pages.
package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/entrhq/browserinit/pkg/driver"
	"github.com/entrhq/browserinit/pkg/logging"
)

// ErrNoSession is returned when a flow is run without a usable session.
var ErrNoSession = errors.New("no browser session")

// StepFunc performs one interaction.
type StepFunc func(ctx context.Context, session *driver.Session) error

// Step is a named interaction with the errors it is allowed to swallow.
type Step struct {
	Name     string
	Run      StepFunc
	Tolerate []error
}

func (s Step) tolerates(err error) bool {
	for _, kind := range s.Tolerate {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// Result reports what a run did.
type Result struct {
	Completed []string
	Skipped   []string
}

// Runner executes steps in order.
type Runner struct {
	logger *logging.Logger
}

// NewRunner creates a runner logging to logger (nil discards).
func NewRunner(logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{logger: logger.With("flow")}
}

// Run executes steps against session. It stops at the first untolerated
// error or when ctx is done, returning what completed so far.
func (r *Runner) Run(ctx context.Context, session *driver.Session, steps ...Step) (Result, error) {
	var result Result

	if session == nil || session.Handle == nil || session.Wait == nil {
		return result, ErrNoSession
	}

	for i, step := range steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}

		if err := ctx.Err(); err != nil {
			return result, err
		}
		if step.Run == nil {
			return result, fmt.Errorf("%s: no action", name)
		}

		r.logger.Debugf("Running %s", name)

		err := step.Run(ctx, session)
		switch {
		case err == nil:
			result.Completed = append(result.Completed, name)
		case step.tolerates(err):
			r.logger.Warnf("Skipping %s: %v", name, err)
			result.Skipped = append(result.Skipped, name)
		default:
			r.logger.Errorf("%s failed: %v", name, err)
			return result, fmt.Errorf("%s: %w", name, err)
		}
	}

	return result, nil
}
