package scenario

import (
	"fmt"
	"log"

	apperrors "github.com/louisbranch/crucible/internal/errors"
)

// AssertionMode selects how unmet expectations are reported.
type AssertionMode int

const (
	// AssertionStrict fails the run on the first unmet expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly records unmet expectations and keeps going.
	// Batch simulations use it so crit variance cannot abort a run.
	AssertionLogOnly
)

// Assertions reports expectation failures according to its mode. Every
// failure is recorded either way so callers can inspect the run.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger

	failures []string
}

// Failf records a failed expectation and returns it as an error
// regardless of mode.
func (a *Assertions) Failf(format string, args ...any) error {
	message := fmt.Sprintf(format, args...)
	a.failures = append(a.failures, message)
	return apperrors.New(apperrors.CodeScenarioAssertion, message)
}

// Assertf records a failed expectation. Strict mode returns it as an
// error; log-only mode logs it and lets the run continue.
func (a *Assertions) Assertf(format string, args ...any) error {
	if a.Mode == AssertionStrict {
		return a.Failf(format, args...)
	}
	message := fmt.Sprintf(format, args...)
	a.failures = append(a.failures, message)
	if a.Logger != nil {
		a.Logger.Printf("expectation not met: %s", message)
	}
	return nil
}

// Failures returns the expectations that did not hold, in order.
func (a *Assertions) Failures() []string {
	return a.failures
}
