package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/schoolstats/internal/prompt"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

func evaluate(a Assertion, r *Result) error {
	switch a.Type {
	case AssertOutputContains:
		if !strings.Contains(r.Transcript, a.Text) {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%q in output", a.Text), Actual: "not found"}
		}
	case AssertOutputLacks:
		if strings.Contains(r.Transcript, a.Text) {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("no %q in output", a.Text), Actual: "found"}
		}
	case AssertRepromptCount:
		got := strings.Count(r.Transcript, prompt.InvalidInput)
		if got != a.Count {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%d re-prompts", a.Count), Actual: fmt.Sprintf("%d", got)}
		}
	case AssertSchool:
		school := r.Outcome.School.School
		if (a.Name != "" && a.Name != school.Name) || (a.Code != "" && a.Code != school.Code) {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%q (%s)", a.Name, a.Code),
				Actual:   fmt.Sprintf("%q (%s)", school.Name, school.Code),
			}
		}
	case AssertMedianAbsent:
		if m := r.Outcome.School.MedianOver500; m != nil {
			return &AssertionError{Type: a.Type, Expected: "no median", Actual: fmt.Sprintf("median %d", *m)}
		}
	default:
		return &AssertionError{Type: a.Type, Expected: "known assertion type", Actual: a.Type}
	}
	return nil
}
