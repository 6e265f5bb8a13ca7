package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hausmate/hausmate/internal/calculator"
)

// ErrForbidden marks operations by actors who are not household members or
// not the resource's creator. Callers wrap it with context and match with
// errors.Is.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound marks resources whose ids do not resolve.
var ErrNotFound = errors.New("not found")

// InvalidInputError reports a request rejected before any write, naming the
// offending condition.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

// SumMismatchError re-exports the calculator's split-sum error so handlers
// only depend on the service package.
type SumMismatchError = calculator.SumMismatchError

// MissingSplitsError reports settle requests naming split ids that do not
// belong to the target expense. Nothing is settled when this is returned.
type MissingSplitsError struct {
	ExpenseID string
	SplitIDs  []string
}

func (e *MissingSplitsError) Error() string {
	return fmt.Sprintf("splits not found for expense %s: %s", e.ExpenseID, strings.Join(e.SplitIDs, ", "))
}

func invalidInput(format string, args ...interface{}) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}
