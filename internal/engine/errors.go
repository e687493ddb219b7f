package engine

import (
	"errors"
	"fmt"
)

// PassBudgetError reports an Analyze run exceeding its pass budget.
//
// With the remove-one/add-one transfer the budget is unreachable: output
// sets only grow and each can change at most universe-width times, so
// total passes are bounded by nodes × width. The guard exists as an
// internal-error diagnostic for future transfer extensions that might
// break monotonicity.
type PassBudgetError struct {
	RunToken string
	Passes   int
	Budget   int
}

// Error implements the error interface.
func (e *PassBudgetError) Error() string {
	return fmt.Sprintf("run %s exceeded pass budget: %d passes > %d limit",
		e.RunToken, e.Passes, e.Budget)
}

// IsPassBudgetError reports whether err is a PassBudgetError.
// Uses errors.As to handle wrapped errors.
func IsPassBudgetError(err error) bool {
	var pe *PassBudgetError
	return errors.As(err, &pe)
}
