// Package domain defines budget and item domain models and errors.
package domain

import (
	"github.com/allisson/budgets/internal/errors"
)

// Budget error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// so callers can branch on the category with errors.Is.
var (
	// ErrBudgetNotFound indicates the budget was not found.
	ErrBudgetNotFound = errors.Wrap(errors.ErrNotFound, "budget not found")

	// ErrItemNotFound indicates the item was not found.
	ErrItemNotFound = errors.Wrap(errors.ErrNotFound, "item not found")

	// ErrDuplicateBudgetName indicates a budget with the same name already exists.
	ErrDuplicateBudgetName = errors.Wrap(errors.ErrConflict, "budget name already exists")

	// ErrInvalidAmount indicates a decrypted amount is not a decimal number.
	ErrInvalidAmount = errors.Wrap(errors.ErrInvalidInput, "invalid amount")
)
