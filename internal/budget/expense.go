// Package budget holds the expense store, the balance calculator and the
// form handler that turns raw user input into expenses.
package budget

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidCost is returned when a cost is not a number or is not positive.
	ErrInvalidCost = errors.New("budget: invalid cost")
	// ErrInvalidExpense is returned for expenses that were not built by NewExpense.
	ErrInvalidExpense = errors.New("budget: invalid expense")
	// ErrRequiredField is returned by Form.Submit when the name or cost is empty.
	ErrRequiredField = errors.New("budget: required field is empty")
)

// Expense is an immutable named cost. Build one with NewExpense.
type Expense struct {
	id   string
	name string
	cost decimal.Decimal
}

// NewExpense validates and returns an expense. The cost must be > 0.
func NewExpense(id, name string, cost decimal.Decimal) (Expense, error) {
	if id == "" {
		return Expense{}, ErrInvalidExpense
	}
	if !cost.IsPositive() {
		return Expense{}, ErrInvalidCost
	}
	return Expense{id: id, name: name, cost: cost}, nil
}

// NewID returns a fresh expense id.
func NewID() string {
	return uuid.NewString()
}

// ID returns the expense's unique id.
func (e Expense) ID() string { return e.id }

// Name returns the display name.
func (e Expense) Name() string { return e.name }

// Cost returns the expense cost.
func (e Expense) Cost() decimal.Decimal { return e.cost }

// IsZero reports whether e is the zero Expense.
func (e Expense) IsZero() bool { return e.id == "" }
