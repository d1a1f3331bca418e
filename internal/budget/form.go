package budget

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// costPattern is the shape a cost field may take while typing: digits,
// at most one decimal point, more digits.
var costPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// Form turns raw name and cost text into expenses added to a Store.
type Form struct {
	store    *Store
	notifier Notifier
	newID    func() string

	name string
	cost string
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithIDFunc replaces the id generator (NewID by default).
func WithIDFunc(fn func() string) FormOption {
	return func(f *Form) {
		if fn != nil {
			f.newID = fn
		}
	}
}

// NewForm returns an empty form bound to store. n receives validation alerts.
func NewForm(store *Store, n Notifier, opts ...FormOption) *Form {
	f := &Form{
		store:    store,
		notifier: n,
		newID:    NewID,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the current name text.
func (f *Form) Name() string { return f.name }

// Cost returns the current cost text.
func (f *Form) Cost() string { return f.cost }

// SetName replaces the name text as typed.
func (f *Form) SetName(s string) { f.name = s }

// SetCost replaces the cost text if it still looks like a number being
// typed. Anything else is ignored and SetCost reports false.
func (f *Form) SetCost(s string) bool {
	if !ValidCostInput(s) {
		return false
	}
	f.cost = s
	return true
}

// ValidCostInput reports whether s is an acceptable in-progress cost.
func ValidCostInput(s string) bool {
	return costPattern.MatchString(s)
}

// Reset clears both fields.
func (f *Form) Reset() {
	f.name = ""
	f.cost = ""
}

// Submit validates the fields and, on success, adds a new expense to the
// store and clears the form. An invalid cost raises MsgInvalidCost through
// the notifier and leaves both the store and the fields untouched.
func (f *Form) Submit() (Expense, error) {
	if f.name == "" || f.cost == "" {
		return Expense{}, ErrRequiredField
	}

	cost, err := ParseCost(f.cost)
	if err != nil {
		f.store.logger.Debug("expense rejected", "name", f.name, "cost", f.cost)
		if f.notifier != nil {
			f.notifier.Notify(MsgInvalidCost)
		}
		return Expense{}, err
	}

	e, err := NewExpense(f.newID(), f.name, cost)
	if err != nil {
		return Expense{}, err
	}
	if err := f.store.Add(e); err != nil {
		return Expense{}, err
	}

	f.Reset()
	return e, nil
}

// ParseCost parses s as a decimal and requires it to be positive.
func ParseCost(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, ErrInvalidCost
	}
	return d, nil
}

// ParseAmount parses a budget amount. Surrounding space and a leading "$"
// are ignored. Zero and negative amounts are allowed.
func ParseAmount(s string) (decimal.Decimal, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "$")
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("budget: invalid amount %q", s)
	}
	return d, nil
}
