package budget

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

// Store owns the expense sequence and the budget. Views read it through
// Snapshot and mutate it only through Add, Remove and SetBudget.
//
// A Store is not safe for concurrent use; the UI event loop serializes
// every mutation.
type Store struct {
	expenses []Expense
	budget   decimal.Decimal

	nextSubID int
	subs      []subscriber

	logger *log.Logger
}

type subscriber struct {
	id int
	fn func(State)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for mutation tracing.
func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithExpenses seeds the store. Zero expenses are skipped.
func WithExpenses(es ...Expense) StoreOption {
	return func(s *Store) {
		for _, e := range es {
			if !e.IsZero() {
				s.expenses = append(s.expenses, e)
			}
		}
	}
}

// NewStore returns an empty store with the given budget.
func NewStore(budget decimal.Decimal, opts ...StoreOption) *Store {
	s := &Store{
		budget: budget,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends e to the end of the sequence. Duplicates are kept.
func (s *Store) Add(e Expense) error {
	if e.IsZero() {
		return ErrInvalidExpense
	}
	s.expenses = append(s.expenses, e)
	s.logger.Debug("expense added", "id", e.id, "name", e.name, "cost", e.cost.StringFixed(2))
	s.notify()
	return nil
}

// Remove deletes the first expense with the given id. It reports whether an
// expense was removed; an unknown id is a silent no-op.
func (s *Store) Remove(id string) bool {
	for i, e := range s.expenses {
		if e.id != id {
			continue
		}
		next := make([]Expense, 0, len(s.expenses)-1)
		next = append(next, s.expenses[:i]...)
		next = append(next, s.expenses[i+1:]...)
		s.expenses = next
		s.logger.Debug("expense removed", "id", id, "name", e.name)
		s.notify()
		return true
	}
	s.logger.Debug("remove ignored, unknown id", "id", id)
	return false
}

// SetBudget replaces the budget. No bounds are enforced.
func (s *Store) SetBudget(v decimal.Decimal) {
	if v.Equal(s.budget) {
		return
	}
	s.logger.Debug("budget changed", "from", s.budget.StringFixed(2), "to", v.StringFixed(2))
	s.budget = v
	s.notify()
}

// Budget returns the current budget.
func (s *Store) Budget() decimal.Decimal { return s.budget }

// Len returns the number of expenses.
func (s *Store) Len() int { return len(s.expenses) }

// Expenses returns a copy of the expense sequence in insertion order.
func (s *Store) Expenses() []Expense {
	out := make([]Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Snapshot returns the current state. The expense slice is a copy.
func (s *Store) Snapshot() State {
	return State{Expenses: s.Expenses(), Budget: s.budget}
}

// Subscribe registers fn to run after every mutation, in registration
// order. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify() {
	if len(s.subs) == 0 {
		return
	}
	state := s.Snapshot()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.fn(state)
	}
}
