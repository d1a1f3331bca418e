package budget

import "github.com/shopspring/decimal"

// DefaultBudget is the budget used when none is configured.
var DefaultBudget = decimal.NewFromInt(1000)

// State is a point-in-time view of the store.
type State struct {
	Expenses []Expense
	Budget   decimal.Decimal
}

// AlertLevel classifies spending against the budget.
type AlertLevel int

const (
	WithinBudget AlertLevel = iota
	OverBudget
)

func (l AlertLevel) String() string {
	if l == OverBudget {
		return "over-budget"
	}
	return "within-budget"
}

// Summary holds the derived balance figures for one state.
type Summary struct {
	Budget    decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Level     AlertLevel
	Count     int
	UsedRatio float64 // spent / budget, 0 when budget <= 0
}

// TotalSpent sums the cost of every expense in s.
func TotalSpent(s State) decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Expenses {
		total = total.Add(e.cost)
	}
	return total
}

// Remaining returns the budget minus everything spent. It may be negative.
func Remaining(s State) decimal.Decimal {
	return s.Budget.Sub(TotalSpent(s))
}

// Alert reports OverBudget only when spending is strictly above the budget.
func Alert(s State) AlertLevel {
	if TotalSpent(s).GreaterThan(s.Budget) {
		return OverBudget
	}
	return WithinBudget
}

// Summarize computes every derived figure for s.
func Summarize(s State) Summary {
	spent := TotalSpent(s)
	sum := Summary{
		Budget:    s.Budget,
		Spent:     spent,
		Remaining: s.Budget.Sub(spent),
		Level:     WithinBudget,
		Count:     len(s.Expenses),
	}
	if spent.GreaterThan(s.Budget) {
		sum.Level = OverBudget
	}
	if s.Budget.IsPositive() {
		sum.UsedRatio = spent.Div(s.Budget).InexactFloat64()
	}
	return sum
}
