package budget

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	messages []string
}

func (r *recorder) Notify(message string) { r.messages = append(r.messages, message) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "exp-" + strconv.Itoa(n)
	}
}

func newTestForm(t *testing.T) (*Store, *Form, *recorder) {
	t.Helper()
	s := NewStore(DefaultBudget)
	rec := &recorder{}
	return s, NewForm(s, rec, WithIDFunc(sequentialIDs())), rec
}

func submit(t *testing.T, f *Form, name, cost string) Expense {
	t.Helper()
	f.SetName(name)
	require.True(t, f.SetCost(cost), "cost %q rejected by input filter", cost)
	e, err := f.Submit()
	require.NoError(t, err)
	return e
}

func remaining(s *Store) string {
	return Remaining(s.Snapshot()).StringFixed(2)
}

func TestNewExpense_RejectsNonPositiveCost(t *testing.T) {
	for _, c := range []string{"0", "-1", "-0.01"} {
		_, err := NewExpense("x", "Item", decimal.RequireFromString(c))
		require.ErrorIs(t, err, ErrInvalidCost, "cost %s", c)
	}

	_, err := NewExpense("", "Item", decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrInvalidExpense)

	e, err := NewExpense("x", "Item", decimal.RequireFromString("0.01"))
	require.NoError(t, err)
	require.Equal(t, "x", e.ID())
	require.Equal(t, "Item", e.Name())
	require.Equal(t, "0.01", e.Cost().String())
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestStore_AddAppendsInOrder(t *testing.T) {
	s := NewStore(DefaultBudget)
	a, _ := NewExpense("a", "A", decimal.NewFromInt(1))
	b, _ := NewExpense("b", "B", decimal.NewFromInt(2))

	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))
	require.NoError(t, s.Add(a)) // no dedup

	got := s.Expenses()
	require.Len(t, got, 3)
	require.Equal(t, []string{"a", "b", "a"}, []string{got[0].ID(), got[1].ID(), got[2].ID()})
}

func TestStore_AddRejectsZeroExpense(t *testing.T) {
	s := NewStore(DefaultBudget)
	require.ErrorIs(t, s.Add(Expense{}), ErrInvalidExpense)
	require.Equal(t, 0, s.Len())
}

func TestStore_RemoveUnknownIsNoop(t *testing.T) {
	s := NewStore(DefaultBudget)
	calls := 0
	s.Subscribe(func(State) { calls++ })

	require.False(t, s.Remove("missing"))
	require.Equal(t, 0, calls)
}

func TestStore_RemoveTwiceIsIdempotent(t *testing.T) {
	s, f, _ := newTestForm(t)
	e := submit(t, f, "Groceries", "50")

	require.True(t, s.Remove(e.ID()))
	require.False(t, s.Remove(e.ID()))
	require.Equal(t, 0, s.Len())
	require.Equal(t, "1000.00", remaining(s))
}

func TestStore_ExpensesReturnsCopy(t *testing.T) {
	s, f, _ := newTestForm(t)
	submit(t, f, "Lunch", "20")

	got := s.Expenses()
	got[0] = Expense{}
	require.False(t, s.Expenses()[0].IsZero())
}

func TestStore_SetBudget(t *testing.T) {
	s := NewStore(DefaultBudget)
	var states []State
	s.Subscribe(func(st State) { states = append(states, st) })

	s.SetBudget(decimal.NewFromInt(-5)) // no bounds checking
	require.Equal(t, "-5", s.Budget().String())
	require.Len(t, states, 1)

	s.SetBudget(decimal.NewFromInt(-5))
	require.Len(t, states, 1, "unchanged budget must not notify")
}

func TestStore_SubscribeOrderAndUnsubscribe(t *testing.T) {
	s := NewStore(DefaultBudget)
	var order []string
	s.Subscribe(func(State) { order = append(order, "first") })
	stop := s.Subscribe(func(State) { order = append(order, "second") })

	e, _ := NewExpense("a", "A", decimal.NewFromInt(1))
	require.NoError(t, s.Add(e))
	require.Equal(t, []string{"first", "second"}, order)

	stop()
	s.Remove("a")
	require.Equal(t, []string{"first", "second", "first"}, order)
}

func TestStore_SubscribersSeePostMutationState(t *testing.T) {
	s := NewStore(DefaultBudget)
	var seen string
	s.Subscribe(func(st State) { seen = Remaining(st).StringFixed(2) })

	e, _ := NewExpense("a", "A", decimal.RequireFromString("12.5"))
	require.NoError(t, s.Add(e))
	require.Equal(t, "987.50", seen)
}

func TestCalculator(t *testing.T) {
	tests := []struct {
		name      string
		budget    string
		costs     []string
		spent     string
		remaining string
		level     AlertLevel
	}{
		{"empty", "1000", nil, "0.00", "1000.00", WithinBudget},
		{"under", "1000", []string{"20", "10"}, "30.00", "970.00", WithinBudget},
		{"exactly at budget", "1000", []string{"400", "600"}, "1000.00", "0.00", WithinBudget},
		{"over", "1000", []string{"600", "500"}, "1100.00", "-100.00", OverBudget},
		{"fractions", "1", []string{"0.1", "0.2", "0.3"}, "0.60", "0.40", WithinBudget},
		{"zero budget", "0", []string{"0.01"}, "0.01", "-0.01", OverBudget},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := State{Budget: decimal.RequireFromString(tc.budget)}
			for i, c := range tc.costs {
				e, err := NewExpense(strconv.Itoa(i), "e", decimal.RequireFromString(c))
				require.NoError(t, err)
				st.Expenses = append(st.Expenses, e)
			}

			require.Equal(t, tc.spent, TotalSpent(st).StringFixed(2))
			require.Equal(t, tc.remaining, Remaining(st).StringFixed(2))
			require.Equal(t, tc.level, Alert(st))

			sum := Summarize(st)
			require.Equal(t, tc.remaining, sum.Remaining.StringFixed(2))
			require.Equal(t, tc.level, sum.Level)
			require.Equal(t, len(tc.costs), sum.Count)
		})
	}
}

func TestSummarize_UsedRatio(t *testing.T) {
	e, _ := NewExpense("a", "A", decimal.NewFromInt(250))
	sum := Summarize(State{Budget: DefaultBudget, Expenses: []Expense{e}})
	require.InDelta(t, 0.25, sum.UsedRatio, 1e-9)

	sum = Summarize(State{Budget: decimal.Zero, Expenses: []Expense{e}})
	require.Zero(t, sum.UsedRatio)
}

func TestRemaining_OrderIndependent(t *testing.T) {
	costs := []string{"0.1", "0.2", "0.3", "1999.99", "0.07", "12.345"}
	forward := NewStore(DefaultBudget)
	backward := NewStore(DefaultBudget)

	total := decimal.Zero
	for i := range costs {
		f, _ := NewExpense(strconv.Itoa(i), "f", decimal.RequireFromString(costs[i]))
		b, _ := NewExpense(strconv.Itoa(i), "b", decimal.RequireFromString(costs[len(costs)-1-i]))
		require.NoError(t, forward.Add(f))
		require.NoError(t, backward.Add(b))

		total = total.Add(f.Cost())
		require.True(t, Remaining(forward.Snapshot()).Equal(DefaultBudget.Sub(total)), "step %d", i)
	}

	require.True(t, Remaining(forward.Snapshot()).Equal(Remaining(backward.Snapshot())))
}

func TestRemove_RestoresPreviousRemaining(t *testing.T) {
	s, f, _ := newTestForm(t)
	submit(t, f, "Rent", "700")
	before := remaining(s)

	e := submit(t, f, "Car", "450.25")
	require.NotEqual(t, before, remaining(s))

	s.Remove(e.ID())
	require.Equal(t, before, remaining(s))
}

func TestAlertLevel_String(t *testing.T) {
	require.Equal(t, "within-budget", WithinBudget.String())
	require.Equal(t, "over-budget", OverBudget.String())
}
