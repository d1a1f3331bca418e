package budget

import (
	"fmt"
	"strings"
)

// User-facing alert texts.
const (
	MsgInvalidCost    = "Please enter a valid cost."
	MsgBudgetExceeded = "Warning: You have exceeded your budget!"
)

// Notifier shows a blocking message to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a plain func to Notifier.
type NotifierFunc func(message string)

// Notify calls f(message).
func (f NotifierFunc) Notify(message string) { f(message) }

// WarnMode selects when the budget-exceeded warning fires.
type WarnMode int

const (
	// WarnEvery fires on every recomputation while remaining is negative.
	WarnEvery WarnMode = iota
	// WarnOnCrossing fires only when remaining goes from >= 0 to < 0.
	WarnOnCrossing
)

func (m WarnMode) String() string {
	if m == WarnOnCrossing {
		return "crossing"
	}
	return "every"
}

// ParseWarnMode accepts "every" or "crossing". Empty means WarnEvery.
func ParseWarnMode(s string) (WarnMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "every":
		return WarnEvery, nil
	case "crossing":
		return WarnOnCrossing, nil
	default:
		return WarnEvery, fmt.Errorf("unknown warn mode %q (want every or crossing)", s)
	}
}

// Watch notifies n with MsgBudgetExceeded when the remaining balance is
// negative. The current state is evaluated once immediately, then again
// after every store mutation. Call stop to detach.
func Watch(s *Store, n Notifier, mode WarnMode) (stop func()) {
	wasNegative := false

	check := func(st State) {
		negative := Remaining(st).IsNegative()
		fire := negative
		if mode == WarnOnCrossing {
			fire = negative && !wasNegative
		}
		wasNegative = negative
		if fire {
			s.logger.Debug("budget exceeded", "remaining", Remaining(st).StringFixed(2), "mode", mode)
			n.Notify(MsgBudgetExceeded)
		}
	}

	check(s.Snapshot())
	return s.Subscribe(check)
}
