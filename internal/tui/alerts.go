package tui

import "github.com/charmbracelet/log"

// alertQueue is the budget.Notifier behind the TUI. Messages are shown one
// at a time as blocking dialogs, oldest first.
type alertQueue struct {
	messages []string
	logger   *log.Logger
}

// Notify implements budget.Notifier.
func (q *alertQueue) Notify(message string) {
	q.messages = append(q.messages, message)
	q.logger.Debug("alert raised", "message", message, "queued", len(q.messages))
}

func (q *alertQueue) pending() bool {
	return len(q.messages) > 0
}

func (q *alertQueue) current() (string, bool) {
	if len(q.messages) == 0 {
		return "", false
	}
	return q.messages[0], true
}

// queued returns how many alerts wait behind the current one.
func (q *alertQueue) queued() int {
	return max(len(q.messages)-1, 0)
}

func (q *alertQueue) dismiss() {
	if len(q.messages) > 0 {
		q.messages = q.messages[1:]
	}
}
