// Package tui provides the interactive Bubble Tea screen for tally.
package tui

import (
	"errors"
	"io"

	"github.com/theirongolddev/tally/internal/budget"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
)

// focusArea is the panel that receives key presses.
type focusArea int

const (
	focusName focusArea = iota
	focusCost
	focusSave
	focusList
	focusAreas
)

// Options configures NewApp.
type Options struct {
	Store    *budget.Store // nil starts an empty store at the default budget
	WarnMode budget.WarnMode
	Logger   *log.Logger
	NewID    func() string // expense id generator, budget.NewID when nil
}

// App is the root Bubble Tea model.
type App struct {
	store  *budget.Store
	form   *budget.Form
	alerts *alertQueue
	logger *log.Logger
	stop   func()

	// Add-expense form
	nameIn textinput.Model
	costIn textinput.Model
	focus  focusArea
	hint   string // inline message under the form, e.g. a required field

	// Expense list
	cursor int

	// Budget editor (huh form)
	budgetForm *huh.Form
	budgetVal  *string

	// UI state
	width    int
	height   int
	showHelp bool
}

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 140
	minContentHeight = 5

	requiredHint = "Please fill out this field."
)

// NewApp creates the TUI model and starts watching the store for overspending.
// Call Close when the program exits.
func NewApp(opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	store := opts.Store
	if store == nil {
		store = budget.NewStore(budget.DefaultBudget, budget.WithLogger(logger))
	}

	alerts := &alertQueue{logger: logger}

	var formOpts []budget.FormOption
	if opts.NewID != nil {
		formOpts = append(formOpts, budget.WithIDFunc(opts.NewID))
	}

	a := App{
		store:     store,
		form:      budget.NewForm(store, alerts, formOpts...),
		alerts:    alerts,
		logger:    logger,
		nameIn:    newInput("Expense name", 64),
		costIn:    newInput("0.00", 16),
		budgetVal: new(string),
	}
	a.nameIn.Focus()
	a.stop = budget.Watch(store, alerts, opts.WarnMode)
	return a
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	ti.Width = 30
	return ti
}

// Close stops the overspending watch.
func (a App) Close() {
	if a.stop != nil {
		a.stop()
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.budgetForm != nil {
			a.budgetForm = a.budgetForm.WithWidth(a.budgetFormWidth())
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// An open alert swallows every key until it is dismissed.
		if a.alerts.pending() {
			switch key {
			case "enter", "esc", " ":
				a.alerts.dismiss()
			}
			return a, nil
		}

		if a.budgetForm != nil {
			if key == "esc" {
				a.budgetForm = nil
				return a, nil
			}
			return a.updateBudgetForm(msg)
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch a.focus {
		case focusName, focusCost:
			return a.updateInputs(msg)
		case focusSave:
			return a.updateSave(msg)
		default:
			return a.updateList(msg)
		}
	}

	// Forward unhandled messages (cursor blinks, etc.)
	if a.budgetForm != nil {
		return a.updateBudgetForm(msg)
	}
	return a.forwardToInput(msg)
}

func (a App) updateInputs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return a.moveFocus(1)
	case "shift+tab", "up":
		return a.moveFocus(-1)
	case "enter":
		return a.submit()
	case "esc":
		return a.setFocus(focusList)
	}

	a.hint = ""
	return a.forwardToInput(msg)
}

// forwardToInput feeds msg to the focused text input and mirrors the
// result into the form. Cost keystrokes that would leave something other
// than a number in progress are undone.
func (a App) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.focus {
	case focusName:
		a.nameIn, cmd = a.nameIn.Update(msg)
		a.form.SetName(a.nameIn.Value())
	case focusCost:
		a.costIn, cmd = a.costIn.Update(msg)
		if !a.form.SetCost(a.costIn.Value()) {
			a.costIn.SetValue(a.form.Cost())
		}
	}
	return a, cmd
}

func (a App) updateSave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "enter", " ":
		return a.submit()
	case "tab", "down":
		return a.moveFocus(1)
	case "shift+tab", "up":
		return a.moveFocus(-1)
	case "esc":
		return a.setFocus(focusName)
	default:
		return a.globalKey(key)
	}
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := a.store.Len()

	switch key := msg.String(); key {
	case "j", "down":
		if a.cursor < n-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = max(n-1, 0)
	case "d", "x", "delete", "enter":
		return a.deleteSelected()
	case "tab":
		return a.moveFocus(1)
	case "shift+tab":
		return a.moveFocus(-1)
	case "esc":
		return a.setFocus(focusName)
	default:
		return a.globalKey(key)
	}
	return a, nil
}

// globalKey handles shortcuts available outside the text inputs.
func (a App) globalKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
	case "b":
		return a.openBudgetForm()
	case "a", "n":
		return a.setFocus(focusName)
	}
	return a, nil
}

func (a App) moveFocus(delta int) (tea.Model, tea.Cmd) {
	next := (int(a.focus) + delta + int(focusAreas)) % int(focusAreas)
	return a.setFocus(focusArea(next))
}

func (a App) setFocus(f focusArea) (tea.Model, tea.Cmd) {
	a.focus = f
	a.nameIn.Blur()
	a.costIn.Blur()

	switch f {
	case focusName:
		return a, a.nameIn.Focus()
	case focusCost:
		return a, a.costIn.Focus()
	case focusList:
		a.clampCursor()
	}
	return a, nil
}

func (a App) submit() (tea.Model, tea.Cmd) {
	e, err := a.form.Submit()
	switch {
	case errors.Is(err, budget.ErrRequiredField):
		a.hint = requiredHint
		if a.form.Name() == "" {
			return a.setFocus(focusName)
		}
		return a.setFocus(focusCost)
	case err != nil:
		// Invalid costs are reported through the alert queue; the fields
		// stay as typed so they can be corrected.
		return a, nil
	}

	a.logger.Debug("expense submitted", "id", e.ID(), "name", e.Name(), "cost", e.Cost().String())
	a.hint = ""
	a.nameIn.SetValue("")
	a.costIn.SetValue("")
	a.cursor = a.store.Len() - 1
	return a.setFocus(focusName)
}

func (a App) deleteSelected() (tea.Model, tea.Cmd) {
	expenses := a.store.Expenses()
	if len(expenses) == 0 {
		return a, nil
	}
	a.clampCursor()

	e := expenses[a.cursor]
	a.store.Remove(e.ID())
	a.clampCursor()
	return a, nil
}

func (a *App) clampCursor() {
	n := a.store.Len()
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}
