package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	lookupservice "github.com/cmlabs-hris/employee-wizard-go/internal/service/lookup"
)

type navigateMsg struct{ path string }

type refreshMsg struct{}

type lookupMsg struct {
	field  string
	result lookupservice.Result
}

// Events carries messages produced outside the bubbletea loop, by timers and
// background searches, into it.
type Events struct {
	ch chan tea.Msg
}

func NewEvents() *Events {
	return &Events{ch: make(chan tea.Msg, 64)}
}

func (e *Events) send(msg tea.Msg) {
	select {
	case e.ch <- msg:
	default:
		slog.Debug("Dropping UI event", "type", fmt.Sprintf("%T", msg))
	}
}

func (e *Events) wait() tea.Cmd {
	return func() tea.Msg { return <-e.ch }
}

// GoTo implements wizard.Navigator.
func (e *Events) GoTo(path string) {
	e.send(navigateMsg{path: path})
}

// Refresh asks for a redraw, e.g. after a toast is dismissed.
func (e *Events) Refresh() {
	e.send(refreshMsg{})
}

func (e *Events) lookupDone(field string) func(lookupservice.Result) {
	return func(r lookupservice.Result) {
		e.send(lookupMsg{field: field, result: r})
	}
}
