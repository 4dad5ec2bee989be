// Package selectbox implements a headless searchable dropdown. The host feeds
// pointer and keyboard events in and renders from State and Filtered; the
// widget never blocks and must be driven from a single goroutine.
package selectbox

import (
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/layer"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/option"
)

// EstimatedDropdownHeight is the space the dropdown is assumed to need when
// choosing whether it opens above or below the control.
const EstimatedDropdownHeight = 220

type Position string

const (
	PositionBottom Position = "bottom"
	PositionTop    Position = "top"
)

type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
	KeyTab       Key = "Tab"
)

// State is the ephemeral per-widget state. It returns to its zero form
// (with HighlightedIndex -1) whenever the dropdown closes.
type State struct {
	IsOpen           bool
	SearchTerm       string
	HighlightedIndex int
	IsKeyboardNav    bool
	Position         Position
}

// Viewport reports the free space around the control.
type Viewport interface {
	SpaceAround() (above, below int)
}

// Scroller brings the option at index into view.
type Scroller interface {
	ScrollIntoView(index int)
}

// Document delivers pointer-down events that happen outside the widget.
// The returned func detaches the listener.
type Document interface {
	OnPointerDownOutside(fn func()) (detach func())
}

// ChangeFunc receives committed selections; both arguments are nil on clear.
type ChangeFunc func(value *string, opt *option.Option)

type Config struct {
	Options    []option.Option
	Value      string
	ShowSearch bool
	AllowClear bool
	Disabled   bool
	Loading    bool

	OnChange      ChangeFunc
	OnInputChange func(text string)

	Viewport Viewport
	Scroller Scroller
	Document Document
	Layers   *layer.Service
}

type Select struct {
	cfg   Config
	state State

	detach func()
	band   *layer.Band
}

func New(cfg Config) *Select {
	return &Select{
		cfg:   cfg,
		state: closedState(),
	}
}

func closedState() State {
	return State{HighlightedIndex: -1, Position: PositionBottom}
}

// State returns a copy of the current state.
func (s *Select) State() State { return s.state }

// Value returns the selected value, empty when nothing is selected.
func (s *Select) Value() string { return s.cfg.Value }

// Options returns the full, unfiltered option list.
func (s *Select) Options() []option.Option { return s.cfg.Options }

// Filtered returns the options visible for the current search term.
func (s *Select) Filtered() []option.Option {
	return option.Filter(s.cfg.Options, s.state.SearchTerm, s.cfg.ShowSearch)
}

// DisplayLabel is the label of the selected option, empty when none.
func (s *Select) DisplayLabel() string {
	if opt, ok := option.Selected(s.cfg.Options, s.cfg.Value); ok && s.cfg.Value != "" {
		return opt.Label
	}
	return ""
}

// ZIndex is the content z-index of the open dropdown, 0 while closed.
func (s *Select) ZIndex() int {
	if s.band == nil {
		return 0
	}
	return s.band.Content()
}

// CanClear reports whether the clear action is available.
func (s *Select) CanClear() bool {
	return s.cfg.AllowClear && s.cfg.Value != "" && !s.cfg.Disabled && !s.cfg.Loading
}

func (s *Select) Loading() bool  { return s.cfg.Loading }
func (s *Select) Disabled() bool { return s.cfg.Disabled }

// ClickControl toggles the dropdown.
func (s *Select) ClickControl() {
	if s.cfg.Disabled {
		return
	}
	if s.state.IsOpen {
		s.close()
		return
	}
	s.open(true)
}

// FocusInput opens the dropdown when it is closed.
func (s *Select) FocusInput() {
	if s.cfg.Disabled {
		return
	}
	if !s.state.IsOpen {
		s.open(true)
	}
}

// ClickInput opens the dropdown when it is closed.
func (s *Select) ClickInput() {
	if s.cfg.Disabled {
		return
	}
	if !s.state.IsOpen {
		s.open(true)
	}
}

// KeyDown handles navigation keys. It reports whether the key was consumed.
func (s *Select) KeyDown(key Key) bool {
	if !s.state.IsOpen {
		if key == KeyArrowDown && !s.cfg.Disabled {
			s.open(true)
			return true
		}
		return false
	}

	switch key {
	case KeyArrowDown, KeyArrowUp:
		direction := option.Down
		if key == KeyArrowUp {
			direction = option.Up
		}
		s.state.IsKeyboardNav = true
		s.setHighlight(option.NextValidIndex(s.Filtered(), s.state.HighlightedIndex, direction))
		return true
	case KeyEnter:
		filtered := s.Filtered()
		if option.IsValidHighlight(filtered, s.state.HighlightedIndex) {
			s.commit(filtered[s.state.HighlightedIndex])
		}
		return true
	case KeyEscape:
		s.close()
		return true
	case KeyTab:
		s.close()
		return false
	}
	return false
}

// Type replaces the search text. It opens the dropdown when closed.
func (s *Select) Type(text string) {
	if !s.cfg.ShowSearch || s.cfg.Disabled {
		return
	}
	s.state.SearchTerm = text
	s.notifyInput(text)
	if !s.state.IsOpen {
		s.open(false)
		return
	}
	s.syncHighlight()
}

// MouseEnter highlights the hovered option unless keyboard navigation is active.
func (s *Select) MouseEnter(index int) {
	if !s.state.IsOpen || s.state.IsKeyboardNav {
		return
	}
	if option.IsDisabledAt(s.Filtered(), index) {
		return
	}
	s.setHighlight(index)
}

// MouseMove re-enables hover highlighting after keyboard navigation.
func (s *Select) MouseMove() {
	s.state.IsKeyboardNav = false
}

// ClickOption commits the option at index of the filtered list.
func (s *Select) ClickOption(index int) {
	if !s.state.IsOpen {
		return
	}
	filtered := s.Filtered()
	if option.IsDisabledAt(filtered, index) {
		return
	}
	s.commit(filtered[index])
}

// Clear removes the selection.
func (s *Select) Clear() {
	if !s.CanClear() {
		return
	}
	s.cfg.Value = ""
	s.fireChange(nil, nil)
	s.state.HighlightedIndex = -1
	s.state.SearchTerm = ""
	s.notifyInput("")
	if s.state.IsOpen {
		s.syncHighlight()
	}
}

// SetOptions replaces the option list, e.g. after an async search resolves.
func (s *Select) SetOptions(opts []option.Option) {
	s.cfg.Options = opts
	if s.state.IsOpen {
		s.syncHighlight()
	}
}

func (s *Select) SetValue(value string) { s.cfg.Value = value }

func (s *Select) SetLoading(loading bool) { s.cfg.Loading = loading }

// SetDisabled disables the control, closing it if open.
func (s *Select) SetDisabled(disabled bool) {
	s.cfg.Disabled = disabled
	if disabled && s.state.IsOpen {
		s.close()
	}
}

// SetOpen applies an open state decided outside the widget.
func (s *Select) SetOpen(open bool) {
	switch {
	case open && !s.state.IsOpen && !s.cfg.Disabled:
		s.open(true)
	case !open && s.state.IsOpen:
		s.close()
	}
}

// Dispose detaches listeners and releases the stacking band.
func (s *Select) Dispose() {
	s.teardown()
	s.state = closedState()
}

func (s *Select) open(seedSearch bool) {
	s.state.IsOpen = true
	if s.cfg.ShowSearch && seedSearch {
		s.state.SearchTerm = s.DisplayLabel()
	}
	s.state.Position = s.position()

	if s.cfg.Document != nil && s.detach == nil {
		s.detach = s.cfg.Document.OnPointerDownOutside(s.pointerDownOutside)
	}
	if s.cfg.Layers != nil && s.band == nil {
		s.band = s.cfg.Layers.Acquire()
	}
	s.syncHighlight()
}

func (s *Select) close() {
	s.teardown()
	s.state = closedState()
	s.notifyInput("")
}

func (s *Select) teardown() {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
	if s.band != nil {
		s.band.Release()
		s.band = nil
	}
}

func (s *Select) pointerDownOutside() {
	if s.state.IsOpen {
		s.close()
	}
}

func (s *Select) commit(opt option.Option) {
	s.cfg.Value = opt.Value
	value := opt.Value
	s.fireChange(&value, &opt)
	s.close()
}

func (s *Select) fireChange(value *string, opt *option.Option) {
	if s.cfg.OnChange != nil {
		s.cfg.OnChange(value, opt)
	}
}

func (s *Select) notifyInput(text string) {
	if s.cfg.ShowSearch && s.cfg.OnInputChange != nil {
		s.cfg.OnInputChange(text)
	}
}

func (s *Select) position() Position {
	if s.cfg.Viewport == nil {
		return PositionBottom
	}
	above, below := s.cfg.Viewport.SpaceAround()
	if below < EstimatedDropdownHeight && above > below {
		return PositionTop
	}
	return PositionBottom
}

// syncHighlight keeps the highlight on a valid option after the filtered list changes.
func (s *Select) syncHighlight() {
	filtered := s.Filtered()
	if option.IsValidHighlight(filtered, s.state.HighlightedIndex) {
		return
	}
	s.setHighlight(option.FirstEnabled(filtered))
}

func (s *Select) setHighlight(index int) {
	if index == s.state.HighlightedIndex {
		return
	}
	s.state.HighlightedIndex = index
	if s.state.IsOpen && index >= 0 && s.cfg.Scroller != nil {
		s.cfg.Scroller.ScrollIntoView(index)
	}
}
