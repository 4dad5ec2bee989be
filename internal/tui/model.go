// Package tui hosts the employee wizard in a terminal. Searchable selects,
// the step controller and toasts are driven from bubbletea's event loop.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/lookup"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/layer"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/notify"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/option"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/selectbox"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/validator"
	lookupservice "github.com/cmlabs-hris/employee-wizard-go/internal/service/lookup"
	wizardservice "github.com/cmlabs-hris/employee-wizard-go/internal/service/wizard"
	"github.com/jonboulle/clockwork"
)

type Deps struct {
	Controller *wizardservice.Controller
	Employees  employee.EmployeeService
	Lookups    lookup.LookupService
	Center     *notify.Center
	Overlay    *notify.Overlay
	Events     *Events

	Clock       clockwork.Clock
	SearchDelay time.Duration
	PageSize    int
}

type screen int

const (
	screenForm screen = iota
	screenEmployees
)

type submitDoneMsg struct{ err error }

type countMsg struct {
	count int
	err   error
}

type employeesMsg struct {
	page employee.ListEmployeesResponse
	err  error
}

type Model struct {
	deps Deps
	ctrl *wizardservice.Controller

	screen        screen
	width, height int

	fields    []*formField
	focus     int
	selects   map[string]*selectField
	errors    map[string]string
	photoPath string

	departments []option.Option

	submitting bool
	spinner    spinner.Model

	list        employee.ListEmployeesResponse
	listPage    int
	listErr     error
	listLoading bool

	layers   *layer.Service
	document *selectbox.Listeners
}

func New(deps Deps) *Model {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.SearchDelay == 0 {
		deps.SearchDelay = lookupservice.DefaultSearchDelay
	}
	if deps.PageSize == 0 {
		deps.PageSize = 10
	}
	if deps.Overlay == nil {
		deps.Overlay = notify.NewOverlay()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = highlightStyle

	m := &Model{
		deps:     deps,
		ctrl:     deps.Controller,
		selects:  make(map[string]*selectField),
		errors:   make(map[string]string),
		spinner:  s,
		listPage: 1,
		layers:   layer.NewService(layer.DefaultBase, layer.DefaultStep),
		document: selectbox.NewListeners(),
	}

	m.ctrl.Mount(context.Background())

	used := make(map[string]bool)
	for _, step := range m.ctrl.Steps() {
		for _, f := range step.Fields {
			used[f] = true
		}
	}
	if used[wizard.FieldRole] {
		m.addSelect(wizard.FieldRole, "", roleOptions(), nil)
	}
	if used[wizard.FieldEmploymentType] {
		m.addSelect(wizard.FieldEmploymentType, "", employmentTypeOptions(), nil)
	}
	if used[wizard.FieldDepartment] && deps.Lookups != nil {
		m.addSelect(wizard.FieldDepartment, wizard.FieldDepartmentName, nil, deps.Lookups.Departments)
	}
	if used[wizard.FieldLocation] && deps.Lookups != nil {
		m.addSelect(wizard.FieldLocation, wizard.FieldLocationName, nil, deps.Lookups.Locations)
	}

	m.buildFields()
	return m
}

func (m *Model) addSelect(name, labelField string, opts []option.Option, search lookupservice.SearchFunc) {
	sf := &selectField{
		name:       name,
		labelField: labelField,
		window:     &listWindow{size: dropdownRows},
	}
	if search != nil {
		sf.search = lookupservice.NewField(search, m.deps.Clock, m.deps.SearchDelay, m.deps.Events.lookupDone(name))
	}
	sf.box = selectbox.New(selectbox.Config{
		Options:    opts,
		Value:      m.ctrl.Form().Get(name),
		ShowSearch: true,
		AllowClear: true,
		Loading:    search != nil,
		OnChange: func(value *string, opt *option.Option) {
			m.selectChanged(sf, value, opt)
		},
		OnInputChange: func(text string) {
			if sf.search != nil {
				sf.search.Query(text)
			}
		},
		Viewport: fieldViewport{m: m, name: name},
		Scroller: sf.window,
		Document: m.document,
		Layers:   m.layers,
	})
	m.selects[name] = sf
}

func (m *Model) Init() tea.Cmd {
	for _, sf := range m.selects {
		if sf.search != nil {
			sf.search.Load("")
		}
	}

	cmds := []tea.Cmd{m.deps.Events.wait()}
	if m.ctrl.Role() == wizard.RoleTypeAdmin && m.deps.Employees != nil {
		cmds = append(cmds, m.countCmd())
	}
	return tea.Batch(cmds...)
}

// Close stops background searches and autosave.
func (m *Model) Close() {
	for _, sf := range m.selects {
		if sf.search != nil {
			sf.search.Close()
		}
		sf.box.Dispose()
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case lookupMsg:
		m.applyLookup(msg)
		return m, m.deps.Events.wait()

	case refreshMsg:
		return m, m.deps.Events.wait()

	case navigateMsg:
		var cmd tea.Cmd
		if msg.path == wizardservice.EmployeesPath {
			cmd = m.showEmployees()
		}
		return m, tea.Batch(m.deps.Events.wait(), cmd)

	case countMsg:
		if msg.err != nil {
			slog.Warn("Failed to count existing employees", "error", msg.err)
			return m, nil
		}
		m.ctrl.SetExistingCount(msg.count)
		return m, nil

	case submitDoneMsg:
		m.submitting = false
		var errs validator.ValidationErrors
		switch {
		case msg.err == nil:
			m.errors = make(map[string]string)
			m.photoPath = ""
			m.syncSelects()
			m.buildFields()
			m.focus = 0
			if m.ctrl.Role() == wizard.RoleTypeAdmin && m.deps.Employees != nil {
				return m, m.countCmd()
			}
		case errors.As(msg.err, &errs):
			m.errors = errs.ToMap()
		}
		return m, nil

	case employeesMsg:
		m.listLoading = false
		m.list, m.listErr = msg.page, msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.ctrl.Flush(context.Background())
		return m, tea.Quit
	}
	if m.submitting {
		return m, nil
	}
	if m.screen == screenEmployees {
		return m.handleListKey(msg)
	}

	switch msg.String() {
	case "tab":
		m.moveFocus(1)
		return m, nil
	case "shift+tab":
		m.moveFocus(-1)
		return m, nil
	case "ctrl+n":
		m.next()
		return m, nil
	case "ctrl+b":
		m.previous()
		return m, nil
	case "ctrl+s":
		return m, m.submit()
	case "ctrl+r":
		m.ctrl.ClearDraftAndReset(context.Background())
		m.errors = make(map[string]string)
		m.photoPath = ""
		m.syncSelects()
		m.buildFields()
		m.focus = 0
		return m, nil
	case "ctrl+l":
		return m, m.showEmployees()
	}

	field := m.focused()
	if field == nil {
		return m, nil
	}
	switch field.kind {
	case kindSelect:
		m.handleSelectKey(field.sel, msg)
	case kindText:
		m.handleTextKey(field, msg)
	case kindPhoto:
		m.handlePhotoKey(msg)
	}
	return m, nil
}

func (m *Model) handleSelectKey(sf *selectField, msg tea.KeyMsg) {
	box := sf.box
	switch msg.Type {
	case tea.KeyUp:
		box.KeyDown(selectbox.KeyArrowUp)
	case tea.KeyDown:
		box.KeyDown(selectbox.KeyArrowDown)
	case tea.KeyEnter:
		if !box.State().IsOpen {
			box.ClickControl()
			return
		}
		box.KeyDown(selectbox.KeyEnter)
	case tea.KeyEsc:
		box.KeyDown(selectbox.KeyEscape)
	case tea.KeyDelete:
		box.Clear()
	case tea.KeyBackspace:
		if term := box.State().SearchTerm; term != "" {
			box.Type(dropLastRune(term))
		}
	case tea.KeySpace:
		box.Type(box.State().SearchTerm + " ")
	case tea.KeyRunes:
		box.Type(box.State().SearchTerm + string(msg.Runes))
	}
}

func (m *Model) handleTextKey(field *formField, msg tea.KeyMsg) {
	value := m.ctrl.Form().Get(field.name)
	switch msg.Type {
	case tea.KeyBackspace:
		value = dropLastRune(value)
	case tea.KeySpace:
		value += " "
	case tea.KeyRunes:
		value += string(msg.Runes)
	default:
		return
	}
	m.update(field.name, value)
}

func (m *Model) handlePhotoKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		m.photoPath = dropLastRune(m.photoPath)
	case tea.KeySpace:
		m.photoPath += " "
	case tea.KeyRunes:
		m.photoPath += string(msg.Runes)
	case tea.KeyEnter:
		m.loadPhoto()
	case tea.KeyDelete:
		m.photoPath = ""
		m.update(wizard.FieldPhoto, "")
	}
}

func (m *Model) loadPhoto() {
	if m.photoPath == "" {
		return
	}
	uri, err := LoadPhoto(m.photoPath)
	if err != nil {
		slog.Debug("Failed to load photo", "path", m.photoPath, "error", err)
		m.errors[wizard.FieldPhoto] = "Could not read an image from that file"
		return
	}
	m.update(wizard.FieldPhoto, uri)
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.ctrl.Flush(context.Background())
		return m, tea.Quit
	case "n", "esc":
		m.screen = screenForm
	case "r":
		return m, m.loadEmployees()
	case "right", "l":
		if m.listPage < m.list.TotalPages {
			m.listPage++
			return m, m.loadEmployees()
		}
	case "left", "h":
		if m.listPage > 1 {
			m.listPage--
			return m, m.loadEmployees()
		}
	}
	return m, nil
}

func (m *Model) update(field, value string) {
	if err := m.ctrl.Update(field, value); err != nil {
		slog.Debug("Ignoring update", "field", field, "error", err)
		return
	}
	delete(m.errors, field)
}

func (m *Model) selectChanged(sf *selectField, value *string, opt *option.Option) {
	v, label := "", ""
	if value != nil {
		v = *value
	}
	if opt != nil {
		label = opt.Label
	}
	if sf.labelField != "" {
		m.update(sf.labelField, label)
	}
	m.update(sf.name, v)
}

func (m *Model) applyLookup(msg lookupMsg) {
	sf, ok := m.selects[msg.field]
	if !ok {
		return
	}
	sf.box.SetLoading(false)
	sf.box.SetOptions(msg.result.Options)
	if msg.field == wizard.FieldDepartment && msg.result.Err == nil {
		m.rememberDepartments(msg.result.Options)
	}
}

// rememberDepartments keeps every department seen so far, so a filtered
// search never loses the label of the selected one.
func (m *Model) rememberDepartments(opts []option.Option) {
	for _, opt := range opts {
		if _, ok := option.Selected(m.departments, opt.Value); !ok {
			m.departments = append(m.departments, opt)
		}
	}
	m.ctrl.SetDepartments(append([]option.Option(nil), m.departments...))
}

func (m *Model) focused() *formField {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return m.fields[m.focus]
}

// moveFocus acts like clicking the next field: open dropdowns close first.
func (m *Model) moveFocus(delta int) {
	if f := m.focused(); f != nil && f.kind == kindSelect {
		f.sel.box.KeyDown(selectbox.KeyTab)
	}
	m.document.PointerDown()
	if f := m.focused(); f != nil && f.kind == kindPhoto {
		m.loadPhoto()
	}
	if n := len(m.fields); n > 0 {
		m.focus = (m.focus + delta + n) % n
	}
}

func (m *Model) next() {
	m.document.PointerDown()
	err := m.ctrl.Next()
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		m.errors = errs.ToMap()
		m.focusFirstError()
		return
	}
	m.errors = make(map[string]string)
	m.buildFields()
	m.focus = 0
}

func (m *Model) previous() {
	m.document.PointerDown()
	m.ctrl.Previous()
	m.buildFields()
	m.focus = 0
}

func (m *Model) submit() tea.Cmd {
	if !m.ctrl.IsLastStep() {
		m.next()
		return nil
	}
	m.document.PointerDown()

	if err := m.ctrl.Form().Values().Validate(); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			m.errors = errs.ToMap()
			m.focusFirstError()
		}
		return nil
	}

	m.submitting = true
	ctrl := m.ctrl
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return submitDoneMsg{err: ctrl.Submit(context.Background())}
	})
}

func (m *Model) focusFirstError() {
	for i, f := range m.fields {
		if _, ok := m.errors[f.name]; ok {
			m.focus = i
			return
		}
	}
}

func (m *Model) showEmployees() tea.Cmd {
	m.screen = screenEmployees
	m.listPage = 1
	return m.loadEmployees()
}

func (m *Model) loadEmployees() tea.Cmd {
	if m.deps.Employees == nil {
		return nil
	}
	m.listLoading = true
	employees, page, limit := m.deps.Employees, m.listPage, m.deps.PageSize
	return func() tea.Msg {
		resp, err := employees.ListEmployees(context.Background(), employee.ListEmployeesRequest{Page: page, Limit: limit})
		return employeesMsg{page: resp, err: err}
	}
}

func (m *Model) countCmd() tea.Cmd {
	employees := m.deps.Employees
	return func() tea.Msg {
		n, err := employees.CountBasicInfo(context.Background())
		return countMsg{count: n, err: err}
	}
}

// buildFields lists the inputs of the current step. Label mirrors such as
// departmentName are filled by their select and have no input of their own.
func (m *Model) buildFields() {
	step := m.ctrl.CurrentStep()
	m.fields = m.fields[:0]
	for _, name := range step.Fields {
		if name == wizard.FieldDepartmentName || name == wizard.FieldLocationName {
			continue
		}
		f := &formField{name: name, label: fieldLabels[name], kind: kindText}
		switch name {
		case wizard.FieldEmployeeID:
			f.kind = kindReadOnly
		case wizard.FieldPhoto:
			f.kind = kindPhoto
		default:
			if sf, ok := m.selects[name]; ok {
				f.kind = kindSelect
				f.sel = sf
			}
		}
		m.fields = append(m.fields, f)
	}
	if m.focus >= len(m.fields) {
		m.focus = 0
	}
}

func (m *Model) syncSelects() {
	form := m.ctrl.Form()
	for _, sf := range m.selects {
		sf.box.SetValue(form.Get(sf.name))
	}
}

// rowOf estimates the screen row of a field for dropdown placement.
func (m *Model) rowOf(name string) int {
	const headerRows = 4
	for i, f := range m.fields {
		if f.name == name {
			return headerRows + i*2
		}
	}
	return headerRows
}

func (m *Model) View() string {
	if m.screen == screenEmployees {
		return lipgloss.JoinVertical(lipgloss.Left, m.viewEmployees(), m.viewToasts())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewForm(), m.viewToasts())
}
