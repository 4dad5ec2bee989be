package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/notify"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/option"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/selectbox"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/validator"
)

const (
	cursor           = "█"
	wizardSubmitting = "Submitting..."
)

func (m *Model) viewForm() string {
	var b strings.Builder

	step := m.ctrl.CurrentStep()
	title := "Add employee"
	if m.ctrl.Role() == wizard.RoleTypeOps {
		title = "Add employee details"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(progressStyle.Render(fmt.Sprintf("Step %d of %d · %s", m.ctrl.StepIndex()+1, len(m.ctrl.Steps()), step.Label)))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		b.WriteString(m.viewField(f, i == m.focus))
		b.WriteString("\n")
	}

	if m.submitting {
		message := m.deps.Overlay.Message()
		if message == "" {
			message = wizardSubmitting
		}
		b.WriteString("\n")
		b.WriteString(overlayStyle.Render(m.spinner.View() + " " + message))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.formHelp()))
	return b.String()
}

func (m *Model) formHelp() string {
	keys := []string{"tab/shift+tab move"}
	if m.ctrl.StepIndex() > 0 {
		keys = append(keys, "ctrl+b back")
	}
	if m.ctrl.IsLastStep() {
		keys = append(keys, "ctrl+s submit")
	} else {
		keys = append(keys, "ctrl+n next")
	}
	keys = append(keys, "ctrl+r clear draft", "ctrl+l employees", "ctrl+c quit")
	return strings.Join(keys, " • ")
}

func (m *Model) viewField(f *formField, focused bool) string {
	label := labelStyle.Render(f.label)
	marker := "  "
	if focused {
		label = focusedLabelStyle.Render(f.label)
		marker = highlightStyle.Render("> ")
	}

	var value string
	var dropdown string
	form := m.ctrl.Form()

	switch f.kind {
	case kindText:
		value = valueStyle.Render(form.Get(f.name))
		if focused {
			value += cursor
		}
	case kindReadOnly:
		value = form.Get(f.name)
		if value == "" {
			value = placeholderStyle.Render("generated from department and role")
		} else {
			value = valueStyle.Render(value)
		}
	case kindPhoto:
		value = m.viewPhoto(focused)
	case kindSelect:
		value, dropdown = m.viewSelect(f.sel, focused)
	}

	line := marker + label + value
	if msg, ok := m.errors[f.name]; ok {
		line += "\n" + strings.Repeat(" ", 20) + errorStyle.Render(msg)
	}
	if dropdown == "" {
		return line
	}
	if f.sel.box.State().Position == selectbox.PositionTop {
		return dropdown + "\n" + line
	}
	return line + "\n" + dropdown
}

func (m *Model) viewPhoto(focused bool) string {
	photo := m.ctrl.Form().Get(wizard.FieldPhoto)
	var parts []string
	switch {
	case m.photoPath != "" || focused:
		path := m.photoPath
		if focused {
			path += cursor
		}
		parts = append(parts, valueStyle.Render(path))
	case photo == "":
		parts = append(parts, placeholderStyle.Render("path to an image, enter to attach"))
	}
	if photo != "" {
		parts = append(parts, successStyle.Render(fmt.Sprintf("image attached (%.1f KB)", float64(validator.DataURISize(photo))/1024)))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) viewSelect(sf *selectField, focused bool) (string, string) {
	box := sf.box
	state := box.State()

	var value string
	switch {
	case state.IsOpen:
		value = valueStyle.Render(state.SearchTerm) + cursor
	case box.DisplayLabel() != "":
		value = valueStyle.Render(box.DisplayLabel())
	case box.Value() != "" && sf.labelField != "":
		// The selected option may not be loaded yet; the form keeps its label.
		value = valueStyle.Render(m.ctrl.Form().Get(sf.labelField))
	default:
		value = placeholderStyle.Render("Select...")
	}
	if box.Loading() {
		value += " " + placeholderStyle.Render("loading...")
	}
	if focused && !state.IsOpen && box.CanClear() {
		value += " " + placeholderStyle.Render("(del to clear)")
	}
	if !state.IsOpen {
		return value, ""
	}
	return value, m.viewDropdown(sf)
}

func (m *Model) viewDropdown(sf *selectField) string {
	filtered := sf.box.Filtered()
	if len(filtered) == 0 {
		text := "No options"
		if sf.box.Loading() {
			text = "Loading..."
		}
		return dropdownStyle.Render(placeholderStyle.Render(text))
	}

	highlighted := sf.box.State().HighlightedIndex
	start, end := sf.window.bounds(len(filtered))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, renderOption(filtered[i], i == highlighted, filtered[i].Value == sf.box.Value()))
	}
	if end < len(filtered) {
		lines = append(lines, placeholderStyle.Render(fmt.Sprintf("… %d more", len(filtered)-end)))
	}
	return dropdownStyle.Render(strings.Join(lines, "\n"))
}

func renderOption(opt option.Option, highlighted, selected bool) string {
	text := opt.Label
	if selected {
		text += " ✓"
	}
	switch {
	case opt.Disabled:
		return disabledStyle.Render(text)
	case highlighted:
		return highlightStyle.Render("› " + text)
	default:
		return "  " + text
	}
}

func (m *Model) viewToasts() string {
	if m.deps.Center == nil {
		return ""
	}
	active := m.deps.Center.Active()
	if len(active) == 0 {
		return ""
	}
	lines := make([]string, 0, len(active))
	for _, n := range active {
		lines = append(lines, toastStyle(n.Type).Render(n.Message))
	}
	return "\n" + strings.Join(lines, "\n")
}

func toastStyle(t notify.Type) lipgloss.Style {
	switch t {
	case notify.TypeSuccess:
		return successStyle
	case notify.TypeError:
		return errorStyle
	case notify.TypeWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

func (m *Model) viewEmployees() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Employees"))
	b.WriteString("\n\n")

	switch {
	case m.listLoading:
		b.WriteString(placeholderStyle.Render("Loading..."))
	case m.listErr != nil:
		b.WriteString(errorStyle.Render("Failed to load employees: " + m.listErr.Error()))
	case len(m.list.Employees) == 0:
		b.WriteString(placeholderStyle.Render("No employees yet"))
	default:
		b.WriteString(employeeTable(m.list.Employees).Render())
		b.WriteString("\n")
		b.WriteString(progressStyle.Render(fmt.Sprintf("Page %d of %d · %d employees", m.list.Page, max(1, m.list.TotalPages), m.list.Total)))
	}

	b.WriteString(helpStyle.Render("n new employee • ←/→ page • r refresh • q quit"))
	return b.String()
}

func employeeTable(rows []employee.View) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Name", "Email", "Department", "Role", "Employee ID", "Type", "Location").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return highlightStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, r := range rows {
		t.Row(r.FullName, r.Email, r.Department, labelOr(employee.Role(r.Role).Label(), r.Role), r.EmployeeID,
			labelOr(employee.EmploymentType(r.EmploymentType).Label(), r.EmploymentType), r.Location)
	}
	return t
}

func labelOr(label, raw string) string {
	if label == "" {
		return raw
	}
	return label
}
