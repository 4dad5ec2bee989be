package tui

import (
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/option"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/selectbox"
	lookupservice "github.com/cmlabs-hris/employee-wizard-go/internal/service/lookup"
)

// dropdownRows is how many options an open select shows at once.
const dropdownRows = 6

// rowPixels converts terminal rows into the units selectbox positions with.
const rowPixels = 20

type fieldKind int

const (
	kindText fieldKind = iota
	kindSelect
	kindPhoto
	kindReadOnly
)

var fieldLabels = map[string]string{
	wizard.FieldFullName:       "Full name",
	wizard.FieldEmail:          "Email",
	wizard.FieldDepartment:     "Department",
	wizard.FieldRole:           "Role",
	wizard.FieldEmployeeID:     "Employee ID",
	wizard.FieldPhoto:          "Photo",
	wizard.FieldEmploymentType: "Employment type",
	wizard.FieldLocation:       "Office location",
	wizard.FieldNotes:          "Notes",
}

type formField struct {
	name  string
	label string
	kind  fieldKind
	sel   *selectField
}

type selectField struct {
	name string
	// labelField mirrors the selected option's label into the form.
	labelField string
	box        *selectbox.Select
	window     *listWindow
	search     *lookupservice.Field
}

// listWindow keeps the highlighted option inside the visible rows.
type listWindow struct {
	offset int
	size   int
}

func (w *listWindow) ScrollIntoView(index int) {
	switch {
	case index < w.offset:
		w.offset = index
	case index >= w.offset+w.size:
		w.offset = index - w.size + 1
	}
}

func (w *listWindow) bounds(n int) (int, int) {
	if w.offset > n-w.size {
		w.offset = max(0, n-w.size)
	}
	return w.offset, min(n, w.offset+w.size)
}

// fieldViewport reports the rows above and below a field on screen.
type fieldViewport struct {
	m    *Model
	name string
}

func (v fieldViewport) SpaceAround() (int, int) {
	if v.m.height == 0 {
		return 0, selectbox.EstimatedDropdownHeight
	}
	row := v.m.rowOf(v.name)
	above := row * rowPixels
	below := (v.m.height - row - 1) * rowPixels
	return above, below
}

func roleOptions() []option.Option {
	opts := make([]option.Option, 0, len(employee.Roles))
	for _, r := range employee.Roles {
		opts = append(opts, option.Option{Value: string(r), Label: r.Label()})
	}
	return opts
}

func employmentTypeOptions() []option.Option {
	opts := make([]option.Option, 0, len(employee.EmploymentTypes))
	for _, t := range employee.EmploymentTypes {
		opts = append(opts, option.Option{Value: string(t), Label: t.Label()})
	}
	return opts
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
