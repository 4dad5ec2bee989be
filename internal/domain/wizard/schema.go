package wizard

import (
	"errors"

	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/validator"
)

const (
	FieldFullName       = "fullName"
	FieldEmail          = "email"
	FieldDepartment     = "department"
	FieldDepartmentName = "departmentName"
	FieldRole           = "role"
	FieldEmployeeID     = "employeeId"
	FieldPhoto          = "photo"
	FieldEmploymentType = "employmentType"
	FieldLocation       = "location"
	FieldLocationName   = "locationName"
	FieldNotes          = "notes"
)

var fieldMessages = map[string]string{
	FieldFullName:       "Full name is required",
	FieldEmail:          "Invalid email format",
	FieldDepartment:     "Department is required",
	FieldDepartmentName: "Department name is required",
	FieldRole:           "Invalid selection. Please choose valid role",
	FieldEmployeeID:     "Employee ID is missing",
	FieldEmploymentType: "Invalid selection. Please choose valid employment type",
	FieldLocation:       "Location is required",
	FieldLocationName:   "Location name is required",
}

// Validate checks the active variant. Failures are returned as
// validator.ValidationErrors keyed by field name.
func (v FormValues) Validate() error {
	var err error
	switch {
	case v.RoleType == RoleTypeAdmin && v.Admin != nil:
		err = validator.Struct(v.Admin)
	case v.RoleType == RoleTypeOps && v.Ops != nil:
		err = validator.Struct(v.Ops)
	default:
		return ErrInvalidRoleType
	}
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	return errs.WithMessages(fieldMessages)
}

// ValidateFields validates the variant but only reports failures on fields.
func (v FormValues) ValidateFields(fields ...string) error {
	err := v.Validate()
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	if scoped := errs.Only(fields...); len(scoped) > 0 {
		return scoped
	}
	return nil
}
