package wizard

import (
	"encoding/json"
	"fmt"
	"strings"
)

type RoleType string

const (
	RoleTypeAdmin RoleType = "admin"
	RoleTypeOps   RoleType = "ops"
)

func (r RoleType) Valid() bool {
	return r == RoleTypeAdmin || r == RoleTypeOps
}

// ResolveRole maps a free-text role hint onto a role type. Only "ops"
// (any case, surrounding spaces ignored) selects the ops wizard.
func ResolveRole(hint string) RoleType {
	if strings.EqualFold(strings.TrimSpace(hint), string(RoleTypeOps)) {
		return RoleTypeOps
	}
	return RoleTypeAdmin
}

// DetailValues are collected from every role.
type DetailValues struct {
	Photo          string `json:"photo" validate:"required,dataimage,photosize"`
	EmploymentType string `json:"employmentType" validate:"required,oneof=full-time part-time contract intern"`
	Location       string `json:"location" validate:"notblank"`
	LocationName   string `json:"locationName" validate:"notblank"`
	Notes          string `json:"notes,omitempty"`
}

type AdminValues struct {
	FullName       string `json:"fullName" validate:"notblank,min=2"`
	Email          string `json:"email" validate:"required,email"`
	Department     string `json:"department" validate:"notblank"`
	DepartmentName string `json:"departmentName" validate:"notblank"`
	Role           string `json:"role" validate:"required,oneof=ops admin engineer hr"`
	EmployeeID     string `json:"employeeId" validate:"notblank"`
	DetailValues
}

type OpsValues struct {
	DetailValues
}

// FormValues holds exactly one active variant, selected by RoleType.
type FormValues struct {
	RoleType RoleType
	Admin    *AdminValues
	Ops      *OpsValues
}

// DefaultValues returns the empty form for role.
func DefaultValues(role RoleType) FormValues {
	if role == RoleTypeOps {
		return FormValues{RoleType: RoleTypeOps, Ops: &OpsValues{}}
	}
	return FormValues{RoleType: RoleTypeAdmin, Admin: &AdminValues{}}
}

// Detail returns the detail fields of the active variant.
func (v FormValues) Detail() DetailValues {
	switch {
	case v.RoleType == RoleTypeAdmin && v.Admin != nil:
		return v.Admin.DetailValues
	case v.RoleType == RoleTypeOps && v.Ops != nil:
		return v.Ops.DetailValues
	}
	return DetailValues{}
}

func (v FormValues) Clone() FormValues {
	out := FormValues{RoleType: v.RoleType}
	if v.Admin != nil {
		admin := *v.Admin
		out.Admin = &admin
	}
	if v.Ops != nil {
		ops := *v.Ops
		out.Ops = &ops
	}
	return out
}

// Get returns the named field of the active variant.
func (v FormValues) Get(field string) (string, error) {
	ptr, err := v.field(field)
	if err != nil {
		return "", err
	}
	return *ptr, nil
}

// Set assigns the named field of the active variant.
func (v FormValues) Set(field, value string) error {
	ptr, err := v.field(field)
	if err != nil {
		return err
	}
	*ptr = value
	return nil
}

func (v FormValues) field(name string) (*string, error) {
	var detail *DetailValues
	switch {
	case v.RoleType == RoleTypeAdmin && v.Admin != nil:
		switch name {
		case FieldFullName:
			return &v.Admin.FullName, nil
		case FieldEmail:
			return &v.Admin.Email, nil
		case FieldDepartment:
			return &v.Admin.Department, nil
		case FieldDepartmentName:
			return &v.Admin.DepartmentName, nil
		case FieldRole:
			return &v.Admin.Role, nil
		case FieldEmployeeID:
			return &v.Admin.EmployeeID, nil
		}
		detail = &v.Admin.DetailValues
	case v.RoleType == RoleTypeOps && v.Ops != nil:
		detail = &v.Ops.DetailValues
	default:
		return nil, ErrInvalidRoleType
	}

	switch name {
	case FieldPhoto:
		return &detail.Photo, nil
	case FieldEmploymentType:
		return &detail.EmploymentType, nil
	case FieldLocation:
		return &detail.Location, nil
	case FieldLocationName:
		return &detail.LocationName, nil
	case FieldNotes:
		return &detail.Notes, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
}

type adminJSON struct {
	RoleType RoleType `json:"roleType"`
	*AdminValues
}

type opsJSON struct {
	RoleType RoleType `json:"roleType"`
	*OpsValues
}

// MarshalJSON writes the active variant flat, tagged by roleType.
func (v FormValues) MarshalJSON() ([]byte, error) {
	switch {
	case v.RoleType == RoleTypeAdmin && v.Admin != nil:
		return json.Marshal(adminJSON{RoleType: v.RoleType, AdminValues: v.Admin})
	case v.RoleType == RoleTypeOps && v.Ops != nil:
		return json.Marshal(opsJSON{RoleType: v.RoleType, OpsValues: v.Ops})
	}
	return nil, ErrInvalidRoleType
}

// UnmarshalJSON decodes onto the current values so fields absent from data
// keep what the receiver already held. A different roleType starts from
// that role's defaults.
func (v *FormValues) UnmarshalJSON(data []byte) error {
	var tag struct {
		RoleType RoleType `json:"roleType"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}

	role := tag.RoleType
	if role == "" {
		role = v.RoleType
	}
	if role == "" {
		role = RoleTypeAdmin
	}
	if !role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRoleType, role)
	}

	if role != v.RoleType || (role == RoleTypeAdmin && v.Admin == nil) || (role == RoleTypeOps && v.Ops == nil) {
		*v = DefaultValues(role)
	}

	if role == RoleTypeAdmin {
		return json.Unmarshal(data, v.Admin)
	}
	return json.Unmarshal(data, v.Ops)
}
