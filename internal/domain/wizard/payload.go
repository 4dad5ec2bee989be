package wizard

import "github.com/cmlabs-hris/employee-wizard-go/internal/domain/employee"

// BasicInfoPayload returns the basic-info write for admin forms. ok is false
// for variants that have no basic-info phase.
func (v FormValues) BasicInfoPayload() (employee.BasicInfoPayload, bool) {
	if v.RoleType != RoleTypeAdmin || v.Admin == nil {
		return employee.BasicInfoPayload{}, false
	}
	return employee.BasicInfoPayload{
		FullName:       v.Admin.FullName,
		Email:          v.Admin.Email,
		Department:     v.Admin.Department,
		DepartmentName: v.Admin.DepartmentName,
		Role:           v.Admin.Role,
		EmployeeID:     v.Admin.EmployeeID,
	}, true
}

// DetailPayload carries the join key (employeeId, email) for admin forms so
// the detail record can be matched to its basic-info record.
func (v FormValues) DetailPayload() employee.DetailPayload {
	d := v.Detail()
	payload := employee.DetailPayload{
		Photo:          d.Photo,
		EmploymentType: d.EmploymentType,
		Location:       d.Location,
		LocationName:   d.LocationName,
		Notes:          d.Notes,
	}
	if v.RoleType == RoleTypeAdmin && v.Admin != nil {
		payload.EmployeeID = v.Admin.EmployeeID
		payload.Email = v.Admin.Email
	}
	return payload
}
