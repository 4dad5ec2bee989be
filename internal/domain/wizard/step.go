package wizard

type Step struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Fields []string `json:"fields"`
}

var detailFields = []string{FieldPhoto, FieldEmploymentType, FieldLocation, FieldLocationName, FieldNotes}

var adminSteps = []Step{
	{
		ID:     "admin-step-1",
		Label:  "Basic info",
		Fields: []string{FieldFullName, FieldEmail, FieldDepartment, FieldDepartmentName, FieldRole, FieldEmployeeID},
	},
	{
		ID:     "admin-step-2",
		Label:  "Employee details",
		Fields: detailFields,
	},
}

var opsSteps = []Step{
	{
		ID:     "ops-step-1",
		Label:  "Employee details",
		Fields: detailFields,
	},
}

// StepsFor returns the ordered steps of the wizard for role.
func StepsFor(role RoleType) []Step {
	if role == RoleTypeOps {
		return opsSteps
	}
	return adminSteps
}
