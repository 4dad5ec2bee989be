package employee

import "github.com/cmlabs-hris/employee-wizard-go/internal/pkg/utils"

// NotAvailable replaces blank fields in joined rows.
const NotAvailable = "N/A"

// BasicInfo is owned by the basic-info resource.
type BasicInfo struct {
	ID             utils.FlexibleID `json:"id"`
	FullName       string           `json:"fullName"`
	Email          string           `json:"email"`
	Department     string           `json:"department"`
	DepartmentName string           `json:"departmentName"`
	Role           string           `json:"role"`
	EmployeeID     string           `json:"employeeId"`
}

// Detail is owned by the detail resource.
type Detail struct {
	ID             utils.FlexibleID `json:"id"`
	Photo          string           `json:"photo"`
	EmploymentType string           `json:"employmentType"`
	Location       string           `json:"location"`
	LocationName   string           `json:"locationName"`
	Notes          string           `json:"notes,omitempty"`
	EmployeeID     string           `json:"employeeId,omitempty"`
	Email          string           `json:"email,omitempty"`
}

type Source string

const (
	SourceJoined     Source = "joined"
	SourceDetailOnly Source = "detail_only"
)

// View is a read-only row combining both resources. It is rebuilt on every
// fetch and never persisted.
type View struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	Role           string `json:"role"`
	EmployeeID     string `json:"employeeId"`
	Photo          string `json:"photo"`
	EmploymentType string `json:"employmentType"`
	Location       string `json:"location"`
	Notes          string `json:"notes"`
	Source         Source `json:"source"`
}

type Role string

const (
	RoleOps      Role = "ops"
	RoleAdmin    Role = "admin"
	RoleEngineer Role = "engineer"
	RoleHR       Role = "hr"
)

var Roles = []Role{RoleOps, RoleAdmin, RoleEngineer, RoleHR}

var roleLabels = map[Role]string{
	RoleOps:      "Ops",
	RoleAdmin:    "Admin",
	RoleEngineer: "Engineer",
	RoleHR:       "HR",
}

func (r Role) Label() string { return roleLabels[r] }

type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "full-time"
	EmploymentTypePartTime EmploymentType = "part-time"
	EmploymentTypeContract EmploymentType = "contract"
	EmploymentTypeIntern   EmploymentType = "intern"
)

var EmploymentTypes = []EmploymentType{
	EmploymentTypeFullTime,
	EmploymentTypePartTime,
	EmploymentTypeContract,
	EmploymentTypeIntern,
}

var employmentTypeLabels = map[EmploymentType]string{
	EmploymentTypeFullTime: "Full-time",
	EmploymentTypePartTime: "Part-time",
	EmploymentTypeContract: "Contract",
	EmploymentTypeIntern:   "Intern",
}

func (e EmploymentType) Label() string { return employmentTypeLabels[e] }
