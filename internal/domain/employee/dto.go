package employee

import (
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/validator"
)

type BasicInfoPayload struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	DepartmentName string `json:"departmentName"`
	Role           string `json:"role"`
	EmployeeID     string `json:"employeeId"`
}

type DetailPayload struct {
	Photo          string `json:"photo"`
	EmploymentType string `json:"employmentType"`
	Location       string `json:"location"`
	LocationName   string `json:"locationName"`
	Notes          string `json:"notes,omitempty"`
	EmployeeID     string `json:"employeeId,omitempty"`
	Email          string `json:"email,omitempty"`
}

// Page is one page of a paginated resource collection.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type ListEmployeesRequest struct {
	Page  int
	Limit int
}

func (r *ListEmployeesRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Page < 1 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be at least 1"})
	}
	if r.Limit < 1 || r.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be between 1 and 100"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeesResponse struct {
	Employees  []View `json:"employees"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
}
