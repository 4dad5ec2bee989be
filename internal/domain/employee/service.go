package employee

import "context"

// EmployeeService serves the employee list built from both resources.
type EmployeeService interface {
	// ListEmployees fetches one page of each resource and joins them
	ListEmployees(ctx context.Context, req ListEmployeesRequest) (ListEmployeesResponse, error)

	// CountBasicInfo returns the number of existing basic-info records
	CountBasicInfo(ctx context.Context) (int, error)
}
