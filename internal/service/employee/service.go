package employee

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/employee"
	"golang.org/x/sync/errgroup"
)

type EmployeeServiceImpl struct {
	basicInfo employee.BasicInfoResource
	details   employee.DetailResource
}

func NewEmployeeService(basicInfo employee.BasicInfoResource, details employee.DetailResource) employee.EmployeeService {
	return &EmployeeServiceImpl{
		basicInfo: basicInfo,
		details:   details,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, req employee.ListEmployeesRequest) (employee.ListEmployeesResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	var (
		basics  employee.Page[employee.BasicInfo]
		details employee.Page[employee.Detail]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		basics, err = s.basicInfo.Fetch(gctx, req.Page, req.Limit)
		return err
	})
	g.Go(func() error {
		var err error
		details, err = s.details.Fetch(gctx, req.Page, req.Limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	rows := Join(basics.Data, details.Data)
	slog.Debug("Joined employee rows",
		"page", req.Page,
		"basic_info", len(basics.Data),
		"details", len(details.Data),
		"rows", len(rows),
	)

	// Pagination follows the details collection: every submission writes a
	// detail record, only admin submissions write basic info.
	return employee.ListEmployeesResponse{
		Employees:  rows,
		Total:      details.Total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: details.TotalPages,
	}, nil
}

// CountBasicInfo implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CountBasicInfo(ctx context.Context) (int, error) {
	page, err := s.basicInfo.Fetch(ctx, 0, 0)
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}
