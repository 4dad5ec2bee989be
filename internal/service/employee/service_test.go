package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBasicInfo struct {
	page  employee.Page[employee.BasicInfo]
	err   error
	calls [][2]int
}

func (s *stubBasicInfo) Fetch(_ context.Context, page, limit int) (employee.Page[employee.BasicInfo], error) {
	s.calls = append(s.calls, [2]int{page, limit})
	return s.page, s.err
}

func (s *stubBasicInfo) Create(context.Context, employee.BasicInfoPayload) error { return nil }

type stubDetails struct {
	page employee.Page[employee.Detail]
	err  error
}

func (s *stubDetails) Fetch(context.Context, int, int) (employee.Page[employee.Detail], error) {
	return s.page, s.err
}

func (s *stubDetails) Create(context.Context, employee.DetailPayload) error { return nil }

func TestEmployeeService_ListEmployees(t *testing.T) {
	basics := &stubBasicInfo{page: employee.Page[employee.BasicInfo]{
		Data:  []employee.BasicInfo{{FullName: "Ada", EmployeeID: "E1", Email: "a@x"}},
		Total: 1,
	}}
	details := &stubDetails{page: employee.Page[employee.Detail]{
		Data: []employee.Detail{
			{EmployeeID: "E1", Email: "a@x", Photo: "p"},
			{Photo: "q"},
		},
		Total:      12,
		TotalPages: 2,
	}}
	svc := NewEmployeeService(basics, details)

	resp, err := svc.ListEmployees(context.Background(), employee.ListEmployeesRequest{Page: 2, Limit: 10})
	require.NoError(t, err)

	require.Len(t, resp.Employees, 2)
	assert.Equal(t, "Ada", resp.Employees[0].FullName)
	assert.Equal(t, employee.SourceDetailOnly, resp.Employees[1].Source)
	assert.Equal(t, 12, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, [][2]int{{2, 10}}, basics.calls)
}

func TestEmployeeService_ListEmployeesFetchError(t *testing.T) {
	fetchErr := errors.Join(employee.ErrDetailFetch, errors.New("connection refused"))
	svc := NewEmployeeService(&stubBasicInfo{}, &stubDetails{err: fetchErr})

	_, err := svc.ListEmployees(context.Background(), employee.ListEmployeesRequest{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, employee.ErrDetailFetch)
}

func TestEmployeeService_ListEmployeesValidation(t *testing.T) {
	svc := NewEmployeeService(&stubBasicInfo{}, &stubDetails{})

	_, err := svc.ListEmployees(context.Background(), employee.ListEmployeesRequest{Page: 0, Limit: 500})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "page")
	assert.Contains(t, verrs.ToMap(), "limit")
}

func TestEmployeeService_CountBasicInfo(t *testing.T) {
	basics := &stubBasicInfo{page: employee.Page[employee.BasicInfo]{Total: 4}}
	svc := NewEmployeeService(basics, &stubDetails{})

	count, err := svc.CountBasicInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Equal(t, [][2]int{{0, 0}}, basics.calls)
}
