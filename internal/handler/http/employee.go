package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-wizard-go/internal/handler/http/response"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	req := employee.ListEmployeesRequest{
		Page:  queryInt(r, "page", defaultPage),
		Limit: queryInt(r, "limit", defaultLimit),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.ListEmployees(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Employees, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.Total,
		TotalPages: result.TotalPages,
	})
}

// queryInt reads an integer query parameter. Unparseable values are kept as
// zero so request validation reports them.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
