package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/draft"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/lookup"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid token")

	// Wizard domain errors
	case errors.Is(err, wizard.ErrInvalidRoleType):
		BadRequest(w, "Invalid role type", nil)
	case errors.Is(err, wizard.ErrUnknownField):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, wizard.ErrStepOutOfRange):
		BadRequest(w, "Step index out of range", nil)

	// Draft errors
	case errors.Is(err, draft.ErrNotFound):
		NotFound(w, "Draft not found")
	case errors.Is(err, draft.ErrInvalidKey):
		BadRequest(w, "Invalid draft key", nil)

	// Upstream resource errors
	case errors.Is(err, employee.ErrBasicInfoWrite),
		errors.Is(err, employee.ErrDetailWrite),
		errors.Is(err, employee.ErrBasicInfoFetch),
		errors.Is(err, employee.ErrDetailFetch),
		errors.Is(err, lookup.ErrDepartmentsFetch),
		errors.Is(err, lookup.ErrLocationsFetch):
		BadGateway(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
