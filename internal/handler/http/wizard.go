package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	"github.com/cmlabs-hris/employee-wizard-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/employee-wizard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/notify"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/sse"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type WizardHandler interface {
	Steps(w http.ResponseWriter, r *http.Request)
	ValidateStep(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	GetDraft(w http.ResponseWriter, r *http.Request)
	SaveDraft(w http.ResponseWriter, r *http.Request)
	DeleteDraft(w http.ResponseWriter, r *http.Request)
	EmployeeID(w http.ResponseWriter, r *http.Request)
}

type wizardHandlerImpl struct {
	wizardService wizard.WizardService
	hub           *sse.Hub
	toastDuration time.Duration
}

// NewWizardHandler publishes submission toasts to the role's topic on hub
// when hub is not nil.
func NewWizardHandler(wizardService wizard.WizardService, hub *sse.Hub, toastDuration time.Duration) WizardHandler {
	return &wizardHandlerImpl{wizardService: wizardService, hub: hub, toastDuration: toastDuration}
}

type stepsResponse struct {
	RoleType wizard.RoleType `json:"roleType"`
	Steps    []wizard.Step   `json:"steps"`
}

// Steps implements WizardHandler
func (h *wizardHandlerImpl) Steps(w http.ResponseWriter, r *http.Request) {
	role := middleware.RoleFromContext(r.Context())
	response.Success(w, stepsResponse{
		RoleType: role,
		Steps:    h.wizardService.Steps(role),
	})
}

// ValidateStep implements WizardHandler
func (h *wizardHandlerImpl) ValidateStep(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		response.BadRequest(w, "Step index must be a number", nil)
		return
	}

	values, ok := decodeValues(w, r)
	if !ok {
		return
	}

	if err := h.wizardService.ValidateStep(r.Context(), values, index); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Step is valid", nil)
}

// Submit implements WizardHandler
func (h *wizardHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	values, ok := decodeValues(w, r)
	if !ok {
		return
	}

	role := middleware.RoleFromContext(r.Context())
	start := time.Now()
	result, err := h.wizardService.Submit(r.Context(), values)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			metrics.RecordSubmission(string(role), metrics.ResultInvalid, time.Since(start))
		} else {
			metrics.RecordSubmission(string(role), metrics.ResultWriteError, time.Since(start))
			message := err.Error()
			if message == "" {
				message = wizard.SubmitFailedMessage
			}
			h.toast(role, notify.TypeError, message)
		}
		response.HandleError(w, err)
		return
	}
	metrics.RecordSubmission(string(role), metrics.ResultSuccess, time.Since(start))
	h.toast(role, notify.TypeSuccess, "Employee added successfully")
	response.Created(w, "Employee added successfully", result)
}

func (h *wizardHandlerImpl) toast(role wizard.RoleType, kind notify.Type, message string) {
	if h.hub == nil {
		return
	}
	sse.TopicSink{Hub: h.hub, Topic: string(role)}.Notify(notify.Notification{
		Type:     kind,
		Message:  message,
		Duration: h.toastDuration,
	})
}

// GetDraft implements WizardHandler
func (h *wizardHandlerImpl) GetDraft(w http.ResponseWriter, r *http.Request) {
	values, err := h.wizardService.GetDraft(r.Context(), middleware.RoleFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, values)
}

// SaveDraft implements WizardHandler
func (h *wizardHandlerImpl) SaveDraft(w http.ResponseWriter, r *http.Request) {
	values, ok := decodeValues(w, r)
	if !ok {
		return
	}

	if err := h.wizardService.SaveDraft(r.Context(), values); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Draft saved", values)
}

// DeleteDraft implements WizardHandler
func (h *wizardHandlerImpl) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.wizardService.DeleteDraft(r.Context(), middleware.RoleFromContext(r.Context())); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Draft deleted", nil)
}

// EmployeeID implements WizardHandler
func (h *wizardHandlerImpl) EmployeeID(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	preview, err := h.wizardService.EmployeeID(r.Context(), query.Get("department"), query.Get("role"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, preview)
}

// decodeValues reads form values for the request's role from the body. A body
// naming another role is rejected.
func decodeValues(w http.ResponseWriter, r *http.Request) (wizard.FormValues, bool) {
	role := middleware.RoleFromContext(r.Context())
	values := wizard.DefaultValues(role)

	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		if errors.Is(err, wizard.ErrInvalidRoleType) {
			response.HandleError(w, err)
			return wizard.FormValues{}, false
		}
		slog.Debug("Failed to decode form values", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return wizard.FormValues{}, false
	}

	if values.RoleType != role {
		response.BadRequest(w, "Role type does not match the resolved role", map[string]string{
			"roleType": string(role),
		})
		return wizard.FormValues{}, false
	}
	return values, true
}
