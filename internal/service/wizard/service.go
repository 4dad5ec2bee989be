package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/draft"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/lookup"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	draftservice "github.com/cmlabs-hris/employee-wizard-go/internal/service/draft"
)

type WizardServiceImpl struct {
	submitter   *Submitter
	drafts      draft.Store
	draftPrefix string
	employees   employee.EmployeeService
	lookups     lookup.LookupService
}

func NewWizardService(
	submitter *Submitter,
	drafts draft.Store,
	draftPrefix string,
	employees employee.EmployeeService,
	lookups lookup.LookupService,
) wizard.WizardService {
	return &WizardServiceImpl{
		submitter:   submitter,
		drafts:      drafts,
		draftPrefix: draftPrefix,
		employees:   employees,
		lookups:     lookups,
	}
}

// Steps implements wizard.WizardService.
func (s *WizardServiceImpl) Steps(role wizard.RoleType) []wizard.Step {
	return wizard.StepsFor(role)
}

// ValidateStep implements wizard.WizardService.
func (s *WizardServiceImpl) ValidateStep(_ context.Context, values wizard.FormValues, index int) error {
	steps := wizard.StepsFor(values.RoleType)
	if index < 0 || index >= len(steps) {
		return wizard.ErrStepOutOfRange
	}
	return values.ValidateFields(steps[index].Fields...)
}

// Submit implements wizard.WizardService.
func (s *WizardServiceImpl) Submit(ctx context.Context, values wizard.FormValues) (wizard.SubmitResult, error) {
	if err := values.Validate(); err != nil {
		return wizard.SubmitResult{}, err
	}

	result := wizard.SubmitResult{Progress: []string{}}
	err := s.submitter.Submit(ctx, values, func(message string) {
		result.Progress = append(result.Progress, message)
	})
	if err != nil {
		return result, err
	}

	if err := s.drafts.Delete(ctx, s.key(values.RoleType)); err != nil {
		slog.Debug("failed to clear draft after submit", "role_type", values.RoleType, "error", err)
	}
	result.Redirect = EmployeesPath
	return result, nil
}

// GetDraft implements wizard.WizardService.
func (s *WizardServiceImpl) GetDraft(ctx context.Context, role wizard.RoleType) (wizard.FormValues, error) {
	data, err := s.drafts.Get(ctx, s.key(role))
	if err != nil {
		return wizard.FormValues{}, err
	}

	values := wizard.DefaultValues(role)
	if err := json.Unmarshal(data, &values); err != nil {
		return wizard.FormValues{}, fmt.Errorf("decode draft: %w", err)
	}
	if values.RoleType != role {
		return wizard.FormValues{}, draft.ErrNotFound
	}
	return values, nil
}

// SaveDraft implements wizard.WizardService.
func (s *WizardServiceImpl) SaveDraft(ctx context.Context, values wizard.FormValues) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return s.drafts.Set(ctx, s.key(values.RoleType), data)
}

// DeleteDraft implements wizard.WizardService.
func (s *WizardServiceImpl) DeleteDraft(ctx context.Context, role wizard.RoleType) error {
	return s.drafts.Delete(ctx, s.key(role))
}

// EmployeeID implements wizard.WizardService.
func (s *WizardServiceImpl) EmployeeID(ctx context.Context, departmentID, role string) (wizard.EmployeeIDPreview, error) {
	count, err := s.employees.CountBasicInfo(ctx)
	if err != nil {
		return wizard.EmployeeIDPreview{}, err
	}

	departments, err := s.lookups.Departments(ctx, "")
	if err != nil {
		// The id falls back to the department id as its label.
		slog.Warn("Department lookup failed for employee id preview", "error", err)
	}

	return wizard.EmployeeIDPreview{
		EmployeeID:    wizard.EmployeeIDFor(departmentID, role, count, departments),
		ExistingCount: count,
	}, nil
}

func (s *WizardServiceImpl) key(role wizard.RoleType) string {
	return draftservice.Key(s.draftPrefix, string(role))
}
