package wizard

import "context"

type SubmitResult struct {
	Progress []string `json:"progress"`
	Redirect string   `json:"redirect"`
}

type EmployeeIDPreview struct {
	EmployeeID    string `json:"employeeId"`
	ExistingCount int    `json:"existingCount"`
}

// WizardService is the request-scoped form of the wizard used by the HTTP API.
type WizardService interface {
	Steps(role RoleType) []Step

	// ValidateStep validates the fields of the step at index
	ValidateStep(ctx context.Context, values FormValues, index int) error

	// Submit validates values and writes them; on success the role's draft is deleted
	Submit(ctx context.Context, values FormValues) (SubmitResult, error)

	GetDraft(ctx context.Context, role RoleType) (FormValues, error)
	SaveDraft(ctx context.Context, values FormValues) error
	DeleteDraft(ctx context.Context, role RoleType) error

	// EmployeeID previews the id the next admin submission would get
	EmployeeID(ctx context.Context, departmentID, role string) (EmployeeIDPreview, error)
}
