package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	"github.com/jonboulle/clockwork"
)

// Progress messages shown while a submission runs.
const (
	MessageSubmittingForm      = "Submitting form..."
	MessageSubmittingBasicInfo = "Submitting basic info..."
	MessageSubmittingDetails   = "Submitting details..."
	MessageSuccess             = "Employee data submitted!"
	MessageToastSuccess        = "Employee added successfully"
)

type ProgressFunc func(message string)

// Submitter writes a validated form to the basic-info and detail resources.
type Submitter struct {
	basicInfo employee.BasicInfoResource
	details   employee.DetailResource
	clock     clockwork.Clock
	delay     time.Duration
}

// NewSubmitter waits delay before each write. Zero disables the wait.
func NewSubmitter(basicInfo employee.BasicInfoResource, details employee.DetailResource, clock clockwork.Clock, delay time.Duration) *Submitter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Submitter{
		basicInfo: basicInfo,
		details:   details,
		clock:     clock,
		delay:     delay,
	}
}

// Submit writes basic info (admin only) and then details. The detail write
// never starts when the basic-info write fails.
func (s *Submitter) Submit(ctx context.Context, values wizard.FormValues, progress ProgressFunc) error {
	if progress == nil {
		progress = func(string) {}
	}
	progress(MessageSubmittingForm)

	if basic, ok := values.BasicInfoPayload(); ok {
		if err := s.wait(ctx); err != nil {
			return err
		}
		progress(MessageSubmittingBasicInfo)
		if err := s.basicInfo.Create(ctx, basic); err != nil {
			slog.Error("Failed to submit basic info", "employee_id", basic.EmployeeID, "error", err)
			return wrapWrite(employee.ErrBasicInfoWrite, err)
		}
	}

	if err := s.wait(ctx); err != nil {
		return err
	}
	progress(MessageSubmittingDetails)
	detail := values.DetailPayload()
	if err := s.details.Create(ctx, detail); err != nil {
		slog.Error("Failed to submit details", "employee_id", detail.EmployeeID, "error", err)
		return wrapWrite(employee.ErrDetailWrite, err)
	}

	progress(MessageSuccess)
	slog.Info("Employee submitted", "role_type", values.RoleType, "employee_id", detail.EmployeeID)
	return nil
}

func (s *Submitter) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-s.clock.After(s.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func wrapWrite(kind, err error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
