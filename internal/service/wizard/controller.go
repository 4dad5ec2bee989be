package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/notify"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/option"
	draftservice "github.com/cmlabs-hris/employee-wizard-go/internal/service/draft"
)

// EmployeesPath is where a successful submission navigates to.
const EmployeesPath = "/employees"

const DefaultToastDuration = 5 * time.Second

type Navigator interface {
	GoTo(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) GoTo(path string) { f(path) }

type ControllerConfig struct {
	Form      *Form
	Persister *draftservice.Persister[wizard.FormValues]
	Submitter *Submitter
	Overlay   *notify.Overlay
	Sink      notify.Sink
	Navigator Navigator

	ToastDuration time.Duration
}

// Controller sequences the wizard steps and runs the submission.
type Controller struct {
	cfg   ControllerConfig
	steps []wizard.Step

	mu            sync.Mutex
	index         int
	submitting    bool
	departments   []option.Option
	existingCount int
}

func NewController(cfg ControllerConfig) *Controller {
	if cfg.ToastDuration == 0 {
		cfg.ToastDuration = DefaultToastDuration
	}
	if cfg.Overlay == nil {
		cfg.Overlay = notify.NewOverlay()
	}
	c := &Controller{
		cfg:   cfg,
		steps: wizard.StepsFor(cfg.Form.Role()),
	}
	cfg.Form.OnChange(c.fieldChanged)
	return c
}

// Mount restores the saved draft and derives the employee id.
func (c *Controller) Mount(ctx context.Context) {
	if c.cfg.Persister != nil {
		c.cfg.Persister.Restore(ctx)
	}
	c.recomputeEmployeeID()
}

func (c *Controller) Role() wizard.RoleType { return c.cfg.Form.Role() }

func (c *Controller) Form() *Form { return c.cfg.Form }

func (c *Controller) Steps() []wizard.Step { return c.steps }

func (c *Controller) StepIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Controller) CurrentStep() wizard.Step {
	return c.steps[c.StepIndex()]
}

func (c *Controller) IsLastStep() bool {
	return c.StepIndex() == len(c.steps)-1
}

func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Update sets one field of the form.
func (c *Controller) Update(field, value string) error {
	return c.cfg.Form.Set(field, value)
}

func (c *Controller) fieldChanged(field string) {
	if c.cfg.Persister != nil {
		c.cfg.Persister.Changed()
	}
	if field == wizard.FieldDepartment || field == wizard.FieldRole {
		c.recomputeEmployeeID()
	}
}

// SetDepartments records the department options used to label the employee id.
func (c *Controller) SetDepartments(opts []option.Option) {
	c.mu.Lock()
	c.departments = opts
	c.mu.Unlock()
	c.recomputeEmployeeID()
}

// SetExistingCount records how many basic-info records exist.
func (c *Controller) SetExistingCount(n int) {
	c.mu.Lock()
	c.existingCount = n
	c.mu.Unlock()
	c.recomputeEmployeeID()
}

func (c *Controller) recomputeEmployeeID() {
	form := c.cfg.Form
	if form.Role() != wizard.RoleTypeAdmin {
		return
	}

	c.mu.Lock()
	departments, count := c.departments, c.existingCount
	c.mu.Unlock()

	id := wizard.EmployeeIDFor(form.Get(wizard.FieldDepartment), form.Get(wizard.FieldRole), count, departments)
	if id == "" || id == form.Get(wizard.FieldEmployeeID) {
		return
	}
	_ = form.Set(wizard.FieldEmployeeID, id)
}

// Next validates the current step and advances. Validation failures are
// returned as validator.ValidationErrors and keep the step.
func (c *Controller) Next() error {
	step := c.CurrentStep()
	if err := c.cfg.Form.Values().ValidateFields(step.Fields...); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index < len(c.steps)-1 {
		c.index++
	}
	return nil
}

func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index > 0 {
		c.index--
	}
}

// Submit validates the whole form and writes it. On success the draft is
// cleared, the wizard returns to the first step and navigates to the list.
// On failure the draft is kept and the error is notified.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.index != len(c.steps)-1 {
		c.mu.Unlock()
		return wizard.ErrNotLastStep
	}
	if c.submitting {
		c.mu.Unlock()
		return wizard.ErrSubmitInProgress
	}
	c.submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	values := c.cfg.Form.Values()
	if err := values.Validate(); err != nil {
		return err
	}

	err := c.cfg.Submitter.Submit(ctx, values, c.cfg.Overlay.Show)
	c.cfg.Overlay.Hide()
	if err != nil {
		message := err.Error()
		if message == "" {
			message = wizard.SubmitFailedMessage
		}
		c.notify(notify.TypeError, message)
		return err
	}

	c.reset(ctx)
	c.notify(notify.TypeSuccess, MessageToastSuccess)
	if c.cfg.Navigator != nil {
		c.cfg.Navigator.GoTo(EmployeesPath)
	}
	return nil
}

// ClearDraftAndReset deletes the draft and starts over from the first step.
func (c *Controller) ClearDraftAndReset(ctx context.Context) {
	c.reset(ctx)
}

func (c *Controller) reset(ctx context.Context) {
	initial := c.cfg.Form.Defaults()
	if c.cfg.Persister != nil {
		c.cfg.Persister.ClearDraftAndReset(ctx, initial)
	} else {
		c.cfg.Form.Reset(initial)
	}

	c.mu.Lock()
	c.index = 0
	c.mu.Unlock()
}

func (c *Controller) notify(kind notify.Type, message string) {
	if c.cfg.Sink == nil {
		return
	}
	c.cfg.Sink.Notify(notify.Notification{Type: kind, Message: message, Duration: c.cfg.ToastDuration})
}

// Flush writes a pending draft save right away.
func (c *Controller) Flush(ctx context.Context) {
	if c.cfg.Persister != nil {
		c.cfg.Persister.Flush(ctx)
	}
}

// Close stops draft autosave.
func (c *Controller) Close() {
	if c.cfg.Persister != nil {
		c.cfg.Persister.Close()
	}
}
