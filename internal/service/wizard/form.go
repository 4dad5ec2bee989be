package wizard

import (
	"sync"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
)

// Form owns the live values of one wizard. It is safe for concurrent use
// so a submission running in the background can read a snapshot.
type Form struct {
	mu       sync.RWMutex
	values   wizard.FormValues
	onChange func(field string)
}

func NewForm(role wizard.RoleType) *Form {
	return &Form{values: wizard.DefaultValues(role)}
}

// OnChange registers fn to run after every Set.
func (f *Form) OnChange(fn func(field string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = fn
}

func (f *Form) Role() wizard.RoleType {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values.RoleType
}

// Values returns a copy of the current values.
func (f *Form) Values() wizard.FormValues {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values.Clone()
}

func (f *Form) Defaults() wizard.FormValues {
	return wizard.DefaultValues(f.Role())
}

func (f *Form) Reset(values wizard.FormValues) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = values.Clone()
}

func (f *Form) Get(field string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, _ := f.values.Get(field)
	return v
}

func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	if err := f.values.Set(field, value); err != nil {
		f.mu.Unlock()
		return err
	}
	fn := f.onChange
	f.mu.Unlock()

	if fn != nil {
		fn(field)
	}
	return nil
}
