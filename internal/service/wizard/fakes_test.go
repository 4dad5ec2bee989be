package wizard

import (
	"context"
	"errors"
	"sync"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/notify"
)

const testPhoto = "data:image/png;base64,abc123"

// callLog records write calls across both fake resources.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeBasicInfo struct {
	log      *callLog
	err      error
	payloads []employee.BasicInfoPayload
	total    int
}

func (f *fakeBasicInfo) Fetch(context.Context, int, int) (employee.Page[employee.BasicInfo], error) {
	return employee.Page[employee.BasicInfo]{Total: f.total}, nil
}

func (f *fakeBasicInfo) Create(_ context.Context, p employee.BasicInfoPayload) error {
	f.log.add("basicInfo")
	f.payloads = append(f.payloads, p)
	return f.err
}

type fakeDetails struct {
	log      *callLog
	err      error
	payloads []employee.DetailPayload
}

func (f *fakeDetails) Fetch(context.Context, int, int) (employee.Page[employee.Detail], error) {
	return employee.Page[employee.Detail]{}, nil
}

func (f *fakeDetails) Create(_ context.Context, p employee.DetailPayload) error {
	f.log.add("detail")
	f.payloads = append(f.payloads, p)
	return f.err
}

type recordingSink struct {
	mu    sync.Mutex
	items []notify.Notification
}

func (s *recordingSink) Notify(n notify.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, n)
}

func (s *recordingSink) last() notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return notify.Notification{}
	}
	return s.items[len(s.items)-1]
}

var errNetwork = errors.New("Network error")

func adminValues() wizard.FormValues {
	return wizard.FormValues{
		RoleType: wizard.RoleTypeAdmin,
		Admin: &wizard.AdminValues{
			FullName:       "John Doe",
			Email:          "john@example.com",
			Department:     "engineering",
			DepartmentName: "Engineering",
			Role:           "engineer",
			EmployeeID:     "ENG-001",
			DetailValues: wizard.DetailValues{
				Photo:          testPhoto,
				EmploymentType: "full-time",
				Location:       "jakarta",
				LocationName:   "Jakarta",
				Notes:          "Test notes",
			},
		},
	}
}

func opsValues() wizard.FormValues {
	return wizard.FormValues{
		RoleType: wizard.RoleTypeOps,
		Ops: &wizard.OpsValues{DetailValues: wizard.DetailValues{
			Photo:          testPhoto,
			EmploymentType: "contract",
			Location:       "bandung",
			LocationName:   "Bandung",
		}},
	}
}
