package wizard

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/option"
)

// GenerateEmployeeID builds an identifier such as "ENG-005" from the first
// three letters of the department label and existingCount+1.
func GenerateEmployeeID(departmentLabel, role string, existingCount int) string {
	label := strings.TrimSpace(departmentLabel)
	if label == "" || strings.TrimSpace(role) == "" {
		return ""
	}

	runes := []rune(label)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return fmt.Sprintf("%s-%03d", strings.ToUpper(string(runes)), existingCount+1)
}

// EmployeeIDFor resolves the department label from departments, falling back
// to the id itself when the department is not listed.
func EmployeeIDFor(departmentID, role string, existingCount int, departments []option.Option) string {
	if departmentID == "" {
		return ""
	}
	label := departmentID
	if opt, ok := option.Selected(departments, departmentID); ok && opt.Label != "" {
		label = opt.Label
	}
	return GenerateEmployeeID(label, role, existingCount)
}
