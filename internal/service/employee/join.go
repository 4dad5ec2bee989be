package employee

import (
	"sort"
	"strings"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/employee"
)

// joinKey returns "employeeId#email", or false when either part is blank.
func joinKey(employeeID, email string) (string, bool) {
	employeeID = strings.TrimSpace(employeeID)
	email = strings.TrimSpace(email)
	if employeeID == "" || email == "" {
		return "", false
	}
	return employeeID + "#" + email, true
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return employee.NotAvailable
	}
	return s
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

type indexedDetail struct {
	index  int
	detail employee.Detail
}

// Join combines basic-info and detail records into view rows.
//
// A detail matches the first basic-info record with the same employeeId#email
// key and is consumed by it. Joined rows come first, in basic-info order,
// followed by every detail that was not consumed, in detail order, with the
// basic-info columns set to N/A. Basic-info records without a detail are not
// emitted.
func Join(basics []employee.BasicInfo, details []employee.Detail) []employee.View {
	queues := make(map[string][]indexedDetail, len(details))
	var leftovers []indexedDetail

	for i, d := range details {
		key, ok := joinKey(d.EmployeeID, d.Email)
		if !ok {
			leftovers = append(leftovers, indexedDetail{index: i, detail: d})
			continue
		}
		queues[key] = append(queues[key], indexedDetail{index: i, detail: d})
	}

	rows := make([]employee.View, 0, len(details))
	for _, b := range basics {
		key, ok := joinKey(b.EmployeeID, b.Email)
		if !ok {
			continue
		}
		queue := queues[key]
		if len(queue) == 0 {
			continue
		}
		queues[key] = queue[1:]
		rows = append(rows, joinedRow(b, queue[0].detail))
	}

	for _, queue := range queues {
		leftovers = append(leftovers, queue...)
	}
	sort.Slice(leftovers, func(i, j int) bool { return leftovers[i].index < leftovers[j].index })

	for _, l := range leftovers {
		rows = append(rows, detailOnlyRow(l.detail))
	}
	return rows
}

func joinedRow(b employee.BasicInfo, d employee.Detail) employee.View {
	return employee.View{
		ID:             orNA(b.ID.String()),
		FullName:       orNA(b.FullName),
		Email:          orNA(b.Email),
		Department:     orNA(firstNonBlank(b.DepartmentName, b.Department)),
		Role:           orNA(b.Role),
		EmployeeID:     orNA(b.EmployeeID),
		Photo:          orNA(d.Photo),
		EmploymentType: orNA(d.EmploymentType),
		Location:       orNA(firstNonBlank(d.LocationName, d.Location)),
		Notes:          orNA(d.Notes),
		Source:         employee.SourceJoined,
	}
}

func detailOnlyRow(d employee.Detail) employee.View {
	return employee.View{
		ID:             orNA(d.ID.String()),
		FullName:       employee.NotAvailable,
		Email:          employee.NotAvailable,
		Department:     employee.NotAvailable,
		Role:           employee.NotAvailable,
		EmployeeID:     employee.NotAvailable,
		Photo:          orNA(d.Photo),
		EmploymentType: orNA(d.EmploymentType),
		Location:       orNA(firstNonBlank(d.LocationName, d.Location)),
		Notes:          orNA(d.Notes),
		Source:         employee.SourceDetailOnly,
	}
}
