package lookup

import "errors"

var (
	ErrDepartmentsFetch = errors.New("failed to fetch departments")
	ErrLocationsFetch   = errors.New("failed to fetch locations")
)
