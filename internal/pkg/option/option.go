package option

import "strings"

// Option is a single selectable entry. Value must be unique within a list.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Direction is the traversal direction used by NextValidIndex.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Selected returns the first option whose value equals value.
func Selected(options []Option, value string) (Option, bool) {
	for _, opt := range options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// Filter returns the options whose label contains searchTerm, ignoring case.
// The input slice is returned as-is when search is disabled or the term is blank.
func Filter(options []Option, searchTerm string, searchEnabled bool) []Option {
	if !searchEnabled || strings.TrimSpace(searchTerm) == "" {
		return options
	}

	lowered := strings.ToLower(searchTerm)
	filtered := make([]Option, 0, len(options))
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Label), lowered) {
			filtered = append(filtered, opt)
		}
	}
	return filtered
}

// IsDisabledAt reports whether index is out of range or points at a disabled option.
func IsDisabledAt(list []Option, index int) bool {
	if index < 0 || index >= len(list) {
		return true
	}
	return list[index].Disabled
}

// IsValidHighlight reports whether index points at an enabled option.
func IsValidHighlight(list []Option, index int) bool {
	return index >= 0 && index < len(list) && !list[index].Disabled
}

// NextValidIndex scans from current in the given direction, skipping disabled
// options. It never wraps; current is returned when no valid index is found.
func NextValidIndex(list []Option, current int, direction Direction) int {
	switch direction {
	case Down:
		next := current + 1
		for next < len(list) && IsDisabledAt(list, next) {
			next++
		}
		if next < len(list) {
			return next
		}
	case Up:
		next := current - 1
		for next >= 0 && IsDisabledAt(list, next) {
			next--
		}
		if next >= 0 {
			return next
		}
	}
	return current
}

// FirstEnabled returns the index of the first enabled option, or -1.
func FirstEnabled(list []Option) int {
	for i, opt := range list {
		if !opt.Disabled {
			return i
		}
	}
	return -1
}
