package validator

import (
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		if _, exists := result[err.Field]; !exists {
			result[err.Field] = err.Message
		}
	}
	return result
}

// Only keeps the errors whose field is listed.
func (v ValidationErrors) Only(fields ...string) ValidationErrors {
	var out ValidationErrors
	for _, err := range v {
		if IsInSlice(err.Field, fields) {
			out = append(out, err)
		}
	}
	return out
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

const dataImagePrefix = "data:image/"

// IsDataImage reports whether s is a data URI carrying an image.
func IsDataImage(s string) bool {
	return strings.HasPrefix(s, dataImagePrefix) && strings.Contains(s, ",")
}

// DataURISize estimates the decoded byte size of a base64 data URI payload.
func DataURISize(s string) int {
	idx := strings.Index(s, ",")
	if idx < 0 {
		return 0
	}
	payload := s[idx+1:]
	if !strings.Contains(s[:idx], ";base64") {
		return len(payload)
	}
	padding := len(payload) - len(strings.TrimRight(payload, "="))
	return len(payload)*3/4 - padding
}

// WithMessages replaces the message of every error whose field has an entry
// in messages.
func (v ValidationErrors) WithMessages(messages map[string]string) ValidationErrors {
	out := make(ValidationErrors, len(v))
	for i, err := range v {
		if msg, ok := messages[err.Field]; ok {
			err.Message = msg
		}
		out[i] = err
	}
	return out
}
