package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestIsDataImage(t *testing.T) {
	valid := []string{"data:image/png;base64,iVBORw0KGgo=", "data:image/jpeg;base64,/9j/4AAQ"}
	invalid := []string{"", "image/png", "data:text/plain;base64,aGk=", "data:image/png"}
	for _, s := range valid {
		if !IsDataImage(s) {
			t.Errorf("IsDataImage(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsDataImage(s) {
			t.Errorf("IsDataImage(%q) = true, want false", s)
		}
	}
}

func TestDataURISize(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"data:image/png;base64,aGVsbG8=", 5},
		{"data:image/png;base64,aGk=", 2},
		{"data:image/svg+xml,<svg/>", 6},
		{"no-comma", 0},
	}
	for _, c := range cases {
		if got := DataURISize(c.input); got != c.want {
			t.Errorf("DataURISize(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "photo", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; photo: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "photo", Message: "required"},
		{Field: "email", Message: "second"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "photo": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestValidationErrors_Only(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "photo", Message: "required"},
	}
	got := errs.Only("photo", "location")
	if len(got) != 1 || got[0].Field != "photo" {
		t.Errorf("ValidationErrors.Only() = %v, want only photo", got)
	}
}

type sample struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"required,email"`
	Kind  string `json:"kind" validate:"required,oneof=a b"`
	Photo string `json:"photo" validate:"required,dataimage,photosize"`
}

func TestStruct(t *testing.T) {
	if err := Struct(sample{Name: "x", Email: "a@b.cd", Kind: "a", Photo: "data:image/png;base64,aGk="}); err != nil {
		t.Fatalf("Struct(valid) = %v, want nil", err)
	}

	err := Struct(sample{Name: "  ", Email: "nope", Kind: "c", Photo: "plain"})
	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Struct(invalid) returned %T, want ValidationErrors", err)
	}
	got := errs.ToMap()
	want := map[string]string{
		"name":  "is required",
		"email": "must be a valid email",
		"kind":  "must be one of: a, b",
		"photo": "must be an image",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Struct(invalid)[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestValidationErrors_WithMessages(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "is invalid"},
		{Field: "photo", Message: "is required"},
	}
	got := errs.WithMessages(map[string]string{"email": "Invalid email format"})
	if got[0].Message != "Invalid email format" || got[1].Message != "is required" {
		t.Errorf("ValidationErrors.WithMessages() = %v", got)
	}
	if errs[0].Message != "is invalid" {
		t.Errorf("ValidationErrors.WithMessages() mutated the receiver")
	}
}
