package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// MaxPhotoBytes is the largest decoded photo accepted (0.10 MB).
const MaxPhotoBytes = 104857

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("dataimage", func(fl playground.FieldLevel) bool {
		return IsDataImage(fl.Field().String())
	})
	_ = v.RegisterValidation("photosize", func(fl playground.FieldLevel) bool {
		return DataURISize(fl.Field().String()) <= MaxPhotoBytes
	})
	_ = v.RegisterValidation("notblank", func(fl playground.FieldLevel) bool {
		return !IsEmpty(fl.Field().String())
	})
	return v
}

// Struct validates s using its `validate` tags and reports failures keyed by
// json field name.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "dataimage":
		return "must be an image"
	case "photosize":
		return "must be at most 0.10MB"
	default:
		return "is invalid"
	}
}
