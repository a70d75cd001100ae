package validators

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a new validator instance.
func New() *Validate {
	return validator.New()
}

// NewJSON creates a validator whose field errors carry the json name of a field, so messages
// match what API clients sent.
func NewJSON() *Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// Describe renders the field errors in err as "field (tag)" pairs joined by commas. It returns
// an empty string when err holds no field errors.
func Describe(err error) string {
	fieldErrors, ok := err.(ValidationErrors)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		parts = append(parts, e.Field()+" ("+e.Tag()+")")
	}
	return strings.Join(parts, ", ")
}
