// Package validation mirrors the constraints the backend is known to
// enforce, so predictably-invalid input is rejected before a round-trip.
// Every check here is pure and side-effect-free.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldErrors is a global message plus optional per-field messages, keyed
// by the field's JSON name.
type FieldErrors struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *FieldErrors) Error() string { return e.Message }

// jsonField maps validator struct-field names onto the wire names shown
// to the operator.
var jsonField = map[string]string{
	"Name":      "name",
	"Area":      "area",
	"Biography": "biography",
}

func structFields(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := jsonField[fe.StructField()]
		if name == "" {
			name = strings.ToLower(fe.StructField())
		}
		switch fe.Tag() {
		case "required":
			fields[name] = "this field is required"
		default:
			fields[name] = "this field is invalid"
		}
	}
	return fields
}
