package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidation makes validator report json (or form) field names
// instead of Go struct field names. Safe to call more than once.
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}

// ValidationErrors converts a binding error into per-field messages.
func ValidationErrors(err error) map[string][]string {
	fields := map[string][]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field, message := describe(fe)
			fields[field] = append(fields[field], message)
		}
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		fields[field] = append(fields[field], fmt.Sprintf("The %s field has an invalid type.", humanize(field)))
		return fields
	}

	fields["body"] = []string{"The request body is invalid."}
	return fields
}

// NewValidationErrorResponse builds the 422 body. The message is the first
// error in field order.
func NewValidationErrorResponse(fields map[string][]string) ValidationErrorResponse {
	names := make([]string, 0, len(fields))
	for f := range fields {
		names = append(names, f)
	}
	sort.Strings(names)

	message := "The given data was invalid."
	if len(names) > 0 && len(fields[names[0]]) > 0 {
		message = fields[names[0]][0]
	}
	return ValidationErrorResponse{Success: false, Message: message, Errors: fields}
}

func describe(fe validator.FieldError) (string, string) {
	field := fe.Field()
	name := humanize(field)
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return field, fmt.Sprintf("The %s field is required.", name)
	case "email":
		return field, fmt.Sprintf("The %s field must be a valid email address.", name)
	case "min", "gte":
		if isString {
			return field, fmt.Sprintf("The %s field must be at least %s characters.", name, fe.Param())
		}
		return field, fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "max", "lte":
		if isString {
			return field, fmt.Sprintf("The %s field must not be greater than %s characters.", name, fe.Param())
		}
		return field, fmt.Sprintf("The %s field must not be greater than %s.", name, fe.Param())
	case "oneof":
		return field, fmt.Sprintf("The selected %s is invalid.", name)
	case "datetime":
		return field, fmt.Sprintf("The %s field must match the format Y-m-d.", name)
	case "uuid":
		return field, fmt.Sprintf("The %s field must be a valid UUID.", name)
	case "eqfield":
		if base, ok := strings.CutSuffix(field, "_confirmation"); ok {
			return base, fmt.Sprintf("The %s field confirmation does not match.", humanize(base))
		}
		return field, fmt.Sprintf("The %s field must match %s.", name, fe.Param())
	default:
		return field, fmt.Sprintf("The %s field is invalid.", name)
	}
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
