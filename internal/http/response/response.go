// Package response contains the helpers for the JSON wire format of the
// API. Successful responses carry the payload directly; every error is a
// {"detail": "..."} object whose message the console shows verbatim.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Detail is the error body of the API. The console extracts Detail and
// presents it without rewording.
type Detail struct {
	Detail string `json:"detail" example:"subscription not found"`
}

// Error builds an error body with the given message.
func Error(msg string) Detail {
	return Detail{Detail: msg}
}

// ValidationError folds validation failures into a single detail message,
// one human-readable clause per violated field.
func ValidationError(errs validator.ValidationErrors) Detail {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Detail{Detail: strings.Join(errsMsgs, ", ")}
}
