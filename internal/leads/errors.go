package leads

import "strings"

// Response copy returned by the gateway for rejected bodies.
const (
	MissingFieldsMessage = "Missing required fields: name, email, message"
	InvalidBodyMessage   = "Invalid request body"
	InternalErrorMessage = "Internal server error"
)

// Field error copy shown next to the offending input.
const (
	NameRequiredMessage   = "Name is required"
	EmailRequiredMessage  = "Email is required"
	EmailFormatMessage    = "Invalid email address"
	MessageOrSelectionMsg = "Please either select GPU configurations above or provide details here."
	TooLongMessage        = "Too long"
)

// ErrorKind classifies a field-level validation failure.
type ErrorKind string

const (
	KindRequired   ErrorKind = "required"
	KindFormat     ErrorKind = "format"
	KindCrossField ErrorKind = "cross_field"
	KindTooLong    ErrorKind = "too_long"
)

// FieldError is a validation failure scoped to one form field.
type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// FieldErrors is the set of failures from one validation pass, in field order.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// For returns the first error for field, if any.
func (fe FieldErrors) For(field string) (FieldError, bool) {
	for _, e := range fe {
		if e.Field == field {
			return e, true
		}
	}
	return FieldError{}, false
}

// Has reports whether field failed with the given kind.
func (fe FieldErrors) Has(field string, kind ErrorKind) bool {
	for _, e := range fe {
		if e.Field == field && e.Kind == kind {
			return true
		}
	}
	return false
}
