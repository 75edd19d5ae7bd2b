package leads

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern is the address grammar accepted on both sides of the wire.
var emailPattern = regexp.MustCompile(`(?i)^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

// fieldRules maps json field names to their validate tag.
var fieldRules = rulesFor(reflect.TypeOf(Submission{}))

func rulesFor(t reflect.Type) map[string]string {
	rules := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		rule := fld.Tag.Get("validate")
		if name == "" || name == "-" || rule == "" || rule == "-" {
			continue
		}
		rules[name] = rule
	}
	return rules
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("leademail", validateEmail); err != nil {
		panic(err)
	}
	return v
}

func validateEmail(fl validator.FieldLevel) bool {
	return ValidEmail(fl.Field().String())
}

// ValidEmail reports whether email matches local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Validate trims the candidate, attaches the current selections and checks
// every field rule plus the message-or-selections rule. The returned
// submission is normalized even when errors are present.
func Validate(candidate Submission, selections []Selection) (Submission, FieldErrors) {
	candidate.Selections = selections
	sub := Normalize(candidate)

	var errs FieldErrors
	if err := validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			// Only reachable on a programming error in the struct tags.
			panic(err)
		}
		for _, fe := range verrs {
			errs = append(errs, toFieldError(fe.Field(), fe))
		}
	}
	errs = append(errs, checkMessageOrSelections(sub)...)

	if len(errs) == 0 {
		return sub, nil
	}
	return sub, errs
}

// ValidateField checks one field of the candidate, the way an input
// validates on blur. The message field also carries the
// message-or-selections rule. Unknown fields always pass.
func ValidateField(field string, candidate Submission, selections []Selection) (FieldError, bool) {
	candidate.Selections = selections
	sub := Normalize(candidate)

	var value string
	switch field {
	case "name":
		value = sub.Name
	case "company":
		value = sub.Company
	case "email":
		value = sub.Email
	case "role":
		value = sub.Role
	case "message":
		value = sub.Message
	default:
		return FieldError{}, false
	}

	if rule, ok := fieldRules[field]; ok {
		if err := validate.Var(value, rule); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				panic(err)
			}
			return toFieldError(field, verrs[0]), true
		}
	}
	if field == "message" {
		if errs := checkMessageOrSelections(sub); len(errs) > 0 {
			return errs[0], true
		}
	}
	return FieldError{}, false
}

// checkMessageOrSelections enforces hasMessage OR hasSelections, reported
// against the message field.
func checkMessageOrSelections(sub Submission) FieldErrors {
	if sub.HasMessageOrSelections() {
		return nil
	}
	return FieldErrors{{Field: "message", Kind: KindCrossField, Message: MessageOrSelectionMsg}}
}

func toFieldError(field string, fe validator.FieldError) FieldError {
	switch fe.Tag() {
	case "required":
		msg := NameRequiredMessage
		if field == "email" {
			msg = EmailRequiredMessage
		}
		return FieldError{Field: field, Kind: KindRequired, Message: msg}
	case "leademail":
		return FieldError{Field: field, Kind: KindFormat, Message: EmailFormatMessage}
	case "max":
		return FieldError{Field: field, Kind: KindTooLong, Message: TooLongMessage}
	default:
		return FieldError{Field: field, Kind: ErrorKind(fe.Tag()), Message: fe.Error()}
	}
}

// GatewayMessage collapses field errors into the single message the HTTP
// boundary returns.
func GatewayMessage(errs FieldErrors) string {
	for _, e := range errs {
		if e.Kind == KindRequired || e.Kind == KindCrossField {
			return MissingFieldsMessage
		}
	}
	if errs.Has("email", KindFormat) {
		return EmailFormatMessage
	}
	if len(errs) > 0 {
		return errs[0].Field + ": " + errs[0].Message
	}
	return ""
}
