package inquiry

import (
	"sync"

	"github.com/gpucloudstore/gpucloud-site/internal/leads"
)

// Form field names.
const (
	FieldName    = "name"
	FieldCompany = "company"
	FieldEmail   = "email"
	FieldRole    = "role"
	FieldMessage = "message"
)

var fieldOrder = []string{FieldName, FieldCompany, FieldEmail, FieldRole, FieldMessage}

// FieldValidator checks one field against the rest of the form and the
// current selections and returns its error message, or "".
type FieldValidator func(sub leads.Submission, selections []leads.Selection) string

// Field is the bound state of one input.
type Field struct {
	Value    string
	Validate FieldValidator
	Error    string
}

func validatorFor(name string) FieldValidator {
	return func(sub leads.Submission, selections []leads.Selection) string {
		if fe, failed := leads.ValidateField(name, sub, selections); failed {
			return fe.Message
		}
		return ""
	}
}

// Form maps field names to their value and last validation error. All
// mutation goes through its methods.
type Form struct {
	mu     sync.Mutex
	fields map[string]*Field
}

// NewForm creates an empty form.
func NewForm() *Form {
	f := &Form{fields: make(map[string]*Field, len(fieldOrder))}
	for _, name := range fieldOrder {
		f.fields[name] = &Field{Validate: validatorFor(name)}
	}
	return f
}

// Set stores a raw value and clears the field's error. Unknown names are ignored.
func (f *Form) Set(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if field, ok := f.fields[name]; ok {
		field.Value = value
		field.Error = ""
	}
}

// Value returns the raw value of a field.
func (f *Form) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if field, ok := f.fields[name]; ok {
		return field.Value
	}
	return ""
}

// Errors returns the current field errors keyed by field name.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]string{}
	for name, field := range f.fields {
		if field.Error != "" {
			out[name] = field.Error
		}
	}
	return out
}

// Check runs a single field's validator, the way an input validates on
// blur, and records its error.
func (f *Form) Check(name string, selections []leads.Selection) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	field, ok := f.fields[name]
	if !ok {
		return ""
	}
	field.Error = field.Validate(f.submission(), selections)
	return field.Error
}

// Validate runs the schema over the whole form, records every field error
// and returns the normalized submission.
func (f *Form) Validate(selections []leads.Selection) (leads.Submission, leads.FieldErrors) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, errs := leads.Validate(f.submission(), selections)
	for _, field := range f.fields {
		field.Error = ""
	}
	for _, fe := range errs {
		if field, ok := f.fields[fe.Field]; ok && field.Error == "" {
			field.Error = fe.Message
		}
	}
	return sub, errs
}

// Reset clears every value and error.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, field := range f.fields {
		field.Value = ""
		field.Error = ""
	}
}

func (f *Form) submission() leads.Submission {
	return leads.Submission{
		Name:    f.fields[FieldName].Value,
		Company: f.fields[FieldCompany].Value,
		Email:   f.fields[FieldEmail].Value,
		Role:    f.fields[FieldRole].Value,
		Message: f.fields[FieldMessage].Value,
	}
}
