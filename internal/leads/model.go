package leads

import "strings"

// Submission is a prospective customer's contact-form entry.
type Submission struct {
	Name       string      `json:"name" validate:"required,max=200"`
	Company    string      `json:"company" validate:"max=200"`
	Email      string      `json:"email" validate:"required,max=320,leademail"`
	Role       string      `json:"role" validate:"max=200"`
	Message    string      `json:"message" validate:"max=5000"`
	Selections []Selection `json:"selections,omitempty" validate:"-"`
}

// Selection references a product configuration the submitter picked.
type Selection struct {
	Title    string `json:"title"`
	Specs    string `json:"specs"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity,omitempty"`
}

// ContactRequest is the body accepted by POST /api/contact. CartItems is the
// key older site builds used for selections.
type ContactRequest struct {
	Name       string      `json:"name"`
	Company    string      `json:"company"`
	Email      string      `json:"email"`
	Role       string      `json:"role"`
	Message    string      `json:"message"`
	Selections []Selection `json:"selections"`
	CartItems  []Selection `json:"cartItems"`
}

// Submission converts the request into a trimmed Submission.
func (r ContactRequest) Submission() Submission {
	selections := make([]Selection, 0, len(r.Selections)+len(r.CartItems))
	selections = append(selections, r.Selections...)
	selections = append(selections, r.CartItems...)
	return Normalize(Submission{
		Name:       r.Name,
		Company:    r.Company,
		Email:      r.Email,
		Role:       r.Role,
		Message:    r.Message,
		Selections: selections,
	})
}

// Normalize trims every string field. Selections with an empty title are dropped.
func Normalize(s Submission) Submission {
	out := Submission{
		Name:    strings.TrimSpace(s.Name),
		Company: strings.TrimSpace(s.Company),
		Email:   strings.TrimSpace(s.Email),
		Role:    strings.TrimSpace(s.Role),
		Message: strings.TrimSpace(s.Message),
	}
	for _, sel := range s.Selections {
		sel.Title = strings.TrimSpace(sel.Title)
		sel.Specs = strings.TrimSpace(sel.Specs)
		sel.Price = strings.TrimSpace(sel.Price)
		if sel.Title == "" {
			continue
		}
		out.Selections = append(out.Selections, sel)
	}
	return out
}

// HasMessageOrSelections reports whether the submission carries either
// free text or at least one selection.
func (s Submission) HasMessageOrSelections() bool {
	return strings.TrimSpace(s.Message) != "" || len(s.Selections) > 0
}
