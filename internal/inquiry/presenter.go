package inquiry

// Tone selects how a status message is styled.
type Tone string

const (
	ToneNone    Tone = ""
	ToneNeutral Tone = "neutral"
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
)

// View is everything a form needs to render its status line and button.
type View struct {
	ShowMessage    bool
	Message        string
	Tone           Tone
	Busy           bool
	ButtonLabel    string
	ButtonDisabled bool
}

// Present maps an outcome onto a view. Only the outcome's normalized
// message is ever shown.
func Present(o Outcome, c Copy) View {
	v := View{ButtonLabel: c.Submit}
	switch o.State {
	case StateLoading:
		v.Busy = true
		v.Tone = ToneNeutral
		v.ButtonLabel = c.Submitting
		v.ButtonDisabled = true
	case StateSuccess:
		v.ShowMessage = o.Message != ""
		v.Message = o.Message
		v.Tone = ToneSuccess
	case StateError:
		v.ShowMessage = o.Message != ""
		v.Message = o.Message
		v.Tone = ToneDanger
	}
	return v
}
