package inquiry

// State is the finite state of a submission attempt.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Outcome is the current submission state plus its user-facing message.
type Outcome struct {
	State   State
	Message string
}

// Idle is the zero-message resting outcome.
func Idle() Outcome {
	return Outcome{State: StateIdle}
}
