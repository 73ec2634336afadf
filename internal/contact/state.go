package contact

// State is the controller's busy flag as an explicit two-value state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// StatusKind classifies the visible status message.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusError
)

// String returns the string representation of the status kind
func (k StatusKind) String() string {
	switch k {
	case StatusNone:
		return "none"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is the user-visible message of the last attempt. The zero value is
// the absent message.
type Status struct {
	Kind StatusKind `json:"kind"`
	Text string     `json:"text,omitempty"`
}

// Visible reports whether a message should be shown.
func (s Status) Visible() bool {
	return s.Kind != StatusNone
}

// Outcome is the terminal classification of one submission cycle.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeServerError  Outcome = "server_error"
	OutcomeNetworkError Outcome = "network_error"
)
