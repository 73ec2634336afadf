package contact

import "time"

// EventKind identifies a controller transition.
type EventKind string

const (
	EventStarted  EventKind = "started"
	EventFinished EventKind = "finished"
)

// Event describes a state change of the controller. Started events carry the
// cleared status; finished events carry the terminal status and outcome.
type Event struct {
	Kind      EventKind `json:"kind"`
	AttemptID string    `json:"attempt_id"`
	State     State     `json:"-"`
	StateName string    `json:"state"`
	Status    Status    `json:"status"`
	Outcome   Outcome   `json:"outcome,omitempty"`
	At        time.Time `json:"at"`
}

// Observer receives controller events. Implementations must not block.
type Observer interface {
	OnSubmissionEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnSubmissionEvent calls f(e).
func (f ObserverFunc) OnSubmissionEvent(e Event) {
	f(e)
}

// Recorder receives per-attempt measurements.
type Recorder interface {
	ObserveSubmission(outcome string, elapsed time.Duration)
}
