package workflow

// IState is the read side of a workflow, for UI composition.
type IState interface {
	Name() string
	Creating() bool
	Err() string
}

// Aggregate composes several workflows into the single loading/error view
// the list UI renders. Err returns the first non-empty error in the order
// the workflows were given (YouTube, PDF, Audio, Text in the standard
// wiring), so at most one error surfaces at a time.
type Aggregate struct {
	flows []IState
}

func NewAggregate(flows ...IState) *Aggregate {
	return &Aggregate{flows: flows}
}

func (a *Aggregate) IsCreating() bool {
	for _, f := range a.flows {
		if f.Creating() {
			return true
		}
	}
	return false
}

func (a *Aggregate) Err() string {
	for _, f := range a.flows {
		if msg := f.Err(); msg != "" {
			return msg
		}
	}
	return ""
}
