package tool

// State is the lifecycle state of a Panel.
type State int

const (
	// StateIdle means nothing has run yet or the result was cleared.
	StateIdle State = iota
	// StateRunning means an extraction is in progress.
	StateRunning
	// StateIdleWithResult means the last run succeeded and its forest is shown.
	StateIdleWithResult
	// StateIdleWithError means the last run failed. The previous forest, if
	// any, is still shown.
	StateIdleWithError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateIdleWithResult:
		return "idle_with_result"
	case StateIdleWithError:
		return "idle_with_error"
	default:
		return "unknown"
	}
}

// StateFunc observes a state transition.
type StateFunc func(old, new State)
