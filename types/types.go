package types

// ConversionState represents where a conversion request currently is
type ConversionState int

const (
	// StateIdle is the default state, waiting for a trigger
	StateIdle ConversionState = iota
	// StateValidating indicates the input and output paths are being checked
	StateValidating
	// StateRejected indicates validation failed and the request ended
	StateRejected
	// StateAwaitingConfirmation indicates the output exists and the user must decide
	StateAwaitingConfirmation
	// StateRunning indicates the external compiler has been launched
	StateRunning
	// StateSucceeded indicates the output file exists after the run
	StateSucceeded
	// StateFailed indicates the compiler could not start or produced nothing
	StateFailed
)

// String returns the string representation of the ConversionState
func (s ConversionState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateValidating:
		return "Validating"
	case StateRejected:
		return "Rejected"
	case StateAwaitingConfirmation:
		return "Awaiting confirmation"
	case StateRunning:
		return "Running"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether a request in this state has ended.
func (s ConversionState) Terminal() bool {
	return s == StateRejected || s == StateSucceeded || s == StateFailed
}

// InFlight reports whether a request in this state still owns the session.
func (s ConversionState) InFlight() bool {
	return s == StateValidating || s == StateAwaitingConfirmation || s == StateRunning
}
