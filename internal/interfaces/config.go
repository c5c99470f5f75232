package interfaces

// Outcome is the terminal state reached by a configuration load
type Outcome int

const (
	// OutcomeValid means every required field is present and the settings may be read
	OutcomeValid Outcome = iota
	// OutcomeAborted means the load stopped early and control returns to the caller
	OutcomeAborted
	// OutcomeExit means the process must stop; the owner identity could not be resolved
	OutcomeExit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeAborted:
		return "aborted"
	case OutcomeExit:
		return "exit"
	default:
		return "unknown"
	}
}

// ConfigLoader resolves the service configuration
type ConfigLoader interface {
	// Load runs the full load pipeline and reports where it ended
	Load() Outcome

	// Valid reports whether the last Load completed successfully
	Valid() bool

	// Location returns the absolute path of the live configuration file
	Location() string
}
