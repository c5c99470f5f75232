package interfaces

// Level is the severity of an operator alert
type Level int

const (
	LevelWarning Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "warning"
}

// Prompt asks the operator questions and raises alerts
type Prompt interface {
	// Ask shows message and waits for an answer. The second result is false
	// when the operator declined or cancelled.
	Ask(message string) (string, bool)

	// Alert notifies the operator; context names the component raising it
	Alert(level Level, context, message string)
}
