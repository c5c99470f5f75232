package models

// RunRequest carries the command line choices for one run of the service
type RunRequest struct {
	ConfigPath string
	NoPrompt   bool
	LogLevel   string
	LogJSON    bool
}

// NewRunRequest returns a request with the default log level
func NewRunRequest() *RunRequest {
	return &RunRequest{
		LogLevel: "info",
	}
}
