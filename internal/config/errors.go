package config

import (
	"errors"
	"fmt"
)

// Error categories for configuration failures. Every *Error matches its
// category with errors.Is.
var (
	ErrConfigFormat  = errors.New("malformed configuration")
	ErrConfigRead    = errors.New("unreadable configuration")
	ErrMissingKey    = errors.New("missing configuration key")
	ErrWrongType     = errors.New("wrong configuration value type")
	ErrTokenDeclined = errors.New("no token provided")
	ErrOwnerInvalid  = errors.New("invalid owner id")
	ErrPersist       = errors.New("persist configuration")
)

// Error is a configuration failure with actionable guidance
type Error struct {
	Type     error
	Message  string
	Guidance string
	Path     string
	Cause    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the category of e
func (e *Error) Is(target error) bool {
	return e.Type == target
}

func NewFormatError(path string, cause error) *Error {
	return &Error{
		Type:     ErrConfigFormat,
		Message:  fmt.Sprintf("cannot parse %s", path),
		Guidance: "Fix the TOML syntax in the configuration file, or delete it to start over from the defaults.",
		Path:     path,
		Cause:    cause,
	}
}

func NewReadError(path string, cause error) *Error {
	return &Error{
		Type:     ErrConfigRead,
		Message:  fmt.Sprintf("cannot read %s", path),
		Guidance: "Check that the configuration file is readable by the user running the service.",
		Path:     path,
		Cause:    cause,
	}
}

// NewMissingKeyError reports a key absent from every layer. The default
// layer defines every key, so this indicates a broken build.
func NewMissingKeyError(key string) *Error {
	return &Error{
		Type:     ErrMissingKey,
		Message:  fmt.Sprintf("no value for %q", key),
		Guidance: "The built-in defaults are incomplete; reinstall the service.",
	}
}

func NewWrongTypeError(path, key string, cause error) *Error {
	return &Error{
		Type:     ErrWrongType,
		Message:  fmt.Sprintf("%q has a value of the wrong type", key),
		Guidance: fmt.Sprintf("Compare %q with the commented defaults and fix its value.", key),
		Path:     path,
		Cause:    cause,
	}
}

func NewTokenDeclinedError(path string) *Error {
	return &Error{
		Type:     ErrTokenDeclined,
		Message:  "the bot token is missing and none was entered",
		Guidance: "Set token in the configuration file, or run the service again and enter it when asked.",
		Path:     path,
	}
}

func NewOwnerInvalidError(path string) *Error {
	return &Error{
		Type:     ErrOwnerInvalid,
		Message:  "the owner id is missing or not a positive number",
		Guidance: "Set owner in the configuration file to your numeric user id.",
		Path:     path,
	}
}

func NewPersistError(path string, cause error) *Error {
	return &Error{
		Type:     ErrPersist,
		Message:  fmt.Sprintf("cannot write %s", path),
		Guidance: "Move the configuration somewhere the service can write, or fill in the values by hand.",
		Path:     path,
		Cause:    cause,
	}
}
