package eda

import "fmt"

// InvalidOptionError reports an option value an orchestrator cannot use.
type InvalidOptionError struct {
	Option string
	Value  string
	Err    error
}

func (e *InvalidOptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Option, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Option, e.Value)
}

func (e *InvalidOptionError) Unwrap() error { return e.Err }

func invalid(option, value string, err error) error {
	return &InvalidOptionError{Option: option, Value: value, Err: err}
}
