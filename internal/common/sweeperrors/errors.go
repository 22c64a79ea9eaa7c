// Package sweeperrors contains typed errors returned by code that validates
// run parameters and resolves external collaborators.
//
// If multiple errors occur in some function (e.g., if several parameters are
// invalid), that function should return an error of type multierror.Error
// from package github.com/hashicorp/go-multierror that encapsulates those
// individual errors.
package sweeperrors

import "fmt"

// ErrInvalidArgument represents an invalid run parameter.
type ErrInvalidArgument struct {
	Name    string      // Name of the field referred to, e.g., "jobFile"
	Value   interface{} // The invalid value that was provided
	Message string      // An optional message explaining why the value is invalid
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %q is invalid for field %q", err.Value, err.Name)
	} else {
		return fmt.Sprintf("value %q is invalid for field %q; %s", err.Value, err.Name, err.Message)
	}
}

// ErrNotFound is returned when something a run depends on cannot be located,
// e.g., the scheduler submit binary on the search path.
type ErrNotFound struct {
	Type    string // What kind of thing is missing, e.g., "binary"
	Value   string // The name that was looked up, e.g., "sbatch"
	Message string // An optional message to include in the error message
}

func (err *ErrNotFound) Error() (s string) {
	if err.Type != "" {
		s = fmt.Sprintf("%s %q not found", err.Type, err.Value)
	} else {
		s = fmt.Sprintf("%q not found", err.Value)
	}
	if err.Message != "" {
		return s + fmt.Sprintf("; %s", err.Message)
	}
	return s
}
