package demo

import (
	"errors"
	"fmt"
)

// InitError reports that no rendering context could be acquired.
// Nothing was torn down.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init: %v", e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// OpError reports a failed call after initialization.
// The context has been stopped; StopErr holds a teardown failure on the failure path.
type OpError struct {
	Step    Step
	Err     error
	StopErr error
}

func (e *OpError) Error() string {
	if e.StopErr != nil {
		return fmt.Sprintf("%s: %v (teardown: %v)", e.Step, e.Err, e.StopErr)
	}
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *OpError) Unwrap() []error {
	if e.StopErr != nil {
		return []error{e.Err, e.StopErr}
	}
	return []error{e.Err}
}

// IsInitError reports whether err is an initialization failure
func IsInitError(err error) bool {
	var ie *InitError
	return errors.As(err, &ie)
}
