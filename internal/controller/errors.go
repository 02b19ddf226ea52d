package controller

import (
	"errors"
	"fmt"

	"github.com/san-kum/sortviz/internal/engine"
)

var (
	// ErrRunInProgress is returned when an operation needs the controller to
	// be idle.
	ErrRunInProgress = errors.New("controller: run in progress")

	// ErrAbnormalTermination marks a run whose procedure panicked.
	ErrAbnormalTermination = errors.New("controller: run terminated abnormally")
)

// RunError wraps a failure with the run it happened in.
type RunError struct {
	Algorithm engine.Algorithm
	Step      int
	Cause     any
	Wrapped   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%v (%s, step %d): %v", e.Wrapped, e.Algorithm, e.Step, e.Cause)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
