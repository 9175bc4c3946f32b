package sampler

import (
	"errors"
	"fmt"
)

// Stage names the part of a run that failed.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageParse     Stage = "parse"
	StageCancelled Stage = "cancelled"
)

// RunError is the single fatal failure of a sampling run.
type RunError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface for RunError.
func (e *RunError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

// Unwrap returns the triggering cause.
func (e *RunError) Unwrap() error {
	return e.Err
}

// StageOf returns the failed stage of err, or "" if err is not a RunError.
func StageOf(err error) Stage {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr.Stage
	}
	return ""
}
