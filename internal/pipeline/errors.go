// Package pipeline runs the two-stage backup pipeline: the backuper's
// standard output feeds the reporter's standard input, and the reporter's
// exit code is the result of the whole run.
package pipeline

import "errors"

var (
	// ErrNilConfig indicates that a nil config was provided.
	ErrNilConfig = errors.New("config cannot be nil")

	// ErrInterpreterNotFound indicates the configured interpreter does not
	// resolve to an executable. Nothing is spawned in that case.
	ErrInterpreterNotFound = errors.New("interpreter not found or not executable")
)
