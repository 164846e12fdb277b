// Package usecase implements the business logic for the tasks feature,
// including the board's positional-ordering engine.
package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when a task does not exist or does not
	// belong to the requesting user. The two cases are deliberately
	// indistinguishable so callers cannot probe for foreign task IDs.
	ErrTaskNotFound = errors.New("task not found")

	// ErrProjectNotFound is returned when the referenced project does not
	// exist or is not owned by the requesting user.
	ErrProjectNotFound = errors.New("project not found")

	// ErrValidation is returned for structurally invalid input, before any
	// persistence is attempted.
	ErrValidation = errors.New("invalid input")

	// ErrMoveConflict is returned when a move transaction lost a race on a
	// rank partition and the retry also failed.
	ErrMoveConflict = errors.New("conflicting concurrent move")
)
