// Package usecase implements the business logic for the projects feature.
package usecase

import "errors"

var (
	// ErrProjectNotFound is returned when a project does not exist or is
	// not owned by the requesting user. The two cases are deliberately
	// indistinguishable so callers cannot probe for foreign project IDs.
	ErrProjectNotFound = errors.New("project not found")

	// ErrValidation is returned for structurally invalid input, before any
	// persistence is attempted.
	ErrValidation = errors.New("invalid input")
)
