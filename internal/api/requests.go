// Package api defines the JSON request and response shapes shared by all
// transport handlers.
package api

// SignupRequest represents the request body for the /signup endpoint.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for the /login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the request body for the /refresh and /logout endpoints.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateProjectRequest represents the request body for POST /projects.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"omitempty"`
}

// UpdateProjectRequest represents the request body for PATCH /projects/:id.
// Nil fields are left untouched.
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty"`
}

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	ProjectID   uint   `json:"projectId" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"omitempty"`
}

// UpdateTaskRequest represents the request body for PATCH /tasks/:id.
// Status and rank are never updated here; moves go through MoveTaskRequest.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty"`
}

// MoveTaskRequest represents the request body for PATCH /tasks/:id/move.
// NewRank is the caller-observed zero-based position within the destination
// column. A nil Status keeps the task in its current column.
type MoveTaskRequest struct {
	Status  *string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	NewRank *int    `json:"newRank" binding:"required,min=0"`
}
