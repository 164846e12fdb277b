package api

import (
	projectentity "taskboard_backend/internal/feature/projects/domain/entity"
	taskentity "taskboard_backend/internal/feature/tasks/domain/entity"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a simple confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenPairResponse carries a freshly issued access/refresh token pair.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ProjectResponse is the outward representation of a project.
type ProjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TaskResponse is the outward representation of a task.
type TaskResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ProjectID   uint   `json:"projectId"`
	Status      string `json:"status"`
	Rank        int    `json:"rank"`
}

// ColumnResponse is one board column with its tasks in rank order.
type ColumnResponse struct {
	Status string         `json:"status"`
	Tasks  []TaskResponse `json:"tasks"`
}

// BoardResponse is the full board projection for a project.
type BoardResponse struct {
	ProjectID uint             `json:"projectId"`
	Columns   []ColumnResponse `json:"columns"`
}

// NewProjectResponse converts a project entity to its outward shape.
func NewProjectResponse(p *projectentity.Project) ProjectResponse {
	return ProjectResponse{ID: p.ID, Name: p.Name, Description: p.Description}
}

// NewTaskResponse converts a task entity to its outward shape.
func NewTaskResponse(t *taskentity.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		ProjectID:   t.ProjectID,
		Status:      string(t.Status),
		Rank:        t.Rank,
	}
}
