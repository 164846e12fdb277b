package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"taskboard_backend/internal/feature/tasks/domain/entity"
)

// TaskRepository abstracts the persistence layer for task entities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
//
// Every method takes the requesting user's ID and must behave identically
// for a missing resource and a resource owned by someone else. Operations
// that touch more than one row (Insert's rank assignment, Move's sibling
// shifts) must execute as a single transaction.
type TaskRepository interface {
	// Insert persists a new task, placing it at the end of the initial
	// column of its project: rank = max(partition)+1, or 0 when empty.
	// Returns ErrProjectNotFound if the project is absent or not owned.
	Insert(ctx context.Context, userID uint, task *entity.Task) error

	// FindOwned retrieves a task after proving the caller owns its parent
	// project. Returns ErrTaskNotFound otherwise.
	FindOwned(ctx context.Context, userID, taskID uint) (*entity.Task, error)

	// ListByProject returns all tasks of an owned project, ordered by rank.
	ListByProject(ctx context.Context, userID, projectID uint) ([]entity.Task, error)

	// UpdateFields applies a partial title/description update. Nil fields
	// are left untouched. Status and rank are never modified here.
	UpdateFields(ctx context.Context, userID, taskID uint, title, description *string) (*entity.Task, error)

	// Move relocates a task to rank within the target column (nil target
	// keeps the current column), shifting displaced siblings so no two
	// tasks in a (project, status) partition share a rank. Returns
	// ErrMoveConflict when a concurrent move serialization failure is
	// detected.
	Move(ctx context.Context, userID, taskID uint, target *entity.Status, rank int) (*entity.Task, error)

	// Delete removes a task. Remaining siblings keep their ranks; gaps
	// are permitted.
	Delete(ctx context.Context, userID, taskID uint) error
}

// taskUsecase implements the task ordering engine's business rules.
type taskUsecase struct {
	repo TaskRepository
}

// NewTaskUsecase creates a new instance of taskUsecase.
func NewTaskUsecase(repo TaskRepository) *taskUsecase {
	return &taskUsecase{repo: repo}
}

// Create adds a task to the initial column of an owned project.
func (u *taskUsecase) Create(ctx context.Context, userID, projectID uint, title, description string) (*entity.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}

	task := &entity.Task{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
	}
	if err := u.repo.Insert(ctx, userID, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns a single owned task.
func (u *taskUsecase) Get(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	return u.repo.FindOwned(ctx, userID, taskID)
}

// ListByProject returns all tasks of an owned project sorted by
// (column order, rank ascending).
func (u *taskUsecase) ListByProject(ctx context.Context, userID, projectID uint) ([]entity.Task, error) {
	tasks, err := u.repo.ListByProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		ci, cj := entity.ColumnIndex(tasks[i].Status), entity.ColumnIndex(tasks[j].Status)
		if ci != cj {
			return ci < cj
		}
		return tasks[i].Rank < tasks[j].Rank
	})
	return tasks, nil
}

// Update applies a partial title/description update to an owned task.
func (u *taskUsecase) Update(ctx context.Context, userID, taskID uint, title, description *string) (*entity.Task, error) {
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		title = &trimmed
	}
	return u.repo.UpdateFields(ctx, userID, taskID, title, description)
}

// Move places an owned task at newRank within the requested column, or its
// current column when status is nil. A detected rank-partition race is
// retried once before being surfaced as ErrMoveConflict.
func (u *taskUsecase) Move(ctx context.Context, userID, taskID uint, status *string, newRank int) (*entity.Task, error) {
	if newRank < 0 {
		return nil, fmt.Errorf("%w: rank must not be negative", ErrValidation)
	}

	var target *entity.Status
	if status != nil {
		s := entity.Status(*status)
		if !s.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *status)
		}
		target = &s
	}

	task, err := u.repo.Move(ctx, userID, taskID, target, newRank)
	if errors.Is(err, ErrMoveConflict) {
		task, err = u.repo.Move(ctx, userID, taskID, target, newRank)
	}
	return task, err
}

// Remove deletes an owned task without renumbering its former siblings.
func (u *taskUsecase) Remove(ctx context.Context, userID, taskID uint) error {
	return u.repo.Delete(ctx, userID, taskID)
}
