package usecase

import (
	"context"
	"fmt"
	"strings"

	"taskboard_backend/internal/feature/projects/domain/entity"
)

// ProjectRepository abstracts the persistence layer for project entities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type ProjectRepository interface {
	// Create persists a new project.
	Create(ctx context.Context, project *entity.Project) error

	// ListByOwner returns all projects owned by ownerID.
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Project, error)

	// FindOwned retrieves a project after proving ownership. A missing
	// project and a foreign project both yield ErrProjectNotFound.
	FindOwned(ctx context.Context, userID, projectID uint) (*entity.Project, error)

	// UpdateFields applies a partial name/description update. Nil fields
	// are left untouched.
	UpdateFields(ctx context.Context, userID, projectID uint, name, description *string) (*entity.Project, error)

	// DeleteCascade removes the project and all of its tasks in a single
	// transaction.
	DeleteCascade(ctx context.Context, userID, projectID uint) error
}

// TaskCache invalidates cached task listings after a project's tasks are
// cascade-deleted. Implemented by the caching task repository.
type TaskCache interface {
	InvalidateProject(ctx context.Context, projectID uint)
}

// projectUsecase implements ownership-scoped project CRUD.
type projectUsecase struct {
	repo  ProjectRepository
	cache TaskCache // may be nil when no cache is configured
}

// NewProjectUsecase creates a new instance of projectUsecase.
func NewProjectUsecase(repo ProjectRepository, cache TaskCache) *projectUsecase {
	return &projectUsecase{repo: repo, cache: cache}
}

// Create persists a project owned by userID.
func (u *projectUsecase) Create(ctx context.Context, userID uint, name, description string) (*entity.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}

	project := &entity.Project{
		Name:        name,
		Description: description,
		OwnerID:     userID,
	}
	if err := u.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns the caller's projects.
func (u *projectUsecase) List(ctx context.Context, userID uint) ([]entity.Project, error) {
	return u.repo.ListByOwner(ctx, userID)
}

// Get returns a single owned project.
func (u *projectUsecase) Get(ctx context.Context, userID, projectID uint) (*entity.Project, error) {
	return u.repo.FindOwned(ctx, userID, projectID)
}

// Update applies a partial name/description update to an owned project.
func (u *projectUsecase) Update(ctx context.Context, userID, projectID uint, name, description *string) (*entity.Project, error) {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		name = &trimmed
	}
	return u.repo.UpdateFields(ctx, userID, projectID, name, description)
}

// Delete removes an owned project and all of its tasks, then drops any
// cached task listing for it.
func (u *projectUsecase) Delete(ctx context.Context, userID, projectID uint) error {
	if err := u.repo.DeleteCascade(ctx, userID, projectID); err != nil {
		return err
	}
	if u.cache != nil {
		u.cache.InvalidateProject(ctx, projectID)
	}
	return nil
}
