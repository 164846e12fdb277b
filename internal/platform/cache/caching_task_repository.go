// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taskboard_backend/internal/feature/tasks/domain/entity"
	"taskboard_backend/internal/feature/tasks/usecase"
)

// CachingTaskRepository decorates a TaskRepository with Redis caching of
// per-project task listings. It implements the decorator pattern,
// transparently adding caching without modifying the underlying repository.
//
// Listings are keyed by (project, user) so a cached entry can never leak
// across ownership boundaries: a caller that does not own the project never
// produced a cache entry and never matches one.
type CachingTaskRepository struct {
	inner     usecase.TaskRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TaskRepository = (*CachingTaskRepository)(nil)

// NewCachingTaskRepository decorates a TaskRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tasks".
func NewCachingTaskRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TaskRepository, namespace string) *CachingTaskRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "tasks"
	}
	return &CachingTaskRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// projectKeyPrefix returns the key prefix shared by all cache entries of a project.
func (c *CachingTaskRepository) projectKeyPrefix(projectID uint) string {
	return fmt.Sprintf("%s:%d:", c.namespace, projectID)
}

// listKey returns the cache key for one (project, user) listing.
func (c *CachingTaskRepository) listKey(projectID, userID uint) string {
	return fmt.Sprintf("%s%d", c.projectKeyPrefix(projectID), userID)
}

// Insert persists a task and invalidates the project's cached listings.
func (c *CachingTaskRepository) Insert(ctx context.Context, userID uint, task *entity.Task) error {
	if err := c.inner.Insert(ctx, userID, task); err != nil {
		return err
	}
	c.InvalidateProject(ctx, task.ProjectID)
	return nil
}

// FindOwned delegates to the underlying repository; single-task reads are
// not cached.
func (c *CachingTaskRepository) FindOwned(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	return c.inner.FindOwned(ctx, userID, taskID)
}

// ListByProject retrieves the project's tasks, checking the cache first and
// falling back to the database on a miss.
func (c *CachingTaskRepository) ListByProject(ctx context.Context, userID, projectID uint) ([]entity.Task, error) {
	if c.rdb == nil {
		return c.inner.ListByProject(ctx, userID, projectID)
	}

	key := c.listKey(projectID, userID)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Task
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.ListByProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		// Best effort: a failed cache write must not fail the read
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// UpdateFields applies the update and invalidates the project's cached listings.
func (c *CachingTaskRepository) UpdateFields(ctx context.Context, userID, taskID uint, title, description *string) (*entity.Task, error) {
	task, err := c.inner.UpdateFields(ctx, userID, taskID, title, description)
	if err != nil {
		return nil, err
	}
	c.InvalidateProject(ctx, task.ProjectID)
	return task, nil
}

// Move applies the move and invalidates the project's cached listings.
func (c *CachingTaskRepository) Move(ctx context.Context, userID, taskID uint, target *entity.Status, rank int) (*entity.Task, error) {
	task, err := c.inner.Move(ctx, userID, taskID, target, rank)
	if err != nil {
		return nil, err
	}
	c.InvalidateProject(ctx, task.ProjectID)
	return task, nil
}

// Delete removes the task and invalidates the project's cached listings.
// The task is fetched first because the delete needs its project ID.
func (c *CachingTaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	var projectID uint
	if c.rdb != nil {
		if task, err := c.inner.FindOwned(ctx, userID, taskID); err == nil {
			projectID = task.ProjectID
		}
	}

	if err := c.inner.Delete(ctx, userID, taskID); err != nil {
		return err
	}
	if projectID != 0 {
		c.InvalidateProject(ctx, projectID)
	}
	return nil
}

// InvalidateProject drops every cached listing of the project.
// It also serves the projects feature after a cascade delete.
func (c *CachingTaskRepository) InvalidateProject(ctx context.Context, projectID uint) {
	if c.rdb == nil {
		return
	}
	// Best effort: don't fail the mutation if cache deletion fails
	_ = c.deleteByPattern(ctx, c.projectKeyPrefix(projectID)+"*")
}

// deleteByPattern removes all keys matching the pattern using SCAN.
func (c *CachingTaskRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
