package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	tasksadapters "taskboard_backend/internal/feature/tasks/adapters"
	"taskboard_backend/internal/platform/cache"
)

// NewTaskRepository creates the task repository wrapped in the Redis
// listing cache. With a nil Redis client the cache layer becomes a
// pass-through, so callers always get the same interface.
func NewTaskRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) *cache.CachingTaskRepository {
	repo := tasksadapters.NewTaskPostgres(db)
	return cache.NewCachingTaskRepository(rdb, ttl, repo, "tasks")
}
