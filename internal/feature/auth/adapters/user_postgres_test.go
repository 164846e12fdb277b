package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskboard_backend/internal/feature/auth/domain/entity"
	"taskboard_backend/internal/feature/auth/usecase"
)

// setupUserTestDB prepares an in-memory SQLite database for user testing.
// TranslateError normalizes unique-constraint violations across drivers.
func setupUserTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestUserPostgres_Create(t *testing.T) {
	t.Parallel()

	db := setupUserTestDB(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()

	user := &entity.User{Email: "alice@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	// Duplicate email maps to the sentinel
	dup := &entity.User{Email: "alice@example.com", Password: "other"}
	err := repo.Create(ctx, dup)
	assert.True(t, errors.Is(err, usecase.ErrEmailAlreadyExists), "expected ErrEmailAlreadyExists, got: %v", err)
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	t.Parallel()

	db := setupUserTestDB(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()

	seeded := &entity.User{Email: "bob@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, seeded))

	found, err := repo.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, "hashed", found.Password)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.True(t, errors.Is(err, usecase.ErrUserNotFound))
}

func TestUserPostgres_FindByID(t *testing.T) {
	t.Parallel()

	db := setupUserTestDB(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()

	seeded := &entity.User{Email: "carol@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, seeded))

	found, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", found.Email)

	_, err = repo.FindByID(ctx, 9999)
	assert.True(t, errors.Is(err, usecase.ErrUserNotFound))
}
