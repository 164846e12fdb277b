package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskboard_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(ctx context.Context, id uint) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

// mockSessionRepository is a mock implementation of the SessionRepository interface.
type mockSessionRepository struct {
	CreateFunc               func(ctx context.Context, session *entity.Session) error
	FindByIDFunc             func(ctx context.Context, id string) (*entity.Session, error)
	FindByUserIDFunc         func(ctx context.Context, userID uint) ([]*entity.Session, error)
	RevokeFunc               func(ctx context.Context, id string) error
	RevokeAllByUserIDFunc    func(ctx context.Context, userID uint) error
	DeleteExpiredFunc        func(ctx context.Context) (int64, error)
	CountByUserIDFunc        func(ctx context.Context, userID uint) (int64, error)
	DeleteOldestByUserIDFunc func(ctx context.Context, userID uint) error
}

func (m *mockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrSessionNotFound
}

func (m *mockSessionRepository) FindByUserID(ctx context.Context, userID uint) ([]*entity.Session, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockSessionRepository) Revoke(ctx context.Context, id string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, id)
	}
	return nil
}

func (m *mockSessionRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	if m.RevokeAllByUserIDFunc != nil {
		return m.RevokeAllByUserIDFunc(ctx, userID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return 0, nil
}

func (m *mockSessionRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	if m.CountByUserIDFunc != nil {
		return m.CountByUserIDFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockSessionRepository) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	if m.DeleteOldestByUserIDFunc != nil {
		return m.DeleteOldestByUserIDFunc(ctx, userID)
	}
	return nil
}

// mockJWTGenerator is a mock implementation of the JWTGenerator interface.
type mockJWTGenerator struct {
	// GenerateTokenFunc is called when the GenerateToken method is invoked.
	GenerateTokenFunc func(userID uint, email string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	// Default: return a dummy token
	return "mock-jwt-token", nil
}

func TestAuthUsecase_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("successful signup", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				// Verify that the password is hashed
				if len(user.Password) == 0 || user.Password == "password123" {
					t.Errorf("password is not hashed")
				}
				// Verify that it's a valid bcrypt hash
				if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockSessionRepository{}, &mockJWTGenerator{}, time.Hour)
		err := uc.Signup(ctx, "test@example.com", "password123")

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("password too short", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Error("Create must not be called for a weak password")
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockSessionRepository{}, &mockJWTGenerator{}, time.Hour)
		err := uc.Signup(ctx, "test@example.com", "short")

		if err == nil {
			t.Fatal("expected error but got nil")
		}
	})

	t.Run("duplicate email surfaces sentinel", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockSessionRepository{}, &mockJWTGenerator{}, time.Hour)
		err := uc.Signup(ctx, "test@example.com", "password123")

		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got: %v", err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()

	// Hashed password for testing
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:       1,
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	t.Run("successful login issues token pair and session", func(t *testing.T) {
		var created *entity.Session
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}
		mockSessions := &mockSessionRepository{
			CreateFunc: func(ctx context.Context, session *entity.Session) error {
				created = session
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockSessions, &mockJWTGenerator{}, time.Hour)
		pair, err := uc.Login(ctx, "test@example.com", "password123", SessionMeta{UserAgent: "go-test", IPAddress: "127.0.0.1"})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pair.AccessToken != "mock-jwt-token" {
			t.Errorf("expected access token 'mock-jwt-token', got: '%s'", pair.AccessToken)
		}
		if len(pair.RefreshToken) != 64 {
			t.Errorf("expected 64-character refresh token, got %d characters", len(pair.RefreshToken))
		}
		if created == nil {
			t.Fatal("session was not persisted")
		}
		if created.ID != pair.RefreshToken {
			t.Error("session ID must equal the refresh token")
		}
		if created.UserID != testUser.ID {
			t.Errorf("expected session userID %d, got %d", testUser.ID, created.UserID)
		}
		if created.UserAgent != "go-test" || created.IPAddress != "127.0.0.1" {
			t.Error("session metadata was not recorded")
		}
	})

	t.Run("user not found", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, ErrUserNotFound
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockSessionRepository{}, &mockJWTGenerator{}, time.Hour)
		_, err := uc.Login(ctx, "wrong@example.com", "password123", SessionMeta{})

		if err == nil {
			t.Fatal("expected error but got nil")
		}
		expectedErrMsg := "invalid email or password"
		if err.Error() != expectedErrMsg {
			t.Errorf("expected error message '%s', got: '%s'", expectedErrMsg, err.Error())
		}
	})

	t.Run("incorrect password", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockSessionRepository{}, &mockJWTGenerator{}, time.Hour)
		_, err := uc.Login(ctx, "test@example.com", "wrong-password", SessionMeta{})

		if err == nil {
			t.Fatal("expected error but got nil")
		}
		expectedErrMsg := "invalid email or password"
		if err.Error() != expectedErrMsg {
			t.Errorf("expected error message '%s', got: '%s'", expectedErrMsg, err.Error())
		}
	})

	t.Run("session cap evicts oldest", func(t *testing.T) {
		deletedOldest := false
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}
		mockSessions := &mockSessionRepository{
			CountByUserIDFunc: func(ctx context.Context, userID uint) (int64, error) {
				return 5, nil
			},
			DeleteOldestByUserIDFunc: func(ctx context.Context, userID uint) error {
				deletedOldest = true
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockSessions, &mockJWTGenerator{}, time.Hour)
		_, err := uc.Login(ctx, "test@example.com", "password123", SessionMeta{})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deletedOldest {
			t.Error("expected the oldest session to be evicted at the cap")
		}
	})

	t.Run("JWT generation failure", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(userID uint, email string) (string, error) {
				return "", errors.New("failed to sign token")
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockSessionRepository{}, mockJWT, time.Hour)
		_, err := uc.Login(ctx, "test@example.com", "password123", SessionMeta{})

		if err == nil {
			t.Fatal("expected error but got nil")
		}
		expectedErrMsg := "failed to generate token: failed to sign token"
		if err.Error() != expectedErrMsg {
			t.Errorf("expected error message '%s', got: '%s'", expectedErrMsg, err.Error())
		}
	})
}

func TestAuthUsecase_Refresh(t *testing.T) {
	ctx := context.Background()

	validToken := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" // 64 hex chars
	testUser := &entity.User{ID: 7, Email: "test@example.com"}

	activeSession := func() *entity.Session {
		return &entity.Session{
			ID:        validToken,
			UserID:    testUser.ID,
			CreatedAt: time.Now().Add(-time.Minute),
			ExpiresAt: time.Now().Add(time.Hour),
		}
	}

	t.Run("successful refresh rotates the session", func(t *testing.T) {
		revoked := ""
		var created *entity.Session
		mockRepo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return testUser, nil
			},
		}
		mockSessions := &mockSessionRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Session, error) {
				return activeSession(), nil
			},
			RevokeFunc: func(ctx context.Context, id string) error {
				revoked = id
				return nil
			},
			CreateFunc: func(ctx context.Context, session *entity.Session) error {
				created = session
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockSessions, &mockJWTGenerator{}, time.Hour)
		pair, err := uc.Refresh(ctx, validToken, SessionMeta{})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if revoked != validToken {
			t.Error("old session was not revoked")
		}
		if created == nil {
			t.Fatal("new session was not created")
		}
		if pair.RefreshToken == validToken {
			t.Error("refresh token was not rotated")
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockSessionRepository{}, &mockJWTGenerator{}, time.Hour)

		for _, token := range []string{"", "short", "zz" + validToken[2:]} {
			_, err := uc.Refresh(ctx, token, SessionMeta{})
			if !errors.Is(err, ErrInvalidRefreshToken) {
				t.Errorf("token %q: expected ErrInvalidRefreshToken, got: %v", token, err)
			}
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockSessionRepository{}, &mockJWTGenerator{}, time.Hour)
		_, err := uc.Refresh(ctx, validToken, SessionMeta{})

		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got: %v", err)
		}
	})

	t.Run("revoked session", func(t *testing.T) {
		now := time.Now()
		mockSessions := &mockSessionRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Session, error) {
				s := activeSession()
				s.RevokedAt = &now
				return s, nil
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, mockSessions, &mockJWTGenerator{}, time.Hour)
		_, err := uc.Refresh(ctx, validToken, SessionMeta{})

		if !errors.Is(err, ErrSessionRevoked) {
			t.Errorf("expected ErrSessionRevoked, got: %v", err)
		}
	})

	t.Run("expired session", func(t *testing.T) {
		mockSessions := &mockSessionRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Session, error) {
				s := activeSession()
				s.ExpiresAt = time.Now().Add(-time.Minute)
				return s, nil
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, mockSessions, &mockJWTGenerator{}, time.Hour)
		_, err := uc.Refresh(ctx, validToken, SessionMeta{})

		if !errors.Is(err, ErrSessionExpired) {
			t.Errorf("expected ErrSessionExpired, got: %v", err)
		}
	})
}

func TestAuthUsecase_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the session", func(t *testing.T) {
		revoked := ""
		mockSessions := &mockSessionRepository{
			RevokeFunc: func(ctx context.Context, id string) error {
				revoked = id
				return nil
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, mockSessions, &mockJWTGenerator{}, time.Hour)
		if err := uc.Logout(ctx, "some-token"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if revoked != "some-token" {
			t.Error("session was not revoked")
		}
	})

	t.Run("unknown token is idempotent", func(t *testing.T) {
		mockSessions := &mockSessionRepository{
			RevokeFunc: func(ctx context.Context, id string) error {
				return ErrSessionNotFound
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, mockSessions, &mockJWTGenerator{}, time.Hour)
		if err := uc.Logout(ctx, "unknown"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
