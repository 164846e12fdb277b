package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard_backend/internal/feature/projects/domain/entity"
	"taskboard_backend/internal/feature/projects/usecase"
	jwtmw "taskboard_backend/internal/platform/jwt"
)

// mockProjectUsecase is a mock implementation of the ProjectUsecase interface.
type mockProjectUsecase struct {
	CreateFunc func(ctx context.Context, userID uint, name, description string) (*entity.Project, error)
	ListFunc   func(ctx context.Context, userID uint) ([]entity.Project, error)
	GetFunc    func(ctx context.Context, userID, projectID uint) (*entity.Project, error)
	UpdateFunc func(ctx context.Context, userID, projectID uint, name, description *string) (*entity.Project, error)
	DeleteFunc func(ctx context.Context, userID, projectID uint) error
}

func (m *mockProjectUsecase) Create(ctx context.Context, userID uint, name, description string) (*entity.Project, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, name, description)
	}
	return &entity.Project{ID: 1, Name: name, OwnerID: userID}, nil
}

func (m *mockProjectUsecase) List(ctx context.Context, userID uint) ([]entity.Project, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockProjectUsecase) Get(ctx context.Context, userID, projectID uint) (*entity.Project, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, projectID)
	}
	return nil, usecase.ErrProjectNotFound
}

func (m *mockProjectUsecase) Update(ctx context.Context, userID, projectID uint, name, description *string) (*entity.Project, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, projectID, name, description)
	}
	return nil, usecase.ErrProjectNotFound
}

func (m *mockProjectUsecase) Delete(ctx context.Context, userID, projectID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, projectID)
	}
	return usecase.ErrProjectNotFound
}

func newTestRouter(h *ProjectHandler, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
	})
	router.POST("/projects", h.Create)
	router.GET("/projects", h.List)
	router.GET("/projects/:id", h.Get)
	router.PATCH("/projects/:id", h.Update)
	router.DELETE("/projects/:id", h.Delete)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProjectHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           gin.H
		mockCreateFunc func(ctx context.Context, userID uint, name, description string) (*entity.Project, error)
		expectedStatus int
	}{
		{
			name:           "success",
			body:           gin.H{"name": "roadmap"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           gin.H{"description": "no name"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "whitespace-only name is rejected by the usecase",
			body: gin.H{"name": "  "},
			mockCreateFunc: func(ctx context.Context, userID uint, name, description string) (*entity.Project, error) {
				return nil, usecase.ErrValidation
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProjectHandler(&mockProjectUsecase{CreateFunc: tt.mockCreateFunc})
			router := newTestRouter(h, 1)

			w := doJSON(t, router, http.MethodPost, "/projects", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestProjectHandler_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewProjectHandler(&mockProjectUsecase{
			GetFunc: func(ctx context.Context, userID, projectID uint) (*entity.Project, error) {
				return &entity.Project{ID: projectID, Name: "roadmap", OwnerID: userID}, nil
			},
		})
		router := newTestRouter(h, 1)

		w := doJSON(t, router, http.MethodGet, "/projects/5", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, "roadmap", out["name"])
		assert.NotContains(t, out, "ownerId", "owner must not leak outward")
	})

	t.Run("missing and foreign produce identical responses", func(t *testing.T) {
		h := NewProjectHandler(&mockProjectUsecase{})
		router := newTestRouter(h, 1)

		missing := doJSON(t, router, http.MethodGet, "/projects/998", nil)
		foreign := doJSON(t, router, http.MethodGet, "/projects/999", nil)

		assert.Equal(t, http.StatusNotFound, missing.Code)
		assert.Equal(t, missing.Code, foreign.Code)
		assert.Equal(t, missing.Body.String(), foreign.Body.String())
	})
}

func TestProjectHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewProjectHandler(&mockProjectUsecase{
			DeleteFunc: func(ctx context.Context, userID, projectID uint) error { return nil },
		})
		router := newTestRouter(h, 1)

		w := doJSON(t, router, http.MethodDelete, "/projects/5", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("foreign project", func(t *testing.T) {
		h := NewProjectHandler(&mockProjectUsecase{})
		router := newTestRouter(h, 1)

		w := doJSON(t, router, http.MethodDelete, "/projects/5", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
