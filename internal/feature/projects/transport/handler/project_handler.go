// Package handler はprojectsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskboard_backend/internal/api"
	"taskboard_backend/internal/feature/projects/domain/entity"
	"taskboard_backend/internal/feature/projects/usecase"
	jwtmw "taskboard_backend/internal/platform/jwt"
)

// ProjectUsecase はプロジェクト操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler)が定義します。
type ProjectUsecase interface {
	Create(ctx context.Context, userID uint, name, description string) (*entity.Project, error)
	List(ctx context.Context, userID uint) ([]entity.Project, error)
	Get(ctx context.Context, userID, projectID uint) (*entity.Project, error)
	Update(ctx context.Context, userID, projectID uint, name, description *string) (*entity.Project, error)
	Delete(ctx context.Context, userID, projectID uint) error
}

// ProjectHandler はプロジェクト操作のHTTPリクエストを処理します。
type ProjectHandler struct {
	projects ProjectUsecase
}

// NewProjectHandler はProjectHandlerの新しいインスタンスを生成します。
func NewProjectHandler(projects ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// Create は POST /projects を処理します。
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req api.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		h.writeError(c, err, "project create failed")
		return
	}
	c.JSON(http.StatusCreated, api.NewProjectResponse(project))
}

// List は GET /projects を処理します。
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	projects, err := h.projects.List(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "project list failed")
		return
	}

	out := make([]api.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, api.NewProjectResponse(&projects[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get は GET /projects/:id を処理します。
func (h *ProjectHandler) Get(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	projectID, ok := pathID(c)
	if !ok {
		return
	}

	project, err := h.projects.Get(c.Request.Context(), userID, projectID)
	if err != nil {
		h.writeError(c, err, "project get failed")
		return
	}
	c.JSON(http.StatusOK, api.NewProjectResponse(project))
}

// Update は PATCH /projects/:id を処理します。
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	projectID, ok := pathID(c)
	if !ok {
		return
	}

	var req api.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	project, err := h.projects.Update(c.Request.Context(), userID, projectID, req.Name, req.Description)
	if err != nil {
		h.writeError(c, err, "project update failed")
		return
	}
	c.JSON(http.StatusOK, api.NewProjectResponse(project))
}

// Delete は DELETE /projects/:id を処理します。所有タスクも連鎖削除されます。
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	projectID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), userID, projectID); err != nil {
		h.writeError(c, err, "project delete failed")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// writeError はユースケースのエラーをHTTPステータスへ対応付けます。
func (h *ProjectHandler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "project not found"})
	default:
		slog.Error(logMsg, "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// pathID は:idパスパラメータを解析します。不正な場合は400を書き込みfalseを返します。
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uint(id), true
}
