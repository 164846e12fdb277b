// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskboard_backend/internal/api"
	"taskboard_backend/internal/feature/tasks/domain/entity"
	"taskboard_backend/internal/feature/tasks/usecase"
	jwtmw "taskboard_backend/internal/platform/jwt"
)

// TaskUsecase はタスク操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler)が定義します。
type TaskUsecase interface {
	Create(ctx context.Context, userID, projectID uint, title, description string) (*entity.Task, error)
	Get(ctx context.Context, userID, taskID uint) (*entity.Task, error)
	ListByProject(ctx context.Context, userID, projectID uint) ([]entity.Task, error)
	Update(ctx context.Context, userID, taskID uint, title, description *string) (*entity.Task, error)
	Move(ctx context.Context, userID, taskID uint, status *string, newRank int) (*entity.Task, error)
	Remove(ctx context.Context, userID, taskID uint) error
}

// TaskHandler はタスク操作のHTTPリクエストを処理します。
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler はTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create は POST /tasks を処理します。
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req api.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), userID, req.ProjectID, req.Title, req.Description)
	if err != nil {
		h.writeError(c, err, "task create failed")
		return
	}
	c.JSON(http.StatusCreated, api.NewTaskResponse(task))
}

// List は GET /tasks?projectId= を処理します。
// タスクは(ステータスのカラム順, ランク昇順)で返されます。
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	projectID, err := strconv.ParseUint(c.Query("projectId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid projectId"})
		return
	}

	tasks, err := h.tasks.ListByProject(c.Request.Context(), userID, uint(projectID))
	if err != nil {
		h.writeError(c, err, "task list failed")
		return
	}

	out := make([]api.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, api.NewTaskResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get は GET /tasks/:id を処理します。
func (h *TaskHandler) Get(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	taskID, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), userID, taskID)
	if err != nil {
		h.writeError(c, err, "task get failed")
		return
	}
	c.JSON(http.StatusOK, api.NewTaskResponse(task))
}

// Update は PATCH /tasks/:id を処理します。ステータスとランクは変更できません。
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	taskID, ok := pathID(c)
	if !ok {
		return
	}

	var req api.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), userID, taskID, req.Title, req.Description)
	if err != nil {
		h.writeError(c, err, "task update failed")
		return
	}
	c.JSON(http.StatusOK, api.NewTaskResponse(task))
}

// Move は PATCH /tasks/:id/move を処理します。
// リクエストボディは {status?, newRank} で、newRankは移動先カラム内の
// 0始まりの希望位置です。
func (h *TaskHandler) Move(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	taskID, ok := pathID(c)
	if !ok {
		return
	}

	var req api.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	task, err := h.tasks.Move(c.Request.Context(), userID, taskID, req.Status, *req.NewRank)
	if err != nil {
		h.writeError(c, err, "task move failed")
		return
	}
	c.JSON(http.StatusOK, api.NewTaskResponse(task))
}

// Delete は DELETE /tasks/:id を処理します。
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	taskID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.tasks.Remove(c.Request.Context(), userID, taskID); err != nil {
		h.writeError(c, err, "task delete failed")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// writeError はユースケースのエラーをHTTPステータスへ対応付けます。
// 不在と所有権なしは同一の404として返します（存在推測の防止）。
func (h *TaskHandler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "task not found"})
	case errors.Is(err, usecase.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "project not found"})
	case errors.Is(err, usecase.ErrMoveConflict):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "conflicting move, please retry"})
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
