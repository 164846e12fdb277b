// Package handler はboardフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskboard_backend/internal/api"
	"taskboard_backend/internal/feature/board/usecase"
	taskusecase "taskboard_backend/internal/feature/tasks/usecase"
	jwtmw "taskboard_backend/internal/platform/jwt"
)

// BoardUsecase はボード射影のユースケースを定義します。
type BoardUsecase interface {
	Get(ctx context.Context, userID, projectID uint) ([]usecase.Column, error)
}

// BoardHandler はボード取得のHTTPリクエストを処理します。
type BoardHandler struct {
	board BoardUsecase
}

// NewBoardHandler はBoardHandlerの新しいインスタンスを生成します。
func NewBoardHandler(board BoardUsecase) *BoardHandler {
	return &BoardHandler{board: board}
}

// Get は GET /projects/:id/board を処理します。
// プロジェクトのタスクをカラムごとにランク昇順で返します。
func (h *BoardHandler) Get(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid id"})
		return
	}

	columns, err := h.board.Get(c.Request.Context(), userID, uint(projectID))
	if err != nil {
		if errors.Is(err, taskusecase.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "project not found"})
			return
		}
		slog.Error("board get failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	out := api.BoardResponse{ProjectID: uint(projectID), Columns: make([]api.ColumnResponse, 0, len(columns))}
	for _, col := range columns {
		tasks := make([]api.TaskResponse, 0, len(col.Tasks))
		for i := range col.Tasks {
			tasks = append(tasks, api.NewTaskResponse(&col.Tasks[i]))
		}
		out.Columns = append(out.Columns, api.ColumnResponse{Status: string(col.Status), Tasks: tasks})
	}
	c.JSON(http.StatusOK, out)
}
