package main

import (
	"log/slog"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"taskboard_backend/internal/app/di"
	"taskboard_backend/internal/app/router"
	authadapters "taskboard_backend/internal/feature/auth/adapters"
	authhandler "taskboard_backend/internal/feature/auth/transport/handler"
	authusecase "taskboard_backend/internal/feature/auth/usecase"
	boardhandler "taskboard_backend/internal/feature/board/transport/handler"
	boardusecase "taskboard_backend/internal/feature/board/usecase"
	projectsadapters "taskboard_backend/internal/feature/projects/adapters"
	projecthandler "taskboard_backend/internal/feature/projects/transport/handler"
	projectsusecase "taskboard_backend/internal/feature/projects/usecase"
	taskhandler "taskboard_backend/internal/feature/tasks/transport/handler"
	tasksusecase "taskboard_backend/internal/feature/tasks/usecase"
	"taskboard_backend/internal/platform/config"
	infradb "taskboard_backend/internal/platform/db"
	jwtmw "taskboard_backend/internal/platform/jwt"
	infraredis "taskboard_backend/internal/platform/redis"
)

func main() {
	cfg := config.Load()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		slog.Warn("redis unavailable, running without cache", "error", err)
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	projectRepo := projectsadapters.NewProjectPostgres(db)
	// タスク一覧はRedisキャッシュでラップ（TTLはアクセストークン寿命と揃える）
	taskRepo := di.NewTaskRepository(rdb, db, cfg.AccessTokenTTL)

	// Usecase
	jwtGen := jwtmw.NewGenerator(cfg.JWTSecret, cfg.AccessTokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen, cfg.RefreshTokenTTL)
	projectUC := projectsusecase.NewProjectUsecase(projectRepo, taskRepo)
	taskUC := tasksusecase.NewTaskUsecase(taskRepo)
	boardUC := boardusecase.NewBoardUsecase(taskRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	projectH := projecthandler.NewProjectHandler(projectUC)
	taskH := taskhandler.NewTaskHandler(taskUC)
	boardH := boardhandler.NewBoardHandler(boardUC)

	// ルータ生成
	r := router.NewRouter(cfg, authH, projectH, taskH, boardH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set, set a strong secret in production")
	}

	if err := r.Run(cfg.Addr); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
