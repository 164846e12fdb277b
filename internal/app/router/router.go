// Package router assembles the Gin engine and wires handlers to routes.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"taskboard_backend/internal/api"
	authhandler "taskboard_backend/internal/feature/auth/transport/handler"
	boardhandler "taskboard_backend/internal/feature/board/transport/handler"
	projecthandler "taskboard_backend/internal/feature/projects/transport/handler"
	taskhandler "taskboard_backend/internal/feature/tasks/transport/handler"
	"taskboard_backend/internal/platform/config"
	httphandler "taskboard_backend/internal/platform/http/handler"
	jwtmw "taskboard_backend/internal/platform/jwt"
	"taskboard_backend/internal/shared/ratelimiter"
)

// rateLimit はクライアントIP単位で認証系エンドポイントへの試行回数を制限します。
func rateLimit(limiter *ratelimiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}

func NewRouter(cfg config.Config, authHandler *authhandler.AuthHandler,
	projects *projecthandler.ProjectHandler, tasks *taskhandler.TaskHandler,
	board *boardhandler.BoardHandler) *gin.Engine {
	r := gin.Default()

	// ブラウザフロントエンド用CORS設定
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{cfg.CORSOrigin}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", httphandler.Health)

	// 認証系はブルートフォース対策のレート制限付き
	authLimiter := ratelimiter.NewLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	public := r.Group("/", rateLimit(authLimiter))
	{
		// 新規ユーザー登録
		public.POST("/signup", authHandler.Signup)
		// ログイン（アクセス/リフレッシュトークン発行）
		public.POST("/login", authHandler.Login)
		// トークンローテーション
		public.POST("/refresh", authHandler.Refresh)
		// セッション失効
		public.POST("/logout", authHandler.Logout)
	}

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(cfg.JWTSecret))
	{
		auth.POST("/projects", projects.Create)
		auth.GET("/projects", projects.List)
		auth.GET("/projects/:id", projects.Get)
		auth.PATCH("/projects/:id", projects.Update)
		auth.DELETE("/projects/:id", projects.Delete)
		auth.GET("/projects/:id/board", board.Get)

		auth.POST("/tasks", tasks.Create)
		auth.GET("/tasks", tasks.List)
		auth.GET("/tasks/:id", tasks.Get)
		auth.PATCH("/tasks/:id", tasks.Update)
		auth.PATCH("/tasks/:id/move", tasks.Move)
		auth.DELETE("/tasks/:id", tasks.Delete)
	}

	return r
}
