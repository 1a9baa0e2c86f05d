package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/cache/port"
	qport "github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/queue/port"
	"github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/realtime"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth"
	chatHTTP "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/presentation/http"
	userHTTP "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1. Every route
// in the group, the websocket upgrade included, goes through the auth
// middleware.
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, cache cacheport.Cache, queue qport.Client, router *realtime.Router, authenticator auth.Authenticator) {
	v1 := r.Group("/api/v1")
	v1.Use(auth.RequireAuth(authenticator))

	chatHTTP.RegisterRoutes(v1, pool, cache, queue, router)
	userHTTP.RegisterRoutes(v1, pool)
}
