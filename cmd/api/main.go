package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "github.com/igwed93/reverb-chat-app-backend/cmd/api/router/v1"
	cacheAdapter "github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/cache/adapter"
	"github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/database"
	queueAdapter "github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/queue/adapter"
	"github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/realtime"
	authAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth/adapter"
	chatTask "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/task"
	userTask "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/task"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	if err := database.RunMigrations(os.Getenv("DB_URL")); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Connect to the database on startup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(ctx)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache, err := cacheAdapter.NewRedisAdapter()
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer cache.Close()

	queueClient, err := queueAdapter.NewAsynqClientFromEnv()
	if err != nil {
		log.Fatalf("failed to create queue client: %v", err)
	}
	defer queueClient.Close()

	queueServer, err := queueAdapter.NewAsynqServer()
	if err != nil {
		log.Fatalf("failed to create queue server: %v", err)
	}
	chatTask.RegisterMarkDeliveredTask(queueServer, pool)
	userTask.RegisterSetPresenceTask(queueServer, pool)

	go func() {
		if err := queueServer.Run(context.Background()); err != nil {
			slog.Error("queue server stopped", "err", err)
		}
	}()

	router := realtime.NewRouter()
	defer router.Close()

	authenticator := authAdapter.NewDevAuthenticator(pool)

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, pool, cache, queueClient, router, authenticator)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start HTTP server (blocks until shutdown)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
