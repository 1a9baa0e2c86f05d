package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/cache/port"
	qport "github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/queue/port"
	"github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/realtime"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/presentation/controller"
)

// RegisterRoutes registers chat-related HTTP endpoints under the given router
// group. It constructs per-endpoint controllers and binds them directly to
// routes; the group is expected to carry the auth middleware already.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, cache cacheport.Cache, queue qport.Client, router *realtime.Router) {
	accessCtl := controller.NewAccessChatController(pool)
	groupCtl := controller.NewCreateGroupChatController(pool)
	fetchCtl := controller.NewFetchChatsController(pool)
	sendCtl := controller.NewSendMessageController(pool)
	getMsgCtl := controller.NewGetMessageController(pool)
	markReadCtl := controller.NewMarkReadController(pool, router)
	socketCtl := controller.NewChatSocketController(pool, router, cache, queue)

	// POST /api/v1/chats -> access or create a one-to-one chat
	g.POST("/chats", accessCtl.Handle())

	// POST /api/v1/chats/group -> create a group chat
	g.POST("/chats/group", groupCtl.Handle())

	// GET /api/v1/chats -> list the caller's chats
	g.GET("/chats", fetchCtl.Handle())

	// POST /api/v1/messages -> send a message
	g.POST("/messages", sendCtl.Handle())

	// GET /api/v1/messages/:chatId -> fetch messages in a chat
	g.GET("/messages/:chatId", getMsgCtl.Handle())

	// PUT /api/v1/messages/read -> mark a chat's messages as read
	g.PUT("/messages/read", markReadCtl.Handle())

	// GET /api/v1/ws -> websocket endpoint for realtime traffic
	g.GET("/ws", socketCtl.Handle())
}
