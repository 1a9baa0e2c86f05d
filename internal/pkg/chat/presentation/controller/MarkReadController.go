package controller

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/realtime"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/adapter"
)

// MarkReadController handles the mark-messages-read endpoint only. After the
// read pipeline commits it pushes an advisory "messages read" event to the
// other participants' live sockets; delivery is best-effort.
type MarkReadController struct {
	uc     *usecase.MarkReadUseCase
	router *realtime.Router
}

func NewMarkReadController(pool *pgxpool.Pool, router *realtime.Router) *MarkReadController {
	return &MarkReadController{
		uc:     usecase.NewMarkReadUseCase(repoAdapter.NewPgChatRepository(pool)),
		router: router,
	}
}

type markReadRequest struct {
	ChatID string `json:"chatId" binding:"required"`
}

type messagesReadFrame struct {
	Type     string `json:"type"`
	ChatID   string `json:"chatId"`
	ReaderID string `json:"readerId"`
}

func (ctl *MarkReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}

		var req markReadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId is required"})
			return
		}

		result, err := ctl.uc.Execute(c.Request.Context(), usecase.MarkReadInput{
			UserID:         ident.ID,
			ConversationID: req.ChatID,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		if payload, err := json.Marshal(messagesReadFrame{
			Type:     EventMessagesRead,
			ChatID:   req.ChatID,
			ReaderID: ident.ID,
		}); err == nil {
			for _, id := range result.OtherParticipants {
				ctl.router.NotifyUser(id, payload)
			}
		}

		c.JSON(http.StatusOK, gin.H{"updated": result.MessagesUpdated})
	}
}
