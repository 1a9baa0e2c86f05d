package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth"
	chat "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/domain"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/adapter"
)

// SendMessageController handles the send-message endpoint only. The created
// message is returned synchronously; realtime fan-out happens when the client
// re-announces the message over its socket.
type SendMessageController struct {
	uc *usecase.SendMessageUseCase
}

func NewSendMessageController(pool *pgxpool.Pool) *SendMessageController {
	return &SendMessageController{uc: usecase.NewSendMessageUseCase(repoAdapter.NewPgChatRepository(pool))}
}

type sendMessageRequest struct {
	ChatID  string  `json:"chatId" binding:"required"`
	Content string  `json:"content"`
	Type    string  `json:"type"`
	FileURL *string `json:"fileUrl"`
}

func (ctl *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId is required"})
			return
		}

		msg, err := ctl.uc.Execute(c.Request.Context(), usecase.SendMessageInput{
			ConversationID: req.ChatID,
			Sender: chat.Sender{
				ID:        ident.ID,
				Username:  ident.Username,
				AvatarURL: ident.AvatarURL,
			},
			Body:          req.Content,
			MsgType:       chat.MessageType(req.Type),
			AttachmentURL: req.FileURL,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}
