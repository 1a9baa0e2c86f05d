package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/adapter"
)

// GetMessageController handles the fetch-messages endpoint only.
type GetMessageController struct {
	uc *usecase.GetMessageUseCase
}

func NewGetMessageController(pool *pgxpool.Pool) *GetMessageController {
	return &GetMessageController{uc: usecase.NewGetMessageUseCase(repoAdapter.NewPgChatRepository(pool))}
}

func (ctl *GetMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		if chatID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId is required"})
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		msgs, err := ctl.uc.Execute(c.Request.Context(), usecase.GetMessageInput{
			ConversationID: chatID,
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, msgs)
	}
}
