package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/adapter"
)

// FetchChatsController handles the list-my-chats endpoint only.
type FetchChatsController struct {
	uc *usecase.FetchChatsUseCase
}

func NewFetchChatsController(pool *pgxpool.Pool) *FetchChatsController {
	return &FetchChatsController{uc: usecase.NewFetchChatsUseCase(repoAdapter.NewPgChatRepository(pool))}
}

func (ctl *FetchChatsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}

		convs, err := ctl.uc.Execute(c.Request.Context(), usecase.FetchChatsInput{UserID: ident.ID})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, convs)
	}
}
