package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/adapter"
)

// AccessChatController handles the access-or-create one-to-one chat endpoint
// only (one controller per endpoint).
type AccessChatController struct {
	uc *usecase.AccessChatUseCase
}

func NewAccessChatController(pool *pgxpool.Pool) *AccessChatController {
	return &AccessChatController{uc: usecase.NewAccessChatUseCase(repoAdapter.NewPgChatRepository(pool))}
}

type accessChatRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func (ctl *AccessChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}

		var req accessChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}

		conv, err := ctl.uc.Execute(c.Request.Context(), usecase.AccessChatInput{
			CurrentUserID: ident.ID,
			TargetUserID:  req.UserID,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, conv)
	}
}
