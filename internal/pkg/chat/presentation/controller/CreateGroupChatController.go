package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/adapter"
)

// CreateGroupChatController handles the create-group-chat endpoint only.
type CreateGroupChatController struct {
	uc *usecase.CreateGroupChatUseCase
}

func NewCreateGroupChatController(pool *pgxpool.Pool) *CreateGroupChatController {
	return &CreateGroupChatController{uc: usecase.NewCreateGroupChatUseCase(repoAdapter.NewPgChatRepository(pool))}
}

type createGroupChatRequest struct {
	Name  string   `json:"name" binding:"required"`
	Users []string `json:"users" binding:"required"`
}

func (ctl *CreateGroupChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}

		var req createGroupChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and users are required"})
			return
		}

		conv, err := ctl.uc.Execute(c.Request.Context(), usecase.CreateGroupChatInput{
			CreatorID: ident.ID,
			Name:      req.Name,
			MemberIDs: req.Users,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, conv)
	}
}
