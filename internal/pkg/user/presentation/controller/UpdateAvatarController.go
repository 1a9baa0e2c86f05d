package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/usecase"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/persistence/repository/adapter"
)

// UpdateAvatarController handles the avatar-update endpoint only. The client
// uploads the image to external storage first and sends back the URL.
type UpdateAvatarController struct {
	uc *usecase.UpdateAvatarUseCase
}

func NewUpdateAvatarController(pool *pgxpool.Pool) *UpdateAvatarController {
	return &UpdateAvatarController{uc: usecase.NewUpdateAvatarUseCase(repoAdapter.NewPgUserRepository(pool))}
}

type updateAvatarRequest struct {
	AvatarURL string `json:"avatarUrl" binding:"required"`
}

func (ctl *UpdateAvatarController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}

		var req updateAvatarRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "avatarUrl is required"})
			return
		}

		if err := ctl.uc.Execute(c.Request.Context(), usecase.UpdateAvatarInput{
			UserID:    ident.ID,
			AvatarURL: req.AvatarURL,
		}); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "avatar updated"})
	}
}
