package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/usecase"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/persistence/repository/adapter"
)

// LogoutController handles the logout endpoint only. It records the Offline
// status and last-seen time; token revocation is the token service's job.
type LogoutController struct {
	uc *usecase.LogoutUseCase
}

func NewLogoutController(pool *pgxpool.Pool) *LogoutController {
	return &LogoutController{uc: usecase.NewLogoutUseCase(repoAdapter.NewPgUserRepository(pool))}
}

func (ctl *LogoutController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}

		if err := ctl.uc.Execute(c.Request.Context(), ident.ID); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}
