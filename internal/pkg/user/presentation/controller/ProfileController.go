package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/usecase"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/persistence/repository/adapter"
)

// ProfileController handles the own-profile endpoint only (one controller
// per endpoint).
type ProfileController struct {
	uc *usecase.GetProfileUseCase
}

func NewProfileController(pool *pgxpool.Pool) *ProfileController {
	return &ProfileController{uc: usecase.NewGetProfileUseCase(repoAdapter.NewPgUserRepository(pool))}
}

func (ctl *ProfileController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}

		u, err := ctl.uc.Execute(c.Request.Context(), ident.ID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, u)
	}
}
