package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/usecase"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/persistence/repository/adapter"
)

// SearchUsersController handles the user-search endpoint only.
type SearchUsersController struct {
	uc *usecase.SearchUsersUseCase
}

func NewSearchUsersController(pool *pgxpool.Pool) *SearchUsersController {
	return &SearchUsersController{uc: usecase.NewSearchUsersUseCase(repoAdapter.NewPgUserRepository(pool))}
}

func (ctl *SearchUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}

		users, err := ctl.uc.Execute(c.Request.Context(), usecase.SearchUsersInput{
			Keyword:       c.Query("search"),
			CurrentUserID: ident.ID,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}
