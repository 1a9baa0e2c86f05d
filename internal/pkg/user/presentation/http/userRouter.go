package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/presentation/controller"
)

// RegisterRoutes registers user-related HTTP endpoints under the given router
// group. The group is expected to carry the auth middleware already.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool) {
	profileCtl := controller.NewProfileController(pool)
	searchCtl := controller.NewSearchUsersController(pool)
	logoutCtl := controller.NewLogoutController(pool)
	avatarCtl := controller.NewUpdateAvatarController(pool)

	// GET /api/v1/users/profile -> the caller's own account record
	g.GET("/users/profile", profileCtl.Handle())

	// GET /api/v1/users?search= -> search users by username or email
	g.GET("/users", searchCtl.Handle())

	// POST /api/v1/users/logout -> record logout presence
	g.POST("/users/logout", logoutCtl.Handle())

	// PUT /api/v1/users/avatar -> store a new avatar URL
	g.PUT("/users/avatar", avatarCtl.Handle())
}
