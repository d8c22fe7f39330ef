package routes

import (
	"github.com/gin-gonic/gin"

	userControllers "github.com/emma-ortiz/OlivosVerdes-3/controllers/user"
	"github.com/emma-ortiz/OlivosVerdes-3/middleware"
)

// SetupUserRoutes registers the JWT-protected profile endpoints.
func SetupUserRoutes(r *gin.Engine, deps Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("", userControllers.GetUser(deps.DB))    // GET /user
		userGroup.PUT("", userControllers.UpdateUser(deps.DB)) // PUT /user
	}
}
