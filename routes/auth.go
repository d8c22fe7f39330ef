package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emma-ortiz/OlivosVerdes-3/auth"
)

// SetupAuthRoutes registers the public registration and login endpoints.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(deps.DB)) // POST /auth/register
		authGroup.POST("/login", auth.LoginHandler(deps.DB))       // POST /auth/login
	}
}
