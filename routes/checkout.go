package routes

import (
	"github.com/gin-gonic/gin"

	checkoutControllers "github.com/emma-ortiz/OlivosVerdes-3/controllers/checkout"
	"github.com/emma-ortiz/OlivosVerdes-3/middleware"
)

// SetupCheckoutRoutes registers the two-phase checkout (GET previews the
// quote, POST processes the simulated payment) and order lookup. All of
// them require a logged-in user.
func SetupCheckoutRoutes(r *gin.Engine, deps Deps) {
	checkoutGroup := r.Group("/checkout")
	checkoutGroup.Use(middleware.ValidateToken)
	{
		checkoutGroup.GET("", checkoutControllers.Preview(deps.Checkout))  // GET /checkout
		checkoutGroup.POST("", checkoutControllers.Confirm(deps.Checkout)) // POST /checkout
	}

	orderGroup := r.Group("/orders")
	orderGroup.Use(middleware.ValidateToken)
	{
		orderGroup.GET("/:id", checkoutControllers.GetOrder(deps.Checkout)) // GET /orders/:id
	}
}
