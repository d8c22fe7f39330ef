package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/emma-ortiz/OlivosVerdes-3/controllers/cart"
)

// SetupCartRoutes registers the session-scoped cart endpoints. No login
// is required: the cart belongs to the visitor's session cookie.
func SetupCartRoutes(r *gin.Engine, deps Deps) {
	cartGroup := r.Group("/cart")
	{
		cartGroup.GET("", cartControllers.GetCart(deps.Carts))                                  // GET /cart
		cartGroup.POST("/items", cartControllers.AddCartItem(deps.Carts))                       // POST /cart/items
		cartGroup.POST("/items/:product_id/adjust", cartControllers.AdjustCartItem(deps.Carts)) // POST /cart/items/:product_id/adjust
		cartGroup.DELETE("/items/:product_id", cartControllers.DeleteCartItem(deps.Carts))      // DELETE /cart/items/:product_id
		cartGroup.DELETE("", cartControllers.ClearCart(deps.Carts))                             // DELETE /cart
	}
}
