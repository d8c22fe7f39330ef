package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emma-ortiz/OlivosVerdes-3/cart"
	"github.com/emma-ortiz/OlivosVerdes-3/catalog"
	"github.com/emma-ortiz/OlivosVerdes-3/checkout"
)

// Deps bundles the collaborators the route groups wire handlers to.
type Deps struct {
	DB       *gorm.DB
	Catalog  *catalog.Service
	Carts    *cart.Manager
	Checkout *checkout.Service
}

// SetupRoutes is the single entry point that wires up the catalog, auth,
// cart, and checkout route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public catalog browsing (no middleware beyond the session cookie)
	SetupCatalogRoutes(r, deps)

	// Registration and login
	SetupAuthRoutes(r, deps)

	// Session-scoped cart (anonymous visitors included)
	SetupCartRoutes(r, deps)

	// JWT-protected profile, checkout, and orders
	SetupUserRoutes(r, deps)
	SetupCheckoutRoutes(r, deps)
}
