package routes

import (
	"github.com/gin-gonic/gin"

	productControllers "github.com/emma-ortiz/OlivosVerdes-3/controllers/product"
)

// SetupCatalogRoutes registers the public browsing endpoints.
func SetupCatalogRoutes(r *gin.Engine, deps Deps) {
	r.GET("/", productControllers.GetFeatured(deps.Catalog))                              // GET /
	r.GET("/products", productControllers.GetProducts(deps.Catalog))                      // GET /products
	r.GET("/products/export", productControllers.ExportProducts(deps.Catalog))            // GET /products/export
	r.GET("/products/:id", productControllers.GetProductByID(deps.Catalog))               // GET /products/:id
	r.GET("/categories", productControllers.GetCategories(deps.Catalog))                  // GET /categories
	r.GET("/categories/:name/products", productControllers.GetProductsByCategory(deps.Catalog)) // GET /categories/:name/products
	r.GET("/promotions", productControllers.GetPromotions(deps.Catalog))                  // GET /promotions
}
