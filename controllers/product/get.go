package productControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emma-ortiz/OlivosVerdes-3/catalog"
)

const featuredCount = 3

// GET /
func GetFeatured(cat *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := cat.Featured(c.Request.Context(), featuredCount)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"featured": products})
	}
}

// GET /products
func GetProducts(cat *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := cat.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(cat *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := cat.GetProduct(c.Request.Context(), c.Param("id"))
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /categories
func GetCategories(cat *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := cat.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GET /categories/:name/products
func GetProductsByCategory(cat *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := cat.ListByCategory(c.Request.Context(), c.Param("name"))
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /promotions
func GetPromotions(cat *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := cat.ListPromoted(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch promotions"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
