package cartControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/emma-ortiz/OlivosVerdes-3/cart"
	"github.com/emma-ortiz/OlivosVerdes-3/catalog"
)

type AddItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type AdjustItemInput struct {
	Direction cart.Direction `json:"direction" binding:"required"`
}

// wantsJSON reports AJAX mode, selected by the XMLHttpRequest marker
// header; otherwise handlers answer with a redirect to the cart page.
func wantsJSON(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("X-Requested-With"), "XMLHttpRequest")
}

func respond(c *gin.Context, status int, payload gin.H) {
	if wantsJSON(c) {
		c.JSON(status, payload)
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// GET /cart
func GetCart(m *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString("session_id")

		summary, warnings, err := m.Totals(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":    summary.Items,
			"subtotal": summary.Subtotal,
			"shipping": summary.Shipping,
			"total":    summary.Total,
			"warnings": warnings,
		})
	}
}

// POST /cart/items
func AddCartItem(m *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString("session_id")

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}
		if input.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
			return
		}

		line, err := m.Add(c.Request.Context(), sid, input.ProductID, input.Quantity)
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		respond(c, http.StatusCreated, gin.H{
			"success":    true,
			"product_id": input.ProductID,
			"quantity":   line.Quantity,
			"unit_price": line.UnitPrice,
		})
	}
}

// POST /cart/items/:product_id/adjust
func AdjustCartItem(m *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString("session_id")
		productID := c.Param("product_id")

		var input AdjustItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Direction != cart.Increase && input.Direction != cart.Decrease {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Direction must be increase or decrease"})
			return
		}

		line, present, err := m.Adjust(c.Request.Context(), sid, productID, input.Direction)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust cart item"})
			return
		}

		// Adjusting an absent line is a no-op; a decremented singleton
		// line is removed rather than left at zero.
		respond(c, http.StatusOK, gin.H{
			"success":    true,
			"product_id": productID,
			"in_cart":    present,
			"quantity":   line.Quantity,
		})
	}
}

// DELETE /cart/items/:product_id
func DeleteCartItem(m *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString("session_id")
		productID := c.Param("product_id")

		removed, err := m.Remove(c.Request.Context(), sid, productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if !removed {
			respond(c, http.StatusNotFound, gin.H{
				"success": false,
				"message": "Product was not in the cart",
			})
			return
		}

		if !wantsJSON(c) {
			c.Redirect(http.StatusSeeOther, "/cart")
			return
		}

		// AJAX callers get the recomputed totals for in-place updates.
		summary, _, err := m.Totals(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute totals"})
			return
		}

		// An emptied cart owes nothing, shipping included.
		newTotal := summary.Total
		if summary.Subtotal.IsZero() {
			newTotal = decimal.Zero
		}
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"product_id":   productID,
			"new_subtotal": summary.Subtotal,
			"new_total":    newTotal,
		})
	}
}

// DELETE /cart
func ClearCart(m *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString("session_id")

		if err := m.Clear(c.Request.Context(), sid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		respond(c, http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
	}
}
