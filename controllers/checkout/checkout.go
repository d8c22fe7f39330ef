package checkoutControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emma-ortiz/OlivosVerdes-3/checkout"
)

type ConfirmInput struct {
	CardNumber string `json:"card_number"`
}

// GET /checkout
func Preview(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString("session_id")
		userID := c.GetString("user_id")

		quote, err := svc.Preview(c.Request.Context(), sid, userID)
		if err != nil {
			writeCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

// POST /checkout
func Confirm(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString("session_id")
		userID := c.GetString("user_id")

		var input ConfirmInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		conf, err := svc.Confirm(c.Request.Context(), sid, userID, input.CardNumber)
		if err != nil {
			writeCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusCreated, conf)
	}
}

// GET /orders/:id
func GetOrder(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}

		view, err := svc.ViewOrder(c.Request.Context(), uint(orderID), userID)
		if err != nil {
			writeCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// writeCheckoutError maps checkout error kinds to HTTP responses. All of
// them are recoverable at the request level; the redirect hint tells the
// client which page fixes the problem.
func writeCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty", "redirect": "/products"})
	case errors.Is(err, checkout.ErrMissingDeliveryAddress):
		c.JSON(http.StatusConflict, gin.H{"error": "Please complete your delivery address first", "redirect": "/user"})
	case errors.Is(err, checkout.ErrMissingPaymentInfo):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a card number", "redirect": "/checkout"})
	case errors.Is(err, checkout.ErrInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "Your order is already being processed"})
	case errors.Is(err, checkout.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	default:
		var perr *checkout.PersistenceError
		if errors.As(err, &perr) {
			log.Printf("❌ Checkout persistence failure: %v", perr)
		} else {
			log.Printf("❌ Checkout failed: %v", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process your order, please try again"})
	}
}
