package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emma-ortiz/OlivosVerdes-3/models"
)

type UpdateUserInput struct {
	Name            *string `json:"name"`
	DeliveryAddress *string `json:"delivery_address"`
	Phone           *string `json:"phone"`
}

// GET /user
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var user models.User
		if err := db.Preload("Profile").Preload("Orders").First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /user
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var user models.User
		if err := db.Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Name != nil {
			if err := db.Model(&user).Update("name", *input.Name).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
		}

		if input.DeliveryAddress != nil || input.Phone != nil {
			updates := make(map[string]interface{})
			if input.DeliveryAddress != nil {
				updates["delivery_address"] = *input.DeliveryAddress
			}
			if input.Phone != nil {
				updates["phone"] = *input.Phone
			}

			profile := models.DeliveryProfile{UserID: user.ID}
			err := db.Where("user_id = ?", user.ID).
				Assign(updates).
				FirstOrCreate(&profile).Error
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery profile"})
				return
			}
			user.Profile = &profile
		}

		c.JSON(http.StatusOK, user)
	}
}
