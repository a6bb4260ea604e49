package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/officekit/office-planning-api/internal/constants"
	"github.com/officekit/office-planning-api/internal/database"
	"github.com/officekit/office-planning-api/internal/models"
)

// RequireAdmin checks that the authenticated user is an admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadCurrentUser(c)
		if !ok {
			return
		}

		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Administrator access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireManager checks that the authenticated user is an admin or manages
// at least one team
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadCurrentUser(c)
		if !ok {
			return
		}

		if user.IsAdmin {
			c.Next()
			return
		}

		var count int64
		if err := database.GetDB().Model(&models.Team{}).
			Where("manager_id = ?", user.ID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to verify manager status",
			})
			c.Abort()
			return
		}

		if count == 0 {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Manager access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCurrentUser retrieves the loaded user model from context, if present
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	userInterface, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return nil, false
	}

	user, ok := userInterface.(models.User)
	if !ok {
		return nil, false
	}
	return &user, true
}

// loadCurrentUser fetches the authenticated user and caches it in the
// request context. Sends the error response itself when it fails.
func loadCurrentUser(c *gin.Context) (*models.User, bool) {
	if user, ok := GetCurrentUser(c); ok {
		return user, true
	}

	userID, exists := GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		c.Abort()
		return nil, false
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		c.Abort()
		return nil, false
	}

	c.Set(constants.ContextKeyCurrentUser, user)
	return &user, true
}
