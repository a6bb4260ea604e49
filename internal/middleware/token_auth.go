package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/officekit/office-planning-api/internal/constants"
	apierrors "github.com/officekit/office-planning-api/internal/errors"
	"github.com/officekit/office-planning-api/internal/services"
)

// TokenAuth authenticates requests to the programmatic reporting API with a
// bearer token. The request runs with the token owner's identity, so scope
// rules apply exactly as they would in a session.
func TokenAuth(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		value, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(value) == "" {
			apierrors.Unauthorized(c, "Bearer token required")
			c.Abort()
			return
		}

		user, err := tokenService.Authenticate(strings.TrimSpace(value))
		if err != nil {
			apierrors.Unauthorized(c, "Invalid API token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyCurrentUser, *user)
		c.Next()
	}
}
