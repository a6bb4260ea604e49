package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/officekit/office-planning-api/internal/database"
	apierrors "github.com/officekit/office-planning-api/internal/errors"
	"github.com/officekit/office-planning-api/internal/middleware"
	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/services"
)

// currentUser loads the authenticated user's model, responding with an error
// itself when the request is not authenticated.
func currentUser(c *gin.Context) (*models.User, bool) {
	if user, ok := middleware.GetCurrentUser(c); ok {
		return user, true
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	return &user, true
}

// scopeParams reads the mode and team filter query parameters shared by the
// report endpoints. team_id may repeat.
func scopeParams(c *gin.Context) (services.ScopeMode, []uint64, bool) {
	mode, err := services.ParseScopeMode(c.Query("mode"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid scope mode")
		return "", nil, false
	}

	var teamFilter []uint64
	for _, raw := range c.QueryArray("team_id") {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid team_id")
			return "", nil, false
		}
		teamFilter = append(teamFilter, id)
	}

	return mode, teamFilter, true
}

func respondReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.PermissionDenied(c, "")
	case errors.Is(err, services.ErrUnknownScopeMode):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Failed to build report")
	}
}
