package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/officekit/office-planning-api/internal/constants"
	apierrors "github.com/officekit/office-planning-api/internal/errors"
	"github.com/officekit/office-planning-api/internal/services"
)

// OccupancyHandler coordinates the occupancy report endpoints.
type OccupancyHandler struct {
	occupancyService *services.OccupancyService
}

// NewOccupancyHandler creates a new OccupancyHandler.
func NewOccupancyHandler(occupancyService *services.OccupancyService) *OccupancyHandler {
	return &OccupancyHandler{
		occupancyService: occupancyService,
	}
}

// Snapshot returns the occupancy snapshot for one date. Without a date
// parameter it covers the next working day.
func (h *OccupancyHandler) Snapshot(c *gin.Context) {
	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(constants.DateKeyFormat, raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date")
			return
		}
		date = &parsed
	}

	snapshot, err := h.occupancyService.Snapshot(date)
	if err != nil {
		apierrors.InternalError(c, "Failed to build occupancy snapshot")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Matrix returns the location-by-day occupancy matrix across the window.
func (h *OccupancyHandler) Matrix(c *gin.Context) {
	matrix, err := h.occupancyService.Matrix()
	if err != nil {
		apierrors.InternalError(c, "Failed to build occupancy matrix")
		return
	}

	c.JSON(http.StatusOK, matrix)
}

// Summary returns the per-location summary statistics across the window.
func (h *OccupancyHandler) Summary(c *gin.Context) {
	summary, err := h.occupancyService.Summary()
	if err != nil {
		apierrors.InternalError(c, "Failed to build occupancy summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}
