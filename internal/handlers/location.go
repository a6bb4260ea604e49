package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/officekit/office-planning-api/internal/dto"
	apierrors "github.com/officekit/office-planning-api/internal/errors"
	"github.com/officekit/office-planning-api/internal/services"
)

// LocationHandler coordinates location administration handlers.
type LocationHandler struct {
	locationService *services.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

// ListLocations returns every location.
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.locationService.ListLocations()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch locations")
		return
	}

	locationDTOs := make([]dto.LocationDTO, len(locations))
	for i, location := range locations {
		locationDTOs[i] = dto.ToLocationDTO(location)
	}

	c.JSON(http.StatusOK, gin.H{
		"locations": locationDTOs,
	})
}

// CreateLocation creates a new location.
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	type CreateLocationRequest struct {
		Name       string `json:"name" binding:"required"`
		ShortLabel string `json:"short_label"`
		Slug       string `json:"slug"`
		IsPhysical *bool  `json:"is_physical"`
	}

	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	isPhysical := true
	if req.IsPhysical != nil {
		isPhysical = *req.IsPhysical
	}

	location, err := h.locationService.CreateLocation(services.CreateLocationInput{
		Name:       req.Name,
		ShortLabel: req.ShortLabel,
		Slug:       req.Slug,
		IsPhysical: isPhysical,
	})
	if err != nil {
		respondLocationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLocationDTO(*location))
}

// UpdateLocation updates a location's display fields.
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	locationID, ok := locationIDParam(c)
	if !ok {
		return
	}

	type UpdateLocationRequest struct {
		Name       *string `json:"name"`
		ShortLabel *string `json:"short_label"`
		IsPhysical *bool   `json:"is_physical"`
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	location, err := h.locationService.UpdateLocation(locationID, services.UpdateLocationInput{
		Name:       req.Name,
		ShortLabel: req.ShortLabel,
		IsPhysical: req.IsPhysical,
	})
	if err != nil {
		respondLocationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationDTO(*location))
}

// DeleteLocation removes a location.
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	locationID, ok := locationIDParam(c)
	if !ok {
		return
	}

	if err := h.locationService.DeleteLocation(locationID); err != nil {
		respondLocationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Location deleted",
	})
}

func locationIDParam(c *gin.Context) (uint64, bool) {
	locationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid location ID")
		return 0, false
	}
	return locationID, true
}

func respondLocationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLocationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidLocationName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrSlugTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
