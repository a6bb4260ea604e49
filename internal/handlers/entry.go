package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/officekit/office-planning-api/internal/constants"
	"github.com/officekit/office-planning-api/internal/dto"
	apierrors "github.com/officekit/office-planning-api/internal/errors"
	"github.com/officekit/office-planning-api/internal/middleware"
	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/repository"
	"github.com/officekit/office-planning-api/internal/services"
	"github.com/officekit/office-planning-api/internal/utils"
)

// EntryHandler coordinates plan entry HTTP handlers.
type EntryHandler struct {
	entryService *services.EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService *services.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

// entryRequest is the JSON body shared by the self-service and on-behalf
// upsert endpoints.
type entryRequest struct {
	EntryDate          string                    `json:"entry_date" binding:"required"`
	LocationID         *uint64                   `json:"location_id"`
	Note               string                    `json:"note"`
	AvailabilityStatus models.AvailabilityStatus `json:"availability_status"`
	IsHoliday          bool                      `json:"is_holiday"`
	Category           models.EntryCategory      `json:"category"`
}

// ListEntries returns the authenticated user's entries, optionally limited
// to a date range, paginated.
func (h *EntryHandler) ListEntries(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		userID, exists := middleware.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "Not authenticated")
			return
		}
		user = &models.User{ID: userID}
	}

	params := utils.GetPaginationParams(c)
	filter := repository.EntryFilter{
		UserID:   user.ID,
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(constants.DateKeyFormat, raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid from date")
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(constants.DateKeyFormat, raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid to date")
			return
		}
		filter.To = &to
	}

	entries, total, err := h.entryService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch entries")
		return
	}

	entryDTOs := make([]dto.EntryDTO, len(entries))
	for i, entry := range entries {
		entryDTOs[i] = dto.ToEntryDTO(entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entryDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// UpsertEntry writes the authenticated user's own entry for a date.
func (h *EntryHandler) UpsertEntry(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	h.upsertFor(c, actor, actor.ID)
}

// UpsertEntryForUser writes an entry on behalf of another user. The entry
// service enforces that the actor manages the target.
func (h *EntryHandler) UpsertEntryForUser(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	h.upsertFor(c, actor, targetID)
}

func (h *EntryHandler) upsertFor(c *gin.Context, actor *models.User, targetID uint64) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, err := time.Parse(constants.DateKeyFormat, req.EntryDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid entry date")
		return
	}

	entry, err := h.entryService.Upsert(actor, services.UpsertEntryInput{
		UserID:             targetID,
		Date:               date,
		LocationID:         req.LocationID,
		Note:               req.Note,
		AvailabilityStatus: req.AvailabilityStatus,
		IsHoliday:          req.IsHoliday,
		Category:           req.Category,
	})
	if err != nil {
		respondEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryDTO(*entry))
}

// DeleteEntry removes an entry.
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.entryService.Delete(actor, entryID); err != nil {
		respondEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Entry deleted",
	})
}

func respondEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrLocationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEntryAccessDenied):
		apierrors.PermissionDenied(c, err.Error())
	case errors.Is(err, services.ErrWeekendEntry),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrEntryDateRequired),
		errors.Is(err, services.ErrEntryTargetRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
