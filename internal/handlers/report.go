package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/officekit/office-planning-api/internal/errors"
	"github.com/officekit/office-planning-api/internal/services"
)

// ReportHandler coordinates the report endpoints.
type ReportHandler struct {
	reportService   *services.ReportService
	servicesEnabled bool
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService, servicesEnabled bool) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		servicesEnabled: servicesEnabled,
	}
}

// TeamGrid returns the person-by-day grid for the requested scope.
func (h *ReportHandler) TeamGrid(c *gin.Context) {
	viewer, ok := currentUser(c)
	if !ok {
		return
	}

	mode, teamFilter, ok := scopeParams(c)
	if !ok {
		return
	}

	grid, err := h.reportService.TeamGrid(viewer, mode, teamFilter)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, grid)
}

// LocationGrid returns the day-by-location grid for the requested scope.
func (h *ReportHandler) LocationGrid(c *gin.Context) {
	viewer, ok := currentUser(c)
	if !ok {
		return
	}

	mode, teamFilter, ok := scopeParams(c)
	if !ok {
		return
	}

	grid, err := h.reportService.LocationGrid(viewer, mode, teamFilter)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, grid)
}

// CoverageMatrix returns the physical-location headcount matrix for the
// requested scope.
func (h *ReportHandler) CoverageMatrix(c *gin.Context) {
	viewer, ok := currentUser(c)
	if !ok {
		return
	}

	mode, teamFilter, ok := scopeParams(c)
	if !ok {
		return
	}

	matrix, err := h.reportService.CoverageMatrix(viewer, mode, teamFilter)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, matrix)
}

// ServiceAvailability returns the service-by-day availability matrix. The
// feature is config-gated.
func (h *ReportHandler) ServiceAvailability(c *gin.Context) {
	if !h.servicesEnabled {
		apierrors.NotFound(c, "Service reports are not enabled")
		return
	}

	matrix, err := h.reportService.ServiceAvailability()
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, matrix)
}
