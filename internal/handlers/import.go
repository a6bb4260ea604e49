package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/officekit/office-planning-api/internal/errors"
	"github.com/officekit/office-planning-api/internal/services"
)

// ImportHandler coordinates the bulk import endpoint.
type ImportHandler struct {
	importService *services.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService *services.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// ImportEntries accepts spreadsheet rows and upserts plan entries. Rows
// succeed or fail independently; the response always carries the per-row
// errors alongside the import count.
func (h *ImportHandler) ImportEntries(c *gin.Context) {
	type ImportRequest struct {
		Rows [][]string `json:"rows" binding:"required"`
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.importService.Import(req.Rows)
	if err != nil {
		apierrors.InternalError(c, "Failed to import entries")
		return
	}

	c.JSON(http.StatusOK, result)
}
