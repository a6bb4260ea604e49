package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/officekit/office-planning-api/internal/dto"
	apierrors "github.com/officekit/office-planning-api/internal/errors"
	"github.com/officekit/office-planning-api/internal/middleware"
	"github.com/officekit/office-planning-api/internal/services"
)

// TokenHandler coordinates API token management handlers.
type TokenHandler struct {
	tokenService *services.TokenService
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(tokenService *services.TokenService) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
	}
}

// CreateToken issues a new API token. The opaque value is only ever returned
// here.
func (h *TokenHandler) CreateToken(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTokenRequest struct {
		Name string `json:"name" binding:"required,max=255"`
	}

	var req CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	token, value, err := h.tokenService.CreateToken(userID, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrTokenNameMissing) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to create token")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTokenDTO(*token, value))
}

// ListTokens returns the caller's tokens without their opaque values.
func (h *TokenHandler) ListTokens(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tokens, err := h.tokenService.ListTokens(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tokens")
		return
	}

	tokenDTOs := make([]dto.TokenDTO, len(tokens))
	for i, token := range tokens {
		tokenDTOs[i] = dto.ToTokenDTO(token, "")
	}

	c.JSON(http.StatusOK, gin.H{
		"tokens": tokenDTOs,
	})
}

// RevokeToken deletes one of the caller's tokens.
func (h *TokenHandler) RevokeToken(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid token ID")
		return
	}

	if err := h.tokenService.RevokeToken(tokenID, userID); err != nil {
		apierrors.InternalError(c, "Failed to revoke token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token revoked",
	})
}
