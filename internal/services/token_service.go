package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/repository"
	"github.com/officekit/office-planning-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvalidToken     = errors.New("invalid API token")
	ErrTokenNameMissing = errors.New("token name is required")
)

// TokenService issues and validates API tokens for the reporting API.
type TokenService struct {
	tokenRepo repository.TokenRepository
	userRepo  repository.UserRepository
}

// NewTokenService creates a new TokenService.
func NewTokenService(tokenRepo repository.TokenRepository, userRepo repository.UserRepository) *TokenService {
	return &TokenService{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
	}
}

// CreateToken issues a token for the user. The opaque value is returned once
// and never rendered again.
func (s *TokenService) CreateToken(userID uint64, name string) (*models.APIToken, string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "", ErrTokenNameMissing
	}

	value := utils.GenerateAPIToken()
	token := &models.APIToken{
		UserID: userID,
		Token:  value,
		Name:   strings.TrimSpace(name),
	}

	if err := s.tokenRepo.Create(token); err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return token, value, nil
}

// Authenticate resolves a presented token value to its owning user and
// records the use.
func (s *TokenService) Authenticate(value string) (*models.User, error) {
	token, err := s.tokenRepo.FindByToken(value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load token owner: %w", err)
	}

	if err := s.tokenRepo.Touch(token.ID); err != nil {
		return nil, fmt.Errorf("failed to record token use: %w", err)
	}

	return user, nil
}

// ListTokens lists a user's tokens.
func (s *TokenService) ListTokens(userID uint64) ([]models.APIToken, error) {
	tokens, err := s.tokenRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

// RevokeToken deletes one of the user's tokens.
func (s *TokenService) RevokeToken(id, userID uint64) error {
	if err := s.tokenRepo.Delete(id, userID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
