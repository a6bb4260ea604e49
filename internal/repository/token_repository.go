package repository

import (
	"time"

	"github.com/officekit/office-planning-api/internal/models"
	"gorm.io/gorm"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Create creates a new token
func (r *GormTokenRepository) Create(token *models.APIToken) error {
	return r.db.Create(token).Error
}

// FindByToken finds a token by its opaque value
func (r *GormTokenRepository) FindByToken(value string) (*models.APIToken, error) {
	var token models.APIToken
	if err := r.db.Where("token = ?", value).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// ListByUser lists a user's tokens
func (r *GormTokenRepository) ListByUser(userID uint64) ([]models.APIToken, error) {
	var tokens []models.APIToken
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

// Delete deletes a token owned by the given user
func (r *GormTokenRepository) Delete(id, userID uint64) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.APIToken{}).Error
}

// Touch records that the token was just used
func (r *GormTokenRepository) Touch(id uint64) error {
	now := time.Now()
	return r.db.Model(&models.APIToken{}).
		Where("id = ?", id).
		Update("last_used_at", now).Error
}
