package repository

import (
	"github.com/officekit/office-planning-api/internal/models"
	"gorm.io/gorm"
)

// GormLocationRepository is a GORM implementation of LocationRepository
type GormLocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &GormLocationRepository{db: db}
}

// Create creates a new location
func (r *GormLocationRepository) Create(location *models.Location) error {
	return r.db.Create(location).Error
}

// FindByID finds a location by ID
func (r *GormLocationRepository) FindByID(id uint64) (*models.Location, error) {
	var location models.Location
	if err := r.db.First(&location, id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// FindBySlug finds a location by its slug
func (r *GormLocationRepository) FindBySlug(slug string) (*models.Location, error) {
	var location models.Location
	if err := r.db.Where("slug = ?", slug).First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// Update updates a location
func (r *GormLocationRepository) Update(location *models.Location) error {
	return r.db.Save(location).Error
}

// Delete deletes a location
func (r *GormLocationRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Location{}, id).Error
}

// ListAll lists every location
func (r *GormLocationRepository) ListAll() ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.Order("name").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}
