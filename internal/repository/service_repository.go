package repository

import (
	"github.com/officekit/office-planning-api/internal/models"
	"gorm.io/gorm"
)

// GormServiceRepository is a GORM implementation of ServiceRepository
type GormServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new ServiceRepository
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &GormServiceRepository{db: db}
}

// Create creates a new service
func (r *GormServiceRepository) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

// FindByID finds a service by ID with members and manager preloaded
func (r *GormServiceRepository) FindByID(id uint64) (*models.Service, error) {
	var service models.Service
	if err := r.db.Preload("Members").Preload("Manager").First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// Delete deletes a service and its memberships in a transaction
func (r *GormServiceRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM service_members WHERE service_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Service{}, id).Error
	})
}

// ListAll lists every service with members and manager preloaded
func (r *GormServiceRepository) ListAll() ([]models.Service, error) {
	var services []models.Service
	if err := r.db.Preload("Members").Preload("Manager").
		Order("name").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// AddMember adds a user to a service
func (r *GormServiceRepository) AddMember(serviceID, userID uint64) error {
	return r.db.Model(&models.Service{ID: serviceID}).
		Association("Members").
		Append(&models.User{ID: userID})
}

// RemoveMember removes a user from a service
func (r *GormServiceRepository) RemoveMember(serviceID, userID uint64) error {
	return r.db.Model(&models.Service{ID: serviceID}).
		Association("Members").
		Delete(&models.User{ID: userID})
}
