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
	ErrInvalidLocationName = errors.New("location name cannot be empty")
	ErrSlugTaken           = errors.New("a location with that slug already exists")
)

// LocationService provides business logic for location operations.
type LocationService struct {
	locationRepo repository.LocationRepository
}

// NewLocationService creates a new LocationService.
func NewLocationService(locationRepo repository.LocationRepository) *LocationService {
	return &LocationService{
		locationRepo: locationRepo,
	}
}

// CreateLocationInput represents parameters to create a new location.
type CreateLocationInput struct {
	Name       string
	ShortLabel string
	Slug       string
	IsPhysical bool
}

// CreateLocation creates a location, deriving the slug from the name when
// none is supplied.
func (s *LocationService) CreateLocation(input CreateLocationInput) (*models.Location, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidLocationName
	}

	slugValue := strings.TrimSpace(input.Slug)
	if slugValue == "" {
		slugValue = utils.Slugify(name)
	}

	if _, err := s.locationRepo.FindBySlug(slugValue); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}

	label := strings.TrimSpace(input.ShortLabel)
	if label == "" {
		label = name
	}

	location := &models.Location{
		Name:       name,
		ShortLabel: label,
		Slug:       slugValue,
		IsPhysical: input.IsPhysical,
	}

	if err := s.locationRepo.Create(location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	return location, nil
}

// ListLocations returns every location.
func (s *LocationService) ListLocations() ([]models.Location, error) {
	locations, err := s.locationRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// GetLocation returns a location by ID.
func (s *LocationService) GetLocation(id uint64) (*models.Location, error) {
	location, err := s.locationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to find location: %w", err)
	}
	return location, nil
}

// UpdateLocationInput represents parameters to update a location.
type UpdateLocationInput struct {
	Name       *string
	ShortLabel *string
	IsPhysical *bool
}

// UpdateLocation updates a location's display fields. The slug is the
// external identifier and never changes after creation.
func (s *LocationService) UpdateLocation(id uint64, input UpdateLocationInput) (*models.Location, error) {
	location, err := s.GetLocation(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidLocationName
		}
		location.Name = strings.TrimSpace(*input.Name)
	}
	if input.ShortLabel != nil {
		location.ShortLabel = strings.TrimSpace(*input.ShortLabel)
	}
	if input.IsPhysical != nil {
		location.IsPhysical = *input.IsPhysical
	}

	if err := s.locationRepo.Update(location); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	return location, nil
}

// DeleteLocation removes a location.
func (s *LocationService) DeleteLocation(id uint64) error {
	if _, err := s.GetLocation(id); err != nil {
		return err
	}

	if err := s.locationRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	return nil
}
