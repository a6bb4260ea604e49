package repository

import (
	"time"

	"github.com/officekit/office-planning-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email address
	FindByEmail(email string) (*models.User, error)

	// ListAll lists every user in the system
	ListAll() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// Create creates a new team
	Create(team *models.Team) error

	// FindByID finds a team by ID with members and manager preloaded
	FindByID(id uint64) (*models.Team, error)

	// Update updates a team
	Update(team *models.Team) error

	// Delete deletes a team and its memberships, leaving users untouched
	Delete(id uint64) error

	// ListAll lists every team
	ListAll() ([]models.Team, error)

	// ListManagedBy lists the teams managed by a user, members preloaded
	ListManagedBy(managerID uint64) ([]models.Team, error)

	// ListByIDs lists the given teams, members preloaded
	ListByIDs(ids []uint64) ([]models.Team, error)

	// ListForUser lists teams the user belongs to
	ListForUser(userID uint64) ([]models.Team, error)

	// CountManagedBy counts the teams a user manages
	CountManagedBy(userID uint64) (int64, error)

	// ManagesUser reports whether managerID manages any team containing userID
	ManagesUser(managerID, userID uint64) (bool, error)

	// AddMember adds a user to a team
	AddMember(teamID, userID uint64) error

	// RemoveMember removes a user from a team
	RemoveMember(teamID, userID uint64) error
}

// ServiceRepository defines the interface for service data access
type ServiceRepository interface {
	// Create creates a new service
	Create(service *models.Service) error

	// FindByID finds a service by ID with members and manager preloaded
	FindByID(id uint64) (*models.Service, error)

	// Delete deletes a service and its memberships
	Delete(id uint64) error

	// ListAll lists every service with members and manager preloaded
	ListAll() ([]models.Service, error)

	// AddMember adds a user to a service
	AddMember(serviceID, userID uint64) error

	// RemoveMember removes a user from a service
	RemoveMember(serviceID, userID uint64) error
}

// LocationRepository defines the interface for location data access
type LocationRepository interface {
	// Create creates a new location
	Create(location *models.Location) error

	// FindByID finds a location by ID
	FindByID(id uint64) (*models.Location, error)

	// FindBySlug finds a location by its slug
	FindBySlug(slug string) (*models.Location, error)

	// Update updates a location
	Update(location *models.Location) error

	// Delete deletes a location
	Delete(id uint64) error

	// ListAll lists every location
	ListAll() ([]models.Location, error)
}

// EntryFilter holds filtering options for listing a user's plan entries
type EntryFilter struct {
	UserID   uint64
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// EntryRepository defines the interface for plan entry data access
type EntryRepository interface {
	// FindByID finds an entry by ID
	FindByID(id uint64) (*models.PlanEntry, error)

	// FindByUserAndDate finds the entry for a (user, date) pair
	FindByUserAndDate(userID uint64, date time.Time) (*models.PlanEntry, error)

	// FindForUsers batch-loads all entries for a user set within a date
	// range in a single query
	FindForUsers(userIDs []uint64, from, to time.Time) ([]models.PlanEntry, error)

	// List retrieves one user's entries with filtering and pagination
	List(filter EntryFilter) ([]models.PlanEntry, int64, error)

	// Upsert writes an entry, matching any existing row by (user, date)
	Upsert(entry *models.PlanEntry) error

	// Delete hard-deletes an entry; plan entries have no soft-delete
	Delete(id uint64) error
}

// TokenRepository defines the interface for API token data access
type TokenRepository interface {
	// Create creates a new token
	Create(token *models.APIToken) error

	// FindByToken finds a token by its opaque value
	FindByToken(value string) (*models.APIToken, error)

	// ListByUser lists a user's tokens
	ListByUser(userID uint64) ([]models.APIToken, error)

	// Delete deletes a token owned by the given user
	Delete(id, userID uint64) error

	// Touch records that the token was just used
	Touch(id uint64) error
}
