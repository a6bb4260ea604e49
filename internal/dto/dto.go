package dto

import (
	"time"

	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                uint64  `json:"id"`
	Email             string  `json:"email"`
	Surname           string  `json:"surname"`
	Forenames         string  `json:"forenames"`
	DisplayName       string  `json:"display_name"`
	IsAdmin           bool    `json:"is_admin"`
	DefaultLocationID *uint64 `json:"default_location_id"`
	DefaultCategory   string  `json:"default_category,omitempty"`
}

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	ManagerID uint64    `json:"manager_id"`
	Manager   *UserDTO  `json:"manager,omitempty"`
	Members   []UserDTO `json:"members,omitempty"`
}

// LocationDTO represents a location in API responses
type LocationDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	ShortLabel string `json:"short_label"`
	Slug       string `json:"slug"`
	IsPhysical bool   `json:"is_physical"`
}

// EntryDTO represents a plan entry in API responses
type EntryDTO struct {
	ID                 uint64                    `json:"id"`
	UserID             uint64                    `json:"user_id"`
	EntryDate          string                    `json:"entry_date"`
	LocationID         *uint64                   `json:"location_id"`
	Location           *LocationDTO              `json:"location,omitempty"`
	Note               string                    `json:"note"`
	AvailabilityStatus models.AvailabilityStatus `json:"availability_status"`
	IsHoliday          bool                      `json:"is_holiday"`
	Category           models.EntryCategory      `json:"category,omitempty"`
	CreatedByManager   bool                      `json:"created_by_manager"`
}

// TokenDTO represents an API token in responses. The opaque value appears
// only in the creation response.
type TokenDTO struct {
	ID         uint64     `json:"id"`
	Name       string     `json:"name"`
	Token      string     `json:"token,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                user.ID,
		Email:             user.Email,
		Surname:           user.Surname,
		Forenames:         user.Forenames,
		DisplayName:       user.DisplayName(),
		IsAdmin:           user.IsAdmin,
		DefaultLocationID: user.DefaultLocationID,
		DefaultCategory:   user.DefaultCategory,
	}
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	dto := TeamDTO{
		ID:        team.ID,
		Name:      team.Name,
		ManagerID: team.ManagerID,
	}

	// Include manager if preloaded
	if team.Manager.ID != 0 {
		manager := ToUserDTO(team.Manager)
		dto.Manager = &manager
	}

	// Include members if preloaded
	if len(team.Members) > 0 {
		dto.Members = make([]UserDTO, len(team.Members))
		for i, member := range team.Members {
			dto.Members[i] = ToUserDTO(member)
		}
	}

	return dto
}

// ToLocationDTO converts a Location model to LocationDTO
func ToLocationDTO(location models.Location) LocationDTO {
	return LocationDTO{
		ID:         location.ID,
		Name:       location.Name,
		ShortLabel: location.ShortLabel,
		Slug:       location.Slug,
		IsPhysical: location.IsPhysical,
	}
}

// ToEntryDTO converts a PlanEntry model to EntryDTO
func ToEntryDTO(entry models.PlanEntry) EntryDTO {
	dto := EntryDTO{
		ID:                 entry.ID,
		UserID:             entry.UserID,
		EntryDate:          services.DateKey(entry.EntryDate),
		LocationID:         entry.LocationID,
		Note:               entry.Note,
		AvailabilityStatus: entry.AvailabilityStatus,
		IsHoliday:          entry.IsHoliday,
		Category:           entry.Category,
		CreatedByManager:   entry.CreatedByManager,
	}

	// Include location if preloaded
	if entry.Location != nil && entry.Location.ID != 0 {
		location := ToLocationDTO(*entry.Location)
		dto.Location = &location
	}

	return dto
}

// ToTokenDTO converts an APIToken model to TokenDTO. Pass the opaque value
// only when responding to creation.
func ToTokenDTO(token models.APIToken, value string) TokenDTO {
	return TokenDTO{
		ID:         token.ID,
		Name:       token.Name,
		Token:      value,
		LastUsedAt: token.LastUsedAt,
		CreatedAt:  token.CreatedAt,
	}
}
