package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID                uint64         `gorm:"primarykey" json:"id"`
	Email             string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash      string         `gorm:"type:varchar(255);not null" json:"-"`
	Surname           string         `gorm:"type:varchar(100);not null" json:"surname"`
	Forenames         string         `gorm:"type:varchar(100);not null" json:"forenames"`
	IsAdmin           bool           `gorm:"not null;default:false" json:"is_admin"`
	DefaultLocationID *uint64        `json:"default_location_id"`
	DefaultCategory   string         `gorm:"type:varchar(255)" json:"default_category"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	DefaultLocation *Location   `gorm:"foreignKey:DefaultLocationID" json:"default_location,omitempty"`
	Entries         []PlanEntry `gorm:"foreignKey:UserID" json:"-"`
	ManagedTeams    []Team      `gorm:"foreignKey:ManagerID" json:"-"`
	Teams           []Team      `gorm:"many2many:team_members;" json:"-"`
}

// DisplayName renders the user as "surname, forenames".
func (u User) DisplayName() string {
	return fmt.Sprintf("%s, %s", u.Surname, u.Forenames)
}
