package models

import (
	"time"

	"gorm.io/gorm"
)

// Service is a cross-team duty rota (e.g. a helpdesk) whose availability is
// reported across all services regardless of the viewer's team scope.
type Service struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	ManagerID uint64         `gorm:"not null" json:"manager_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Manager User   `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Members []User `gorm:"many2many:service_members;" json:"members,omitempty"`
}
