package models

import (
	"time"

	"gorm.io/gorm"
)

type Team struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	ManagerID uint64         `gorm:"not null" json:"manager_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Manager User   `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Members []User `gorm:"many2many:team_members;" json:"members,omitempty"`
}
