package models

import (
	"time"

	"gorm.io/gorm"
)

// APIToken grants programmatic read access to the reporting API, scoped to
// the owning user's identity and permissions.
type APIToken struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	UserID     uint64         `gorm:"not null;index" json:"user_id"`
	Token      string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	LastUsedAt *time.Time     `json:"last_used_at"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
