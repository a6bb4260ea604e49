package models

import (
	"time"

	"gorm.io/gorm"
)

// Location is an office or other place of work. Non-physical locations
// (e.g. "Other") never raise empty-coverage warnings and are excluded from
// coverage and occupancy matrices.
type Location struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	ShortLabel string         `gorm:"type:varchar(20);not null" json:"short_label"`
	Slug       string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	IsPhysical bool           `gorm:"not null;default:true" json:"is_physical"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
