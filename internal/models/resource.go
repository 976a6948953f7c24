package models

import (
	"time"

	"gorm.io/gorm"
)

type Resource struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	FilePath    string         `gorm:"type:varchar(512)" json:"file_path"`
	IsHidden    bool           `gorm:"not null;default:false" json:"is_hidden"`
	ProjectID   uint64         `gorm:"not null" json:"project_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
