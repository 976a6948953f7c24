package models

import (
	"time"

	"gorm.io/gorm"
)

// MeetingStatusLabel is the fixed status marker meetings carry on the timeline.
const MeetingStatusLabel = "meeting"

// Meeting is a single-day work item; unlike Task it has no end date.
type Meeting struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Date        time.Time      `gorm:"type:date;not null" json:"date"`
	ProjectID   uint64         `gorm:"not null" json:"project_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
