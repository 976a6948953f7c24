package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	StartDate   time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time      `gorm:"type:date;not null" json:"end_date"`
	IsArchived  bool           `gorm:"not null;default:false" json:"is_archived"`
	// Key is the 5-character join code. Generated once at create, never
	// regenerated; the unique index is the authority on collisions.
	Key       string         `gorm:"type:varchar(5);uniqueIndex;not null" json:"key"`
	OwnerID   uint64         `gorm:"not null" json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner     User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members   []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks     []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Meetings  []Meeting       `gorm:"foreignKey:ProjectID" json:"meetings,omitempty"`
	Resources []Resource      `gorm:"foreignKey:ProjectID" json:"resources,omitempty"`
}

// ContainsRange reports whether [start, end] lies within the project's
// date range, boundary equality included.
func (p *Project) ContainsRange(start, end time.Time) bool {
	return !start.Before(p.StartDate) && !end.After(p.EndDate)
}

// ContainsDate reports whether a single date lies within the project's range.
func (p *Project) ContainsDate(d time.Time) bool {
	return p.ContainsRange(d, d)
}
