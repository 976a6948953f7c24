package repository

import (
	"github.com/steamtrack/project-tracking-api/internal/models"
	"gorm.io/gorm"
)

// GormMeetingRepository is a GORM implementation of MeetingRepository
type GormMeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new MeetingRepository
func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &GormMeetingRepository{db: db}
}

// Create creates a new meeting
func (r *GormMeetingRepository) Create(meeting *models.Meeting) error {
	return r.db.Create(meeting).Error
}

// FindByID finds a meeting by ID with optional preloading
func (r *GormMeetingRepository) FindByID(id uint64, preload ...string) (*models.Meeting, error) {
	var meeting models.Meeting
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&meeting, id).Error; err != nil {
		return nil, err
	}

	return &meeting, nil
}

// ListByProject lists a project's meetings ordered by date
func (r *GormMeetingRepository) ListByProject(projectID uint64) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := r.db.Where("project_id = ?", projectID).
		Order("date ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// Update updates a meeting
func (r *GormMeetingRepository) Update(meeting *models.Meeting) error {
	return r.db.Save(meeting).Error
}

// Delete soft deletes a meeting
func (r *GormMeetingRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Meeting{}, id).Error
}
