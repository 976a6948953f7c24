package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/steamtrack/project-tracking-api/internal/constants"
	"github.com/steamtrack/project-tracking-api/internal/models"
	"github.com/steamtrack/project-tracking-api/internal/repository"
	"gorm.io/gorm"
)

var ErrMeetingNotFound = errors.New("meeting not found")

// MeetingService handles meeting business logic.
type MeetingService struct {
	meetingRepo repository.MeetingRepository
	projectRepo repository.ProjectRepository
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(meetingRepo repository.MeetingRepository, projectRepo repository.ProjectRepository) *MeetingService {
	return &MeetingService{
		meetingRepo: meetingRepo,
		projectRepo: projectRepo,
	}
}

// CreateMeetingInput represents input for creating a meeting.
type CreateMeetingInput struct {
	Name        string
	Description string
	Date        time.Time
	ProjectID   uint64
}

// CreateMeeting validates the input and persists the meeting.
func (s *MeetingService) CreateMeeting(input CreateMeetingInput) (*models.Meeting, error) {
	project, err := s.loadProject(input.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := validateMeetingFields(project, input.Name, input.Date); err != nil {
		return nil, err
	}

	meeting := &models.Meeting{
		Name:        input.Name,
		Description: input.Description,
		Date:        input.Date,
		ProjectID:   project.ID,
	}

	if err := s.meetingRepo.Create(meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	return meeting, nil
}

// UpdateMeetingInput holds the editable meeting fields.
type UpdateMeetingInput struct {
	Name        *string
	Description *string
	Date        *time.Time
}

// UpdateMeeting applies the changed fields after re-running validation.
func (s *MeetingService) UpdateMeeting(meetingID uint64, input UpdateMeetingInput) (*models.Meeting, error) {
	meeting, err := s.GetMeeting(meetingID)
	if err != nil {
		return nil, err
	}

	project, err := s.loadProject(meeting.ProjectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		meeting.Name = *input.Name
	}
	if input.Description != nil {
		meeting.Description = *input.Description
	}
	if input.Date != nil {
		meeting.Date = *input.Date
	}

	if err := validateMeetingFields(project, meeting.Name, meeting.Date); err != nil {
		return nil, err
	}

	if err := s.meetingRepo.Update(meeting); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}

	return meeting, nil
}

// DeleteMeeting removes a meeting.
func (s *MeetingService) DeleteMeeting(meetingID uint64) error {
	if _, err := s.GetMeeting(meetingID); err != nil {
		return err
	}

	if err := s.meetingRepo.Delete(meetingID); err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}

	return nil
}

// GetMeeting retrieves a meeting by ID.
func (s *MeetingService) GetMeeting(meetingID uint64) (*models.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	return meeting, nil
}

// ListProjectMeetings lists a project's meetings ordered by date.
func (s *MeetingService) ListProjectMeetings(projectID uint64) ([]models.Meeting, error) {
	meetings, err := s.meetingRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

func (s *MeetingService) loadProject(projectID uint64) (*models.Project, error) {
	if projectID == 0 {
		return nil, &ValidationError{Fields: map[string]string{"project": "project is required"}}
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func validateMeetingFields(project *models.Project, name string, date time.Time) error {
	fields := fieldErrors{}

	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		fields.add("name", "name is required")
	case trimmed != name:
		fields.add("name", "name cannot have leading or trailing whitespace")
	case utf8.RuneCountInString(name) > constants.MaxTaskNameLength:
		fields.add("name", fmt.Sprintf("name cannot exceed %d characters", constants.MaxTaskNameLength))
	}

	switch {
	case date.IsZero():
		fields.add("date", "date is required")
	case !project.ContainsDate(date):
		fields.add("date", "date must fall within the project date range")
	}

	return fields.err()
}
