package dto

import (
	"github.com/steamtrack/project-tracking-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	Status      models.TaskStatus `json:"status"`
	ProjectID   uint64            `json:"project_id"`
}

// MeetingDTO represents a meeting in API responses
type MeetingDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	ProjectID   uint64 `json:"project_id"`
}

// ResourceDTO represents a resource in API responses
type ResourceDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	FilePath    string `json:"file_path"`
	IsHidden    bool   `json:"is_hidden"`
	ProjectID   uint64 `json:"project_id"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		StartDate:   task.StartDate.Format(dateFormat),
		EndDate:     task.EndDate.Format(dateFormat),
		Status:      task.Status,
		ProjectID:   task.ProjectID,
	}
}

// ToMeetingDTO converts a Meeting model to MeetingDTO
func ToMeetingDTO(meeting models.Meeting) MeetingDTO {
	return MeetingDTO{
		ID:          meeting.ID,
		Name:        meeting.Name,
		Description: meeting.Description,
		Date:        meeting.Date.Format(dateFormat),
		Status:      models.MeetingStatusLabel,
		ProjectID:   meeting.ProjectID,
	}
}

// ToResourceDTO converts a Resource model to ResourceDTO
func ToResourceDTO(resource models.Resource) ResourceDTO {
	return ResourceDTO{
		ID:          resource.ID,
		Name:        resource.Name,
		Description: resource.Description,
		FilePath:    resource.FilePath,
		IsHidden:    resource.IsHidden,
		ProjectID:   resource.ProjectID,
	}
}

// ToTaskDTOs converts tasks to DTOs
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToMeetingDTOs converts meetings to DTOs
func ToMeetingDTOs(meetings []models.Meeting) []MeetingDTO {
	items := make([]MeetingDTO, len(meetings))
	for i, meeting := range meetings {
		items[i] = ToMeetingDTO(meeting)
	}
	return items
}

// ToResourceDTOs converts resources to DTOs
func ToResourceDTOs(resources []models.Resource) []ResourceDTO {
	items := make([]ResourceDTO, len(resources))
	for i, resource := range resources {
		items[i] = ToResourceDTO(resource)
	}
	return items
}
