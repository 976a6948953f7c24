package dto

import (
	"time"

	"github.com/steamtrack/project-tracking-api/internal/models"
)

const dateFormat = "2006-01-02"

// ProjectDTO represents a project in API responses. The join key is only
// included for actors who may manage the project.
type ProjectDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsArchived  bool   `json:"is_archived"`
	OwnerID     uint64 `json:"owner_id"`
	Key         string `json:"key,omitempty"`
}

// ProjectMemberDTO represents a member in a project
type ProjectMemberDTO struct {
	User     UserDTO   `json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

// ProjectDetailDTO represents detailed project information
type ProjectDetailDTO struct {
	ProjectDTO
	Owner   *UserDTO           `json:"owner,omitempty"`
	Members []ProjectMemberDTO `json:"members"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project, includeKey bool) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		StartDate:   project.StartDate.Format(dateFormat),
		EndDate:     project.EndDate.Format(dateFormat),
		IsArchived:  project.IsArchived,
		OwnerID:     project.OwnerID,
	}
	if includeKey {
		dto.Key = project.Key
	}
	return dto
}

// ToProjectMemberDTO converts a member to DTO
func ToProjectMemberDTO(member models.ProjectMember) ProjectMemberDTO {
	return ProjectMemberDTO{
		User:     ToUserDTO(member.User),
		JoinedAt: member.JoinedAt,
	}
}

// ToProjectDetailDTO converts a project with members to a detailed DTO
func ToProjectDetailDTO(project models.Project, members []models.ProjectMember, includeKey bool) ProjectDetailDTO {
	memberDTOs := make([]ProjectMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToProjectMemberDTO(member)
	}

	detail := ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(project, includeKey),
		Members:    memberDTOs,
	}

	if project.Owner.ID != 0 {
		owner := ToUserDTO(project.Owner)
		detail.Owner = &owner
	}

	return detail
}

// ToProjectListResponse converts projects to a list payload
func ToProjectListResponse(projects []models.Project, includeKey bool) []ProjectDTO {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project, includeKey)
	}
	return items
}
