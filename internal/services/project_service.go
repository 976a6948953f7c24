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
	"github.com/steamtrack/project-tracking-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound         = errors.New("project not found")
	ErrInvalidJoinKey          = errors.New("no project matches this key")
	ErrJoinKeyGenerationFailed = errors.New("failed to generate a unique join key")
)

// RegisterResult describes the outcome of a register-by-key attempt.
type RegisterResult string

const (
	// RegisterJoined means a membership row was added.
	RegisterJoined RegisterResult = "joined"
	// RegisterAlreadyMember means the actor was already the owner or a
	// member; nothing changed.
	RegisterAlreadyMember RegisterResult = "already_registered"
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
// The owner always comes from the authenticated actor, never the request.
type CreateProjectInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	OwnerID     uint64
	MemberIDs   []uint64
}

// CreateProject validates the input, generates the join key and persists the
// project. Key generation is generate-then-insert: the unique index is the
// correctness guarantee and a duplicate-key error triggers a fresh key.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if err := validateProjectFields(input.Name, input.StartDate, input.EndDate, input.OwnerID, input.MemberIDs); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		OwnerID:     input.OwnerID,
	}

	created := false
	for attempt := 0; attempt < constants.MaxJoinKeyAttempts; attempt++ {
		key, err := utils.GenerateJoinKey()
		if err != nil {
			return nil, ErrJoinKeyGenerationFailed
		}
		project.Key = key

		err = s.projectRepo.Create(project)
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	if !created {
		return nil, ErrJoinKeyGenerationFailed
	}

	if len(input.MemberIDs) > 0 {
		if err := s.projectRepo.SetMembers(project.ID, input.MemberIDs); err != nil {
			return nil, fmt.Errorf("failed to set project members: %w", err)
		}
	}

	return project, nil
}

// UpdateProjectInput holds the editable project fields. There is no owner
// field: ownership is immutable and posted owner values are ignored upstream.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsArchived  *bool
	MemberIDs   *[]uint64
}

// UpdateProject applies the changed fields after re-running full validation
// on the merged state.
func (s *ProjectService) UpdateProject(projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.StartDate != nil {
		project.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = *input.EndDate
	}
	if input.IsArchived != nil {
		project.IsArchived = *input.IsArchived
	}

	var memberIDs []uint64
	if input.MemberIDs != nil {
		memberIDs = *input.MemberIDs
	}
	if err := validateProjectFields(project.Name, project.StartDate, project.EndDate, project.OwnerID, memberIDs); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	if input.MemberIDs != nil {
		if err := s.projectRepo.SetMembers(project.ID, *input.MemberIDs); err != nil {
			return nil, fmt.Errorf("failed to set project members: %w", err)
		}
	}

	return project, nil
}

// DeleteProject removes a project and cascades to its tasks, meetings,
// resources and membership rows.
func (s *ProjectService) DeleteProject(projectID uint64) error {
	if _, err := s.findProject(projectID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// GetProjectWithMembers returns a project and all of its members.
func (s *ProjectService) GetProjectWithMembers(projectID uint64) (*models.Project, []models.ProjectMember, error) {
	project, err := s.projectRepo.FindByID(projectID, "Owner")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}

	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list project members: %w", err)
	}

	return project, members, nil
}

// ListProjectsForUser returns the projects visible to the user: everything
// for staff and superusers, owned plus member-of for everyone else.
func (s *ProjectService) ListProjectsForUser(user *models.User, params utils.PaginationParams) ([]models.Project, int64, error) {
	if user.IsElevated() {
		projects, total, err := s.projectRepo.ListAll(params)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list projects: %w", err)
		}
		return projects, total, nil
	}

	projects, total, err := s.projectRepo.ListForUser(user.ID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// RegisterByKey redeems a join key for the user. The transition is
// idempotent: redeeming a key for a project the user already owns or
// belongs to reports RegisterAlreadyMember and changes nothing.
func (s *ProjectService) RegisterByKey(userID uint64, key string) (*models.Project, RegisterResult, error) {
	project, err := s.projectRepo.FindByKey(strings.TrimSpace(key))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidJoinKey
		}
		return nil, "", fmt.Errorf("failed to find project by key: %w", err)
	}

	if project.OwnerID == userID {
		return project, RegisterAlreadyMember, nil
	}

	if _, err := s.projectRepo.FindMember(project.ID, userID); err == nil {
		return project, RegisterAlreadyMember, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    userID,
		JoinedAt:  time.Now(),
	}

	if err := s.projectRepo.AddMember(member); err != nil {
		// A concurrent redeem of the same key lands here; still a no-op.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return project, RegisterAlreadyMember, nil
		}
		return nil, "", fmt.Errorf("failed to add member: %w", err)
	}

	return project, RegisterJoined, nil
}

func (s *ProjectService) findProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// validateProjectFields enforces the project invariants. The owner-in-members
// check is the single enforcement point for the owner-not-a-member rule;
// membership writes go through SetMembers with the same input.
func validateProjectFields(name string, startDate, endDate time.Time, ownerID uint64, memberIDs []uint64) error {
	fields := fieldErrors{}

	if strings.TrimSpace(name) == "" {
		fields.add("name", "name is required")
	} else if utf8.RuneCountInString(name) > constants.MaxProjectNameLength {
		fields.add("name", fmt.Sprintf("name cannot exceed %d characters", constants.MaxProjectNameLength))
	}

	if startDate.IsZero() {
		fields.add("start_date", "start date is required")
	}
	if endDate.IsZero() {
		fields.add("end_date", "end date is required")
	}
	if !startDate.IsZero() && !endDate.IsZero() && !startDate.Before(endDate) {
		fields.add("start_date", "start date must be before end date")
	}

	if ownerID == 0 {
		fields.add("owner", "owner is required")
	}

	for _, id := range memberIDs {
		if id == ownerID {
			fields.add("members", "the owner cannot be added as a member")
			break
		}
	}

	return fields.err()
}
