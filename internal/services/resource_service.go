package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/steamtrack/project-tracking-api/internal/constants"
	"github.com/steamtrack/project-tracking-api/internal/models"
	"github.com/steamtrack/project-tracking-api/internal/repository"
	"gorm.io/gorm"
)

var ErrResourceNotFound = errors.New("resource not found")

// ResourceService handles resource business logic.
type ResourceService struct {
	resourceRepo repository.ResourceRepository
	projectRepo  repository.ProjectRepository
}

// NewResourceService creates a new ResourceService.
func NewResourceService(resourceRepo repository.ResourceRepository, projectRepo repository.ProjectRepository) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
		projectRepo:  projectRepo,
	}
}

// CreateResourceInput represents input for creating a resource.
type CreateResourceInput struct {
	Name        string
	Description string
	FilePath    string
	IsHidden    bool
	ProjectID   uint64
}

// CreateResource validates the input and persists the resource.
func (s *ResourceService) CreateResource(input CreateResourceInput) (*models.Resource, error) {
	if input.ProjectID == 0 {
		return nil, &ValidationError{Fields: map[string]string{"project": "project is required"}}
	}
	if _, err := s.projectRepo.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := validateResourceFields(input.Name); err != nil {
		return nil, err
	}

	resource := &models.Resource{
		Name:        input.Name,
		Description: input.Description,
		FilePath:    input.FilePath,
		IsHidden:    input.IsHidden,
		ProjectID:   input.ProjectID,
	}

	if err := s.resourceRepo.Create(resource); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return resource, nil
}

// UpdateResourceInput holds the editable resource fields.
type UpdateResourceInput struct {
	Name        *string
	Description *string
	FilePath    *string
	IsHidden    *bool
}

// UpdateResource applies the changed fields after re-running validation.
func (s *ResourceService) UpdateResource(resourceID uint64, input UpdateResourceInput) (*models.Resource, error) {
	resource, err := s.GetResource(resourceID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		resource.Name = *input.Name
	}
	if input.Description != nil {
		resource.Description = *input.Description
	}
	if input.FilePath != nil {
		resource.FilePath = *input.FilePath
	}
	if input.IsHidden != nil {
		resource.IsHidden = *input.IsHidden
	}

	if err := validateResourceFields(resource.Name); err != nil {
		return nil, err
	}

	if err := s.resourceRepo.Update(resource); err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}

	return resource, nil
}

// DeleteResource removes a resource.
func (s *ResourceService) DeleteResource(resourceID uint64) error {
	if _, err := s.GetResource(resourceID); err != nil {
		return err
	}

	if err := s.resourceRepo.Delete(resourceID); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}

	return nil
}

// GetResource retrieves a resource by ID.
func (s *ResourceService) GetResource(resourceID uint64) (*models.Resource, error) {
	resource, err := s.resourceRepo.FindByID(resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}
	return resource, nil
}

// ListProjectResources lists a project's resources. Hidden rows are only
// included for actors allowed to manage the project.
func (s *ResourceService) ListProjectResources(projectID uint64, includeHidden bool) ([]models.Resource, error) {
	resources, err := s.resourceRepo.ListByProject(projectID, includeHidden)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

func validateResourceFields(name string) error {
	fields := fieldErrors{}

	if strings.TrimSpace(name) == "" {
		fields.add("name", "name is required")
	} else if utf8.RuneCountInString(name) > constants.MaxResourceNameLength {
		fields.add("name", fmt.Sprintf("name cannot exceed %d characters", constants.MaxResourceNameLength))
	}

	return fields.err()
}
