package repository

import (
	"github.com/steamtrack/project-tracking-api/internal/models"
	"gorm.io/gorm"
)

// GormResourceRepository is a GORM implementation of ResourceRepository
type GormResourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &GormResourceRepository{db: db}
}

// Create creates a new resource
func (r *GormResourceRepository) Create(resource *models.Resource) error {
	return r.db.Create(resource).Error
}

// FindByID finds a resource by ID with optional preloading
func (r *GormResourceRepository) FindByID(id uint64, preload ...string) (*models.Resource, error) {
	var resource models.Resource
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&resource, id).Error; err != nil {
		return nil, err
	}

	return &resource, nil
}

// ListByProject lists a project's resources; hidden rows are excluded
// unless includeHidden is set.
func (r *GormResourceRepository) ListByProject(projectID uint64, includeHidden bool) ([]models.Resource, error) {
	var resources []models.Resource

	query := r.db.Where("project_id = ?", projectID)
	if !includeHidden {
		query = query.Where("is_hidden = ?", false)
	}

	if err := query.Order("name ASC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

// Update updates a resource
func (r *GormResourceRepository) Update(resource *models.Resource) error {
	return r.db.Save(resource).Error
}

// Delete soft deletes a resource
func (r *GormResourceRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Resource{}, id).Error
}
