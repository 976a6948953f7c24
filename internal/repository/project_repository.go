package repository

import (
	"time"

	"github.com/steamtrack/project-tracking-api/internal/database"
	"github.com/steamtrack/project-tracking-api/internal/models"
	"github.com/steamtrack/project-tracking-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// FindByKey finds a project by its join key
func (r *GormProjectRepository) FindByKey(key string) (*models.Project, error) {
	var project models.Project
	// "key" is reserved in some dialects; a map condition lets GORM quote it.
	if err := r.db.Where(map[string]interface{}{"key": key}).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListAll lists every project (staff view)
func (r *GormProjectRepository) ListAll(params utils.PaginationParams) ([]models.Project, int64, error) {
	var total int64
	if err := r.db.Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := r.db.Order("projects.start_date ASC").
		Scopes(database.Paginate(params)).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// ListForUser lists projects the user owns or is a member of
func (r *GormProjectRepository) ListForUser(userID uint64, params utils.PaginationParams) ([]models.Project, int64, error) {
	membershipSubQuery := r.db.Model(&models.ProjectMember{}).
		Select("1").
		Where("project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID)

	var total int64
	err := r.db.Model(&models.Project{}).
		Where("projects.owner_id = ? OR EXISTS (?)", userID, membershipSubQuery).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err = r.db.Model(&models.Project{}).
		Where("projects.owner_id = ? OR EXISTS (?)", userID, membershipSubQuery).
		Order("projects.start_date ASC").
		Scopes(database.Paginate(params)).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete deletes a project and all of its children in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Meeting{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Resource{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember adds a member to a project
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from a project
func (r *GormProjectRepository) RemoveMember(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// SetMembers replaces the project's member set. Duplicate IDs collapse;
// existing rows are kept, missing ones inserted, extra ones removed.
// The owner's ID must not appear in userIDs; validation upstream enforces it.
func (r *GormProjectRepository) SetMembers(projectID uint64, userIDs []uint64) error {
	unique := make([]uint64, 0, len(userIDs))
	seen := make(map[uint64]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("project_id = ?", projectID)
		if len(unique) > 0 {
			query = query.Where("user_id NOT IN ?", unique)
		}
		if err := query.Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		if len(unique) == 0 {
			return nil
		}

		members := make([]models.ProjectMember, len(unique))
		for i, userID := range unique {
			members[i] = models.ProjectMember{
				ProjectID: projectID,
				UserID:    userID,
				JoinedAt:  time.Now(),
			}
		}

		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).
			Create(&members).Error
	})
}

// FindMember finds a specific project member
func (r *GormProjectRepository) FindMember(projectID, userID uint64) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a project
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CountMembers counts the project's members
func (r *GormProjectRepository) CountMembers(projectID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}
