package repository

import (
	"github.com/steamtrack/project-tracking-api/internal/models"
	"github.com/steamtrack/project-tracking-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// FindByKey finds a project by its join key
	FindByKey(key string) (*models.Project, error)

	// ListAll lists every project (staff view) with the total row count
	ListAll(params utils.PaginationParams) ([]models.Project, int64, error)

	// ListForUser lists projects the user owns or is a member of, with the
	// total row count
	ListForUser(userID uint64, params utils.PaginationParams) ([]models.Project, int64, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project and all of its tasks, meetings, resources and
	// membership rows in a transaction
	Delete(id uint64) error

	// AddMember adds a member to a project
	AddMember(member *models.ProjectMember) error

	// RemoveMember removes a member from a project
	RemoveMember(projectID, userID uint64) error

	// SetMembers replaces the project's member set. Callers must not pass
	// the project owner's ID; the service layer rejects it before writing.
	SetMembers(projectID uint64, userIDs []uint64) error

	// FindMember finds a specific project member
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// ListMembers lists all members of a project
	ListMembers(projectID uint64) ([]models.ProjectMember, error)

	// CountMembers counts the project's members
	CountMembers(projectID uint64) (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject lists a project's tasks ordered for the timeline
	ListByProject(projectID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error
}

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(meeting *models.Meeting) error

	// FindByID finds a meeting by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Meeting, error)

	// ListByProject lists a project's meetings ordered by date
	ListByProject(projectID uint64) ([]models.Meeting, error)

	// Update updates a meeting
	Update(meeting *models.Meeting) error

	// Delete soft deletes a meeting
	Delete(id uint64) error
}

// ResourceRepository defines the interface for resource data access
type ResourceRepository interface {
	// Create creates a new resource
	Create(resource *models.Resource) error

	// FindByID finds a resource by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Resource, error)

	// ListByProject lists a project's resources, optionally excluding hidden ones
	ListByProject(projectID uint64, includeHidden bool) ([]models.Resource, error)

	// Update updates a resource
	Update(resource *models.Resource) error

	// Delete soft deletes a resource
	Delete(id uint64) error
}
