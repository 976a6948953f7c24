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

var ErrTaskNotFound = errors.New("task not found")

// TaskService handles task business logic.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      models.TaskStatus
	ProjectID   uint64
}

// CreateTask validates the input against the owning project's date range
// and persists the task.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	project, err := s.loadProject(input.ProjectID)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusNotStarted
	}

	if err := validateTaskFields(project, input.Name, input.StartDate, input.EndDate, status); err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      status,
		ProjectID:   project.ID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput holds the editable task fields. The project reference is
// immutable after creation and has no input field.
type UpdateTaskInput struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *models.TaskStatus
}

// UpdateTask applies the changed fields after re-running full validation on
// the merged state, including the project bounds check.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	project, err := s.loadProject(task.ProjectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		task.Name = *input.Name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.StartDate != nil {
		task.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		task.EndDate = *input.EndDate
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	if err := validateTaskFields(project, task.Name, task.StartDate, task.EndDate, task.Status); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.GetTask(taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// GetTask retrieves a task by ID.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListProjectTasks lists a project's tasks in timeline order.
func (s *TaskService) ListProjectTasks(projectID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) loadProject(projectID uint64) (*models.Project, error) {
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

// validateTaskFields enforces the task invariants: name constraints, date
// presence and ordering, the project bounds rule and the status enum.
func validateTaskFields(project *models.Project, name string, startDate, endDate time.Time, status models.TaskStatus) error {
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
	case startDate.IsZero() && endDate.IsZero():
		fields.add("start_date", "start date is required")
		fields.add("end_date", "end date is required")
	case startDate.IsZero():
		fields.add("start_date", "start date is required when an end date is set")
	case endDate.IsZero():
		fields.add("end_date", "end date is required when a start date is set")
	case startDate.After(endDate):
		fields.add("start_date", "start date cannot be after end date")
	case !project.ContainsRange(startDate, endDate):
		if startDate.Before(project.StartDate) {
			fields.add("start_date", "start date cannot be before the project start date")
		}
		if endDate.After(project.EndDate) {
			fields.add("end_date", "end date cannot be after the project end date")
		}
	}

	if !models.ValidTaskStatus(status) {
		fields.add("status", "status must be one of not_started, in_progress, done")
	}

	return fields.err()
}
