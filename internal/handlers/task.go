package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/steamtrack/project-tracking-api/internal/constants"
	"github.com/steamtrack/project-tracking-api/internal/dto"
	apierrors "github.com/steamtrack/project-tracking-api/internal/errors"
	"github.com/steamtrack/project-tracking-api/internal/middleware"
	"github.com/steamtrack/project-tracking-api/internal/models"
	"github.com/steamtrack/project-tracking-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task in the project loaded by RequireProjectView.
// The project reference is fixed here and cannot be changed afterwards.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateTaskRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		StartDate   string `json:"start_date" binding:"required"`
		EndDate     string `json:"end_date" binding:"required"`
		Status      string `json:"status"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		apierrors.ValidationFailed(c, map[string]string{"start_date": "must be a YYYY-MM-DD date"})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		apierrors.ValidationFailed(c, map[string]string{"end_date": "must be a YYYY-MM-DD date"})
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      models.TaskStatus(req.Status),
		ProjectID:   project.ID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks lists the project's tasks in timeline order.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	tasks, err := h.taskService.ListProjectTasks(project.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// GetTask returns the task loaded by RequireTaskAccess.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskInterface, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}
	task := taskInterface.(models.Task)

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// UpdateTask updates a task. There is no project field: the parent project
// is immutable after creation.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskInterface, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}
	task := taskInterface.(models.Task)

	type UpdateTaskRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		StartDate   *string `json:"start_date"`
		EndDate     *string `json:"end_date"`
		Status      *string `json:"status"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
	}

	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			apierrors.ValidationFailed(c, map[string]string{"start_date": "must be a YYYY-MM-DD date"})
			return
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			apierrors.ValidationFailed(c, map[string]string{"end_date": "must be a YYYY-MM-DD date"})
			return
		}
		input.EndDate = &endDate
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}

	updated, err := h.taskService.UpdateTask(task.ID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask deletes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskInterface, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}
	task := taskInterface.(models.Task)

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}
