package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/steamtrack/project-tracking-api/internal/errors"
	"github.com/steamtrack/project-tracking-api/internal/middleware"
	"github.com/steamtrack/project-tracking-api/internal/services"
	"github.com/steamtrack/project-tracking-api/internal/timeline"
)

// TimelineHandler renders the project Gantt chart model.
type TimelineHandler struct {
	taskService    *services.TaskService
	meetingService *services.MeetingService
}

// NewTimelineHandler creates a new TimelineHandler.
func NewTimelineHandler(taskService *services.TaskService, meetingService *services.MeetingService) *TimelineHandler {
	return &TimelineHandler{
		taskService:    taskService,
		meetingService: meetingService,
	}
}

// GetTimeline re-reads the project's tasks and meetings and renders the
// chart model. The selection arrives as ?selected=kind:id and is resolved
// against the fresh rows, so a click on a since-deleted item degrades to
// no selection. Inline edits and deletes go through the regular task and
// meeting endpoints and report validation errors like any other write.
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
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

	meetings, err := h.meetingService.ListProjectMeetings(project.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	selection, _ := timeline.ParseSelection(c.Query("selected"))
	model := timeline.Render(tasks, meetings, selection, time.Now())

	c.JSON(http.StatusOK, model)
}
