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

// MeetingHandler coordinates meeting-related HTTP handlers.
type MeetingHandler struct {
	meetingService *services.MeetingService
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(meetingService *services.MeetingService) *MeetingHandler {
	return &MeetingHandler{
		meetingService: meetingService,
	}
}

// CreateMeeting creates a meeting in the project loaded by RequireProjectView.
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateMeetingRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Date        string `json:"date" binding:"required"`
	}

	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		apierrors.ValidationFailed(c, map[string]string{"date": "must be a YYYY-MM-DD date"})
		return
	}

	meeting, err := h.meetingService.CreateMeeting(services.CreateMeetingInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		ProjectID:   project.ID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMeetingDTO(*meeting))
}

// ListMeetings lists the project's meetings ordered by date.
func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	meetings, err := h.meetingService.ListProjectMeetings(project.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meetings": dto.ToMeetingDTOs(meetings),
	})
}

// GetMeeting returns the meeting loaded by RequireMeetingAccess.
func (h *MeetingHandler) GetMeeting(c *gin.Context) {
	meetingInterface, exists := c.Get(constants.ContextKeyMeeting)
	if !exists {
		apierrors.InternalError(c, "Meeting not found in context")
		return
	}
	meeting := meetingInterface.(models.Meeting)

	c.JSON(http.StatusOK, dto.ToMeetingDTO(meeting))
}

// UpdateMeeting updates a meeting.
func (h *MeetingHandler) UpdateMeeting(c *gin.Context) {
	meetingInterface, exists := c.Get(constants.ContextKeyMeeting)
	if !exists {
		apierrors.InternalError(c, "Meeting not found in context")
		return
	}
	meeting := meetingInterface.(models.Meeting)

	type UpdateMeetingRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Date        *string `json:"date"`
	}

	var req UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateMeetingInput{
		Name:        req.Name,
		Description: req.Description,
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			apierrors.ValidationFailed(c, map[string]string{"date": "must be a YYYY-MM-DD date"})
			return
		}
		input.Date = &date
	}

	updated, err := h.meetingService.UpdateMeeting(meeting.ID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetingDTO(*updated))
}

// DeleteMeeting deletes a meeting.
func (h *MeetingHandler) DeleteMeeting(c *gin.Context) {
	meetingInterface, exists := c.Get(constants.ContextKeyMeeting)
	if !exists {
		apierrors.InternalError(c, "Meeting not found in context")
		return
	}
	meeting := meetingInterface.(models.Meeting)

	if err := h.meetingService.DeleteMeeting(meeting.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Meeting deleted successfully",
	})
}
