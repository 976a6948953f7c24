package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/steamtrack/project-tracking-api/internal/auth"
	"github.com/steamtrack/project-tracking-api/internal/dto"
	apierrors "github.com/steamtrack/project-tracking-api/internal/errors"
	"github.com/steamtrack/project-tracking-api/internal/middleware"
	"github.com/steamtrack/project-tracking-api/internal/services"
	"github.com/steamtrack/project-tracking-api/internal/utils"
)

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
	authorizer     *auth.Authorizer
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, authorizer *auth.Authorizer) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		authorizer:     authorizer,
	}
}

// CreateProject creates a new project. The route is staff-only; the owner
// is always the authenticated actor, regardless of the request body.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		StartDate   string   `json:"start_date" binding:"required"`
		EndDate     string   `json:"end_date" binding:"required"`
		MemberIDs   []uint64 `json:"member_ids"`
	}

	var req CreateProjectRequest
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

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		OwnerID:     user.ID,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project, true))
}

// ListProjects returns the projects visible to the user.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	projects, total, err := h.projectService.ListProjectsForUser(user, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectListResponse(projects, false),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetProject returns project details with members. The join key is only
// included for actors who can manage the project.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	user, okUser := middleware.CurrentUser(c)
	if !okUser {
		apierrors.Unauthorized(c, "")
		return
	}

	detail, members, err := h.projectService.GetProjectWithMembers(project.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	includeKey := h.authorizer.CanManageProject(user, detail)
	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*detail, members, includeKey))
}

// UpdateProject updates a project. Ownership is immutable: a posted owner
// value has no input field to land in and is silently ignored.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type UpdateProjectRequest struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		StartDate   *string   `json:"start_date"`
		EndDate     *string   `json:"end_date"`
		IsArchived  *bool     `json:"is_archived"`
		MemberIDs   *[]uint64 `json:"member_ids"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		IsArchived:  req.IsArchived,
		MemberIDs:   req.MemberIDs,
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

	updated, err := h.projectService.UpdateProject(project.ID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated, true))
}

// DeleteProject deletes a project and everything it owns.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if err := h.projectService.DeleteProject(project.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// Register redeems a join key for the authenticated user. Repeating the
// same POST lands in the already-registered branch and changes nothing.
func (h *ProjectHandler) Register(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type RegisterRequest struct {
		Key string `json:"key" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, result, err := h.projectService.RegisterByKey(userID, req.Key)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Successfully registered to the project"
	if result == services.RegisterAlreadyMember {
		message = "You are already registered to this project"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"project": dto.ToProjectDTO(*project, false),
	})
}

// RegisterMethodNotAllowed rejects GET on the registration endpoint. The
// response shape is fixed and independent of authentication state.
func (h *ProjectHandler) RegisterMethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{
		"error": "GET method not allowed",
	})
}
