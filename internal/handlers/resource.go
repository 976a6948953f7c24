package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/steamtrack/project-tracking-api/internal/auth"
	"github.com/steamtrack/project-tracking-api/internal/constants"
	"github.com/steamtrack/project-tracking-api/internal/dto"
	apierrors "github.com/steamtrack/project-tracking-api/internal/errors"
	"github.com/steamtrack/project-tracking-api/internal/middleware"
	"github.com/steamtrack/project-tracking-api/internal/models"
	"github.com/steamtrack/project-tracking-api/internal/services"
)

// ResourceHandler coordinates resource-related HTTP handlers.
type ResourceHandler struct {
	resourceService *services.ResourceService
	authorizer      *auth.Authorizer
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(resourceService *services.ResourceService, authorizer *auth.Authorizer) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
		authorizer:      authorizer,
	}
}

// CreateResource creates a resource in the project loaded by
// RequireProjectView; the route is additionally gated to owner/staff.
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateResourceRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		FilePath    string `json:"file_path"`
		IsHidden    bool   `json:"is_hidden"`
	}

	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	resource, err := h.resourceService.CreateResource(services.CreateResourceInput{
		Name:        req.Name,
		Description: req.Description,
		FilePath:    req.FilePath,
		IsHidden:    req.IsHidden,
		ProjectID:   project.ID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToResourceDTO(*resource))
}

// ListResources lists the project's resources. Hidden resources only show
// for actors who can manage the project.
func (h *ResourceHandler) ListResources(c *gin.Context) {
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

	includeHidden := h.authorizer.CanManageResource(user, project)
	resources, err := h.resourceService.ListProjectResources(project.ID, includeHidden)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resources": dto.ToResourceDTOs(resources),
	})
}

// GetResource returns the resource loaded by RequireResourceView.
func (h *ResourceHandler) GetResource(c *gin.Context) {
	resourceInterface, exists := c.Get(constants.ContextKeyResource)
	if !exists {
		apierrors.InternalError(c, "Resource not found in context")
		return
	}
	resource := resourceInterface.(models.Resource)

	c.JSON(http.StatusOK, dto.ToResourceDTO(resource))
}

// UpdateResource updates a resource.
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	resourceInterface, exists := c.Get(constants.ContextKeyResource)
	if !exists {
		apierrors.InternalError(c, "Resource not found in context")
		return
	}
	resource := resourceInterface.(models.Resource)

	type UpdateResourceRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		FilePath    *string `json:"file_path"`
		IsHidden    *bool   `json:"is_hidden"`
	}

	var req UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.resourceService.UpdateResource(resource.ID, services.UpdateResourceInput{
		Name:        req.Name,
		Description: req.Description,
		FilePath:    req.FilePath,
		IsHidden:    req.IsHidden,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceDTO(*updated))
}

// DeleteResource deletes a resource.
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	resourceInterface, exists := c.Get(constants.ContextKeyResource)
	if !exists {
		apierrors.InternalError(c, "Resource not found in context")
		return
	}
	resource := resourceInterface.(models.Resource)

	if err := h.resourceService.DeleteResource(resource.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Resource deleted successfully",
	})
}
