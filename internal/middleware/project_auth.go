package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/steamtrack/project-tracking-api/internal/auth"
	"github.com/steamtrack/project-tracking-api/internal/constants"
	"github.com/steamtrack/project-tracking-api/internal/database"
	apierrors "github.com/steamtrack/project-tracking-api/internal/errors"
	"github.com/steamtrack/project-tracking-api/internal/models"
)

// RequireProjectView checks that the user may see the project addressed by
// the :id parameter: owner, member, or staff/superuser.
func RequireProjectView(authorizer *auth.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		allowed, err := authorizer.CanViewProject(user, &project)
		if err != nil {
			apierrors.InternalError(c, "")
			c.Abort()
			return
		}
		if !allowed {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// RequireProjectManage checks that the user may update or delete the
// project loaded by RequireProjectView: owner or staff/superuser.
func RequireProjectManage(authorizer *auth.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectInterface, exists := c.Get(constants.ContextKeyProject)
		if !exists {
			apierrors.Forbidden(c, "Project access required")
			c.Abort()
			return
		}

		project, ok := projectInterface.(models.Project)
		if !ok {
			apierrors.InternalError(c, "Invalid project data")
			c.Abort()
			return
		}

		user, okUser := CurrentUser(c)
		if !okUser {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !authorizer.CanManageProject(user, &project) {
			apierrors.Forbidden(c, "Only the project owner or staff can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireStaff restricts a route to staff or superuser accounts.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsElevated() {
			apierrors.Forbidden(c, "Only staff can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// ProjectFromContext retrieves the project loaded by RequireProjectView.
func ProjectFromContext(c *gin.Context) (*models.Project, bool) {
	projectInterface, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return nil, false
	}
	project, ok := projectInterface.(models.Project)
	if !ok {
		return nil, false
	}
	return &project, true
}
