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

// RequireTaskAccess checks that the user may see the task addressed by the
// :id parameter, which means view access on its parent project.
func RequireTaskAccess(authorizer *auth.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, task.ProjectID).Error; err != nil {
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

		c.Set(constants.ContextKeyTask, task)
		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// RequireMeetingAccess mirrors RequireTaskAccess for meetings.
func RequireMeetingAccess(authorizer *auth.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		meetingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid meeting ID")
			c.Abort()
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var meeting models.Meeting
		if err := database.GetDB().First(&meeting, meetingID).Error; err != nil {
			apierrors.NotFound(c, "Meeting not found")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, meeting.ProjectID).Error; err != nil {
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

		c.Set(constants.ContextKeyMeeting, meeting)
		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// RequireResourceView checks per-resource visibility: owner/staff see all,
// members only non-hidden resources.
func RequireResourceView(authorizer *auth.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid resource ID")
			c.Abort()
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var resource models.Resource
		if err := database.GetDB().First(&resource, resourceID).Error; err != nil {
			apierrors.NotFound(c, "Resource not found")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, resource.ProjectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		allowed, err := authorizer.CanViewResource(user, &project, &resource)
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

		c.Set(constants.ContextKeyResource, resource)
		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// RequireResourceManage restricts resource writes to the project owner or
// staff. It expects the project in context (RequireProjectView or one of
// the resource/task loaders ran first).
func RequireResourceManage(authorizer *auth.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, ok := ProjectFromContext(c)
		if !ok {
			apierrors.Forbidden(c, "Project access required")
			c.Abort()
			return
		}

		user, okUser := CurrentUser(c)
		if !okUser {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !authorizer.CanManageResource(user, project) {
			apierrors.Forbidden(c, "Only the project owner or staff can manage resources")
			c.Abort()
			return
		}

		c.Next()
	}
}
