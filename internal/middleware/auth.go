package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/steamtrack/project-tracking-api/internal/constants"
	"github.com/steamtrack/project-tracking-api/internal/database"
	apierrors "github.com/steamtrack/project-tracking-api/internal/errors"
	"github.com/steamtrack/project-tracking-api/internal/models"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// RequireAuthRedirect is the redirect variant used by the join-by-key flow:
// an unauthenticated actor is sent to the login page with the original URL
// preserved in the next parameter instead of getting a JSON 401.
func RequireAuthRedirect(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			target := loginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// CurrentUser loads the authenticated user, caching it in the context for
// the rest of the request.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	if cached, exists := c.Get(constants.ContextKeyUser); exists {
		if user, ok := cached.(*models.User); ok {
			return user, true
		}
	}

	userID, exists := GetUserID(c)
	if !exists {
		return nil, false
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		return nil, false
	}

	c.Set(constants.ContextKeyUser, &user)
	return &user, true
}
