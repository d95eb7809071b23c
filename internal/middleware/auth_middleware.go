package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/pkg/auth"
	"github.com/mailam-cse/achievers-portal/internal/pkg/flash"
	"github.com/mailam-cse/achievers-portal/internal/pkg/logger"
)

const viewerContextKey = "viewer"

// UserLoader resolves the account behind a validated session token. Role
// flags are read from the store on every request, so staff changes take
// effect without reissuing the session.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthMiddleware resolves the session cookie into a Viewer and enforces
// the route access tiers.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	users      UserLoader
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, users UserLoader, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
		cookieName: cookieName,
	}
}

// CurrentViewer resolves the session cookie on every request and stores the
// resulting Viewer in the context. It never aborts: a missing, invalid or
// stale session simply yields the anonymous viewer, and the tier middlewares
// decide what that means per route.
func (m *AuthMiddleware) CurrentViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := m.resolveViewer(c)
		c.Set(viewerContextKey, viewer)
		c.Next()
	}
}

func (m *AuthMiddleware) resolveViewer(c *gin.Context) models.Viewer {
	anonymous := models.ViewerFor(nil)

	token, err := c.Cookie(m.cookieName)
	if err != nil || token == "" {
		return anonymous
	}

	claims, err := m.jwtService.ValidateToken(token)
	if err != nil {
		logger.Debug().Err(err).Msg("Session token rejected")
		return anonymous
	}

	user, err := m.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil || !user.IsActive {
		return anonymous
	}
	return models.ViewerFor(user)
}

// SetViewer stores a viewer on the context, replacing whatever CurrentViewer
// resolved. Handler tests use it to act as a given caller.
func SetViewer(c *gin.Context, viewer models.Viewer) {
	c.Set(viewerContextKey, viewer)
}

// GetViewer returns the Viewer resolved by CurrentViewer, anonymous when the
// middleware has not run.
func GetViewer(c *gin.Context) models.Viewer {
	if v, exists := c.Get(viewerContextKey); exists {
		if viewer, ok := v.(models.Viewer); ok {
			return viewer
		}
	}
	return models.ViewerFor(nil)
}

// RequireAuth sends anonymous callers to the login page, preserving the
// requested path so login can return them there.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := GetViewer(c)
		if !viewer.Authenticated() {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusSeeOther, "/login/?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole rejects viewers below the given tier with a notice and a
// redirect to the home page. Anonymous callers get the same treatment as
// logged-in callers without the tier.
func (m *AuthMiddleware) RequireRole(min models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := GetViewer(c)
		if viewer.Role.AtLeast(min) {
			c.Next()
			return
		}

		logger.Warn().
			Str("path", c.Request.URL.Path).
			Int64("userID", viewer.UserID()).
			Str("role", viewer.Role.String()).
			Msg("Access denied")
		flash.Set(c, flash.Error, "You do not have permission to access that page.")
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
	}
}

// RequireStaff gates staff-only routes
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return m.RequireRole(models.RoleStaff)
}

// RequireSuperuser gates superuser-only routes
func (m *AuthMiddleware) RequireSuperuser() gin.HandlerFunc {
	return m.RequireRole(models.RoleSuperuser)
}
