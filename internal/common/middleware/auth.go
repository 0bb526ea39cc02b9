package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"arenax-backend/internal/features/session/guard"
	"arenax-backend/internal/features/session/models"
	"arenax-backend/internal/features/session/registry"
	"arenax-backend/internal/features/session/service"
)

const (
	// SessionCookie carries the opaque session ID for browser clients;
	// API clients send it as a bearer token instead.
	SessionCookie = "arenax_session"

	ctxSessionKey  = "session"
	ctxSnapshotKey = "session_snapshot"
)

// Session attaches the caller's session, bootstrapping it on first sight.
// Requests without a session ID proceed anonymously.
func Session(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := sessionIDFrom(c)
		if sessionID == "" {
			c.Set(ctxSnapshotKey, models.Snapshot{State: models.StateAnonymous})
			c.Next()
			return
		}

		sess := reg.Attach(c.Request.Context(), sessionID)
		if sess == nil {
			// Unknown ID: nothing persisted, nothing allocated.
			c.Set(ctxSnapshotKey, models.Snapshot{State: models.StateAnonymous})
			c.Next()
			return
		}
		c.Set(ctxSessionKey, sess)
		c.Set(ctxSnapshotKey, sess.Snapshot())
		c.Next()
	}
}

func sessionIDFrom(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// GetSession returns the attached session, if any.
func GetSession(c *gin.Context) (*service.Session, bool) {
	v, exists := c.Get(ctxSessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*service.Session)
	return sess, ok
}

// GetSnapshot returns the session snapshot taken when the request attached.
func GetSnapshot(c *gin.Context) models.Snapshot {
	if v, exists := c.Get(ctxSnapshotKey); exists {
		if snap, ok := v.(models.Snapshot); ok {
			return snap
		}
	}
	return models.Snapshot{State: models.StateAnonymous}
}

// RequireAuth enforces the authenticated-only route class.
func RequireAuth() gin.HandlerFunc {
	return requireClass(guard.RouteAuthenticated)
}

// RequireAdmin enforces the admin-only route class.
func RequireAdmin() gin.HandlerFunc {
	return requireClass(guard.RouteAdmin)
}

func requireClass(class guard.RouteClass) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch guard.Decide(GetSnapshot(c), class) {
		case guard.Allow:
			c.Next()
		case guard.Wait:
			// Restoration in flight: no redirect decision yet.
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Session restoring, retry"})
		case guard.RedirectLogin:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "redirect": "/login"})
		case guard.RedirectAdminLogin:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required", "redirect": "/admin/login"})
		}
	}
}

// RequireRole gates back-office operations on operational sub-roles.
// Admin passes every role check.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := GetSnapshot(c)
		if snap.IsLoading() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Session restoring, retry"})
			return
		}
		if !snap.IsAuthenticated() || snap.Profile == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required", "redirect": "/admin/login"})
			return
		}
		if snap.Profile.Role == models.RoleAdmin {
			c.Next()
			return
		}
		for _, role := range roles {
			if snap.Profile.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}
