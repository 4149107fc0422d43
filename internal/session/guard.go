package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorboard/internal/api"
)

// RequireRole guards a route group. Unauthenticated visitors and
// visitors with a different role are redirected to the login surface of
// the first allowed role; page code never runs for them. On success the
// identity is stored on the context and the bearer token is attached to
// the request context for the API client.
func (m *Manager) RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	redirect := "/login/teacher"
	if len(roles) > 0 {
		redirect = LoginPath(roles[0])
	}

	return func(c *gin.Context) {
		id, ok := m.Identity(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, redirect)
			c.Abort()
			return
		}
		if _, ok := allowed[id.Role]; !ok {
			c.Redirect(http.StatusSeeOther, redirect)
			c.Abort()
			return
		}

		c.Set(identityKey, id)
		c.Request = c.Request.WithContext(api.ContextWithToken(c.Request.Context(), m.Token(c)))
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by RequireRole.
func CurrentIdentity(c *gin.Context) *Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(*Identity); ok {
			return id
		}
	}
	return nil
}
