package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorboard/internal/pkg/token"
)

func guardedEngine(m *Manager, roles ...string) *gin.Engine {
	r := gin.New()
	g := r.Group("/panel", m.RequireRole(roles...))
	g.GET("/secret", func(c *gin.Context) {
		id := CurrentIdentity(c)
		c.String(http.StatusOK, "id=%d role=%s", id.ID, id.Role)
	})
	return r
}

func signedCookie(t *testing.T, id int64, role string) *http.Cookie {
	t.Helper()
	raw, err := token.Sign("secret", id, role, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: CookieToken, Value: raw}
}

func TestRequireRoleRedirectsAnonymous(t *testing.T) {
	m := NewManager("test-secret", false)
	r := guardedEngine(m, RoleAdmin, RoleSuperAdmin)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panel/secret", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login/admin", w.Header().Get("Location"))
}

func TestRequireRoleRedirectsWrongRole(t *testing.T) {
	m := NewManager("test-secret", false)
	r := guardedEngine(m, RoleAdmin, RoleSuperAdmin)

	req := httptest.NewRequest(http.MethodGet, "/panel/secret", nil)
	req.AddCookie(signedCookie(t, 5, RoleTeacher))
	req.AddCookie(&http.Cookie{Name: CookieRole, Value: RoleTeacher})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login/admin", w.Header().Get("Location"))
}

func TestRequireRoleAdmitsAllowedRole(t *testing.T) {
	m := NewManager("test-secret", false)
	r := guardedEngine(m, RoleAdmin, RoleSuperAdmin)

	req := httptest.NewRequest(http.MethodGet, "/panel/secret", nil)
	req.AddCookie(signedCookie(t, 9, RoleSuperAdmin))
	req.AddCookie(&http.Cookie{Name: CookieRole, Value: RoleSuperAdmin})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "id=9 role=superadmin", w.Body.String())
}

func TestRequireRoleRedirectsMalformedToken(t *testing.T) {
	m := NewManager("test-secret", false)
	r := guardedEngine(m, RoleTeacher)

	req := httptest.NewRequest(http.MethodGet, "/panel/secret", nil)
	req.AddCookie(&http.Cookie{Name: CookieToken, Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login/teacher", w.Header().Get("Location"))
}
