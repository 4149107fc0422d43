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

func init() {
	gin.SetMode(gin.TestMode)
}

func cookiesByName(res *http.Response) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range res.Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestLoginSetsTokenAndRoleCookies(t *testing.T) {
	m := NewManager("test-secret", false)

	r := gin.New()
	r.POST("/login", func(c *gin.Context) {
		m.Login(c, "access-token", RoleAdmin)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

	cookies := cookiesByName(w.Result())
	require.Contains(t, cookies, CookieToken)
	require.Contains(t, cookies, CookieRole)
	assert.Equal(t, "access-token", cookies[CookieToken].Value)
	assert.Equal(t, RoleAdmin, cookies[CookieRole].Value)
	assert.True(t, cookies[CookieToken].HttpOnly)
}

func TestLogoutClearsCookiesAndRedirectsByRole(t *testing.T) {
	cases := []struct {
		role     string
		redirect string
	}{
		{RoleAdmin, "/login/admin"},
		{RoleSuperAdmin, "/login/admin"},
		{RoleTeacher, "/login/teacher"},
		{"", "/login/teacher"},
	}
	for _, tc := range cases {
		t.Run("role="+tc.role, func(t *testing.T) {
			m := NewManager("test-secret", false)
			r := gin.New()
			r.POST("/logout", func(c *gin.Context) { m.Logout(c) })

			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			if tc.role != "" {
				req.AddCookie(&http.Cookie{Name: CookieRole, Value: tc.role})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tc.redirect, w.Header().Get("Location"))

			cookies := cookiesByName(w.Result())
			require.Contains(t, cookies, CookieToken)
			assert.Less(t, cookies[CookieToken].MaxAge, 0)
		})
	}
}

func TestIdentityDecodesTokenCookie(t *testing.T) {
	m := NewManager("test-secret", false)
	raw, err := token.Sign("whatever", 7, RoleTeacher, time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		id, ok := m.Identity(c)
		require.True(t, ok)
		assert.Equal(t, int64(7), id.ID)
		assert.Equal(t, RoleTeacher, id.Role)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieToken, Value: raw})
	req.AddCookie(&http.Cookie{Name: CookieRole, Value: RoleTeacher})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdentityRejectsMalformedToken(t *testing.T) {
	m := NewManager("test-secret", false)

	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		_, ok := m.Identity(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieToken, Value: "not-a-jwt"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestToastsRoundTrip(t *testing.T) {
	m := NewManager("test-secret", false)

	r := gin.New()
	r.POST("/act", func(c *gin.Context) {
		m.Success(c, "Saved")
		m.Fail(c, "Also broke")
		c.Status(http.StatusOK)
	})
	r.GET("/page", func(c *gin.Context) {
		toasts := m.TakeToasts(c)
		require.Len(t, toasts, 2)
		assert.Equal(t, Toast{Kind: "success", Message: "Saved"}, toasts[0])
		assert.Equal(t, Toast{Kind: "error", Message: "Also broke"}, toasts[1])
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/act", nil))

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestLoginPath(t *testing.T) {
	assert.Equal(t, "/login/admin", LoginPath(RoleAdmin))
	assert.Equal(t, "/login/admin", LoginPath(RoleSuperAdmin))
	assert.Equal(t, "/login/teacher", LoginPath(RoleTeacher))
	assert.Equal(t, "/login/teacher", LoginPath("stranger"))
}
