// Package session owns the browser-facing auth state: the bearer token
// and role cookies, the flash queue, and the small display copy of the
// signed-in user kept for the header. The decoded token claims are
// display-only; the platform API re-checks authorization on every call.
package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"tutorboard/internal/pkg/token"
)

const (
	CookieToken = "tb_token"
	CookieRole  = "tb_role"

	sessionName = "tb_session"

	RoleTeacher    = "teacher"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

const identityKey = "identity"

type Identity struct {
	ID       int64
	Role     string
	IsActive bool
}

type Manager struct {
	store  *sessions.CookieStore
	secure bool
}

func NewManager(secret string, secure bool) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   86400 * 7,
	}
	return &Manager{store: store, secure: secure}
}

// LoginPath maps a role to its login surface. Unknown or empty roles
// fall back to the teacher login, mirroring the public entry point.
func LoginPath(role string) string {
	switch role {
	case RoleAdmin, RoleSuperAdmin:
		return "/login/admin"
	default:
		return "/login/teacher"
	}
}

// Identity decodes the token cookie. A missing or malformed token both
// mean "not signed in".
func (m *Manager) Identity(c *gin.Context) (*Identity, bool) {
	raw, err := c.Cookie(CookieToken)
	if err != nil || raw == "" {
		return nil, false
	}
	claims, err := token.Decode(raw)
	if err != nil {
		return nil, false
	}
	role := claims.Role
	if cookieRole, err := c.Cookie(CookieRole); err == nil && cookieRole != "" {
		role = cookieRole
	}
	return &Identity{ID: claims.UserID, Role: role, IsActive: claims.IsActive}, true
}

func (m *Manager) Token(c *gin.Context) string {
	raw, err := c.Cookie(CookieToken)
	if err != nil {
		return ""
	}
	return raw
}

// Login stores the access token and the lowercase role.
func (m *Manager) Login(c *gin.Context, accessToken, role string) {
	c.SetCookie(CookieToken, accessToken, 86400*7, "/", "", m.secure, true)
	c.SetCookie(CookieRole, role, 86400*7, "/", "", m.secure, true)
}

// Logout clears the token, role and display session, then redirects to
// the login surface matching the role that was just cleared.
func (m *Manager) Logout(c *gin.Context) {
	role, _ := c.Cookie(CookieRole)

	c.SetCookie(CookieToken, "", -1, "/", "", m.secure, true)
	c.SetCookie(CookieRole, "", -1, "/", "", m.secure, true)

	s, _ := m.store.Get(c.Request, sessionName)
	s.Options.MaxAge = -1
	_ = s.Save(c.Request, c.Writer)

	c.Redirect(http.StatusSeeOther, LoginPath(role))
}

// SetDisplayName keeps a copy of the signed-in user's name for the
// header. It only seeds the first paint; the profile page itself always
// renders from freshly fetched data.
func (m *Manager) SetDisplayName(c *gin.Context, name string) {
	s, _ := m.store.Get(c.Request, sessionName)
	s.Values["display_name"] = name
	_ = s.Save(c.Request, c.Writer)
}

func (m *Manager) DisplayName(c *gin.Context) string {
	s, _ := m.store.Get(c.Request, sessionName)
	if v, ok := s.Values["display_name"].(string); ok {
		return v
	}
	return ""
}

// Flash enqueues a toast shown on the next rendered page.
func (m *Manager) Flash(c *gin.Context, kind, message string) {
	s, _ := m.store.Get(c.Request, sessionName)
	s.AddFlash(kind + "|" + message)
	_ = s.Save(c.Request, c.Writer)
}

func (m *Manager) Success(c *gin.Context, message string) { m.Flash(c, "success", message) }
func (m *Manager) Fail(c *gin.Context, message string)    { m.Flash(c, "error", message) }

type Toast struct {
	Kind    string
	Message string
}

// TakeToasts drains the flash queue.
func (m *Manager) TakeToasts(c *gin.Context) []Toast {
	s, _ := m.store.Get(c.Request, sessionName)
	flashes := s.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	_ = s.Save(c.Request, c.Writer)

	out := make([]Toast, 0, len(flashes))
	for _, f := range flashes {
		raw, ok := f.(string)
		if !ok {
			continue
		}
		kind, msg := "success", raw
		if i := strings.IndexByte(raw, '|'); i >= 0 {
			kind, msg = raw[:i], raw[i+1:]
		}
		out = append(out, Toast{Kind: kind, Message: msg})
	}
	return out
}
