package pages

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutorboard/internal/api"
	"tutorboard/internal/nav"
	"tutorboard/internal/session"
)

// AuthHandler serves the two login surfaces and logout.
type AuthHandler struct {
	*Deps
}

func NewAuthHandler(d *Deps) *AuthHandler { return &AuthHandler{Deps: d} }

func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Root)
	r.GET("/login/teacher", h.TeacherLoginPage)
	r.POST("/login/teacher", h.TeacherLogin)
	r.GET("/login/admin", h.AdminLoginPage)
	r.POST("/login/admin", h.AdminLogin)
	r.POST("/logout", h.Logout)
}

func (h *AuthHandler) Root(c *gin.Context) {
	if id, ok := h.Sessions.Identity(c); ok {
		c.Redirect(http.StatusSeeOther, nav.HomePath(id.Role))
		return
	}
	c.Redirect(http.StatusSeeOther, "/login/teacher")
}

func (h *AuthHandler) TeacherLoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Surface": "teacher", "Title": "Teacher sign in"})
}

func (h *AuthHandler) AdminLoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Surface": "admin", "Title": "Admin sign in"})
}

type teacherLoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
}

type adminLoginForm struct {
	Username string `form:"username" binding:"required,min=3"`
	Password string `form:"password" binding:"required,min=8"`
}

func (h *AuthHandler) TeacherLogin(c *gin.Context) {
	var f teacherLoginForm
	if err := c.ShouldBind(&f); err != nil {
		h.loginFailed(c, "teacher", "Teacher sign in", "Enter a valid email and password")
		return
	}

	res, err := h.API.Auth().TeacherLogin(c.Request.Context(), api.TeacherLoginInput{
		Email: f.Email, Password: f.Password,
	})
	if err != nil {
		h.loginFailed(c, "teacher", "Teacher sign in", api.ErrorMessage(err, "Login failed"))
		return
	}
	h.finishLogin(c, res)
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var f adminLoginForm
	if err := c.ShouldBind(&f); err != nil {
		h.loginFailed(c, "admin", "Admin sign in", "Enter a valid username and password")
		return
	}

	res, err := h.API.Auth().AdminLogin(c.Request.Context(), api.AdminLoginInput{
		Username: f.Username, Password: f.Password,
	})
	if err != nil {
		h.loginFailed(c, "admin", "Admin sign in", api.ErrorMessage(err, "Login failed"))
		return
	}
	h.finishLogin(c, res)
}

func (h *AuthHandler) loginFailed(c *gin.Context, surface, title, msg string) {
	h.render(c, http.StatusUnauthorized, "login.html", gin.H{
		"Surface": surface,
		"Title":   title,
		"Error":   msg,
	})
}

// finishLogin writes the cookies, seeds the header display name from
// the freshly authenticated profile and lands on the role's home page.
func (h *AuthHandler) finishLogin(c *gin.Context, res *api.LoginResult) {
	role := strings.ToLower(res.Role)
	h.Sessions.Login(c, res.AccessToken, role)

	ctx := api.ContextWithToken(c.Request.Context(), res.AccessToken)
	switch role {
	case session.RoleTeacher:
		if t, err := h.API.Auth().TeacherMe(ctx); err == nil {
			h.Sessions.SetDisplayName(c, t.FullName)
		} else {
			h.Log.Warn("teacher me after login", zap.Error(err))
		}
	default:
		if a, err := h.API.Auth().AdminMe(ctx); err == nil {
			h.Sessions.SetDisplayName(c, a.Username)
		} else {
			h.Log.Warn("admin me after login", zap.Error(err))
		}
	}

	c.Redirect(http.StatusSeeOther, nav.HomePath(role))
}

// Logout clears the cookies, the display session and the whole query
// cache, then routes to the login surface of the role that signed out.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cache.Clear()
	h.Sessions.Logout(c)
}
