package pages

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tutorboard/internal/api"
	"tutorboard/internal/pkg/forms"
	"tutorboard/internal/query"
)

// AdminsHandler is the superAdmin-only page for managing admin
// accounts: list/search, create, edit, soft delete + restore,
// activate/deactivate and password change.
type AdminsHandler struct {
	*Deps
}

func NewAdminsHandler(d *Deps) *AdminsHandler { return &AdminsHandler{Deps: d} }

func (h *AdminsHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/admins", h.List)
	g.POST("/admins", h.Create)
	g.POST("/admins/:id/update", h.Update)
	g.POST("/admins/:id/delete", h.Delete)
	g.POST("/admins/:id/restore", h.Restore)
	g.POST("/admins/:id/activate", h.Activate)
	g.POST("/admins/:id/deactivate", h.Deactivate)
	g.POST("/admins/:id/password", h.ChangePassword)
}

func (h *AdminsHandler) load(ctx context.Context, p listParams) (api.Page[api.Admin], error) {
	key := query.K("admins", p.Search, strconv.Itoa(p.Page), strconv.Itoa(p.Limit))
	return query.Get(ctx, h.Cache, key, func(ctx context.Context) (api.Page[api.Admin], error) {
		return h.API.Admins().List(ctx, api.AdminListParams{Search: p.Search, Page: p.Page, Limit: p.Limit})
	})
}

func (h *AdminsHandler) List(c *gin.Context) {
	p := parseListParams(c)
	base := gin.H{"Title": "Admins", "Params": p}

	page, err := h.load(c.Request.Context(), p)
	if err != nil {
		h.failPage(c, err, "admins.html", base)
		return
	}
	base["Rows"] = page.Data
	base["Meta"] = page.Meta
	h.render(c, http.StatusOK, "admins.html", base)
}

// renderWithDialog re-renders the list with a dialog kept open after a
// failed submission, preserving the typed values and inline errors.
func (h *AdminsHandler) renderWithDialog(c *gin.Context, dialog string, form any, errs map[string]string, formError string) {
	p := parseListParams(c)
	base := gin.H{
		"Title":       "Admins",
		"Params":      p,
		"Dialog":      dialog,
		"Form":        formValues(form),
		"FieldErrors": errs,
		"FormError":   formError,
	}
	page, err := h.load(c.Request.Context(), p)
	if err != nil {
		h.failPage(c, err, "admins.html", base)
		return
	}
	base["Rows"] = page.Data
	base["Meta"] = page.Meta
	h.render(c, http.StatusUnprocessableEntity, "admins.html", base)
}

type createAdminForm struct {
	Username        string `form:"username" binding:"required,min=3"`
	Password        string `form:"password" binding:"required,min=8"`
	ConfirmPassword string `form:"confirmPassword" binding:"required,eqfield=Password"`
	Role            string `form:"role" binding:"required,oneof=admin superAdmin"`
	PhoneNumber     string `form:"phoneNumber" binding:"required,min=7"`
}

func (h *AdminsHandler) Create(c *gin.Context) {
	var f createAdminForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderWithDialog(c, "create", f, forms.FieldErrors(err), "")
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "admins", func(ctx context.Context) error {
		_, err := h.API.Admins().Create(ctx, api.CreateAdminInput{
			Username:    f.Username,
			Password:    f.Password,
			Role:        f.Role,
			PhoneNumber: f.PhoneNumber,
		})
		return err
	})
	if err != nil {
		if api.IsAuthError(err) {
			h.failToast(c, err, "", backTo(c, "/panel/admins"))
			return
		}
		h.renderWithDialog(c, "create", f, nil, api.ErrorMessage(err, "Failed to create admin"))
		return
	}

	h.Sessions.Success(c, "Admin created")
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/admins"))
}

type updateAdminForm struct {
	Username    string `form:"username" binding:"required,min=3"`
	Role        string `form:"role" binding:"required,oneof=admin superAdmin"`
	PhoneNumber string `form:"phoneNumber" binding:"required,min=7"`
}

func (h *AdminsHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid admin id")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/admins"))
		return
	}

	var f updateAdminForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderWithDialog(c, "edit-"+c.Param("id"), f, forms.FieldErrors(err), "")
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "admins", func(ctx context.Context) error {
		_, err := h.API.Admins().Update(ctx, id, api.UpdateAdminInput{
			Username:    f.Username,
			Role:        f.Role,
			PhoneNumber: f.PhoneNumber,
		})
		return err
	})
	if err != nil {
		if api.IsAuthError(err) {
			h.failToast(c, err, "", backTo(c, "/panel/admins"))
			return
		}
		h.renderWithDialog(c, "edit-"+c.Param("id"), f, nil, api.ErrorMessage(err, "Failed to update admin"))
		return
	}

	h.Sessions.Success(c, "Admin updated")
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/admins"))
}

type changePasswordForm struct {
	Password        string `form:"password" binding:"required,min=8"`
	ConfirmPassword string `form:"confirmPassword" binding:"required,eqfield=Password"`
}

func (h *AdminsHandler) ChangePassword(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid admin id")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/admins"))
		return
	}

	var f changePasswordForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderWithDialog(c, "password-"+c.Param("id"), f, forms.FieldErrors(err), "")
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "admins", func(ctx context.Context) error {
		return h.API.Admins().ChangePassword(ctx, id, api.ChangePasswordInput{Password: f.Password})
	})
	if err != nil {
		h.failToast(c, err, "Failed to change password", backTo(c, "/panel/admins"))
		return
	}

	h.Sessions.Success(c, "Password changed")
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/admins"))
}

type confirmForm struct {
	Confirm string `form:"confirm" binding:"required,eq=yes"`
}

func (h *AdminsHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid admin id")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/admins"))
		return
	}

	// delete goes through a confirmation dialog, never a bare click
	var f confirmForm
	if err := c.ShouldBind(&f); err != nil {
		h.Sessions.Fail(c, "Deletion must be confirmed")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/admins"))
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "admins", func(ctx context.Context) error {
		return h.API.Admins().Delete(ctx, id)
	})
	if err != nil {
		h.failToast(c, err, "Failed to delete admin", backTo(c, "/panel/admins"))
		return
	}

	h.Sessions.Success(c, "Admin deleted")
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/admins"))
}

func (h *AdminsHandler) Restore(c *gin.Context)    { h.toggle(c, "Admin restored", h.API.Admins().Restore) }
func (h *AdminsHandler) Activate(c *gin.Context)   { h.toggle(c, "Admin activated", h.API.Admins().Activate) }
func (h *AdminsHandler) Deactivate(c *gin.Context) { h.toggle(c, "Admin deactivated", h.API.Admins().Deactivate) }

// toggle covers the icon actions that fire immediately without a
// confirmation dialog.
func (h *AdminsHandler) toggle(c *gin.Context, okMsg string, op func(context.Context, int64) error) {
	id, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid admin id")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/admins"))
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "admins", func(ctx context.Context) error {
		return op(ctx, id)
	})
	if err != nil {
		h.failToast(c, err, "Action failed", backTo(c, "/panel/admins"))
		return
	}

	h.Sessions.Success(c, okMsg)
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/admins"))
}
