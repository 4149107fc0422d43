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

// TeachersHandler is the admin-side view over teacher accounts: list,
// edit and soft delete. Teachers register themselves; admins only
// correct their records.
type TeachersHandler struct {
	*Deps
}

func NewTeachersHandler(d *Deps) *TeachersHandler { return &TeachersHandler{Deps: d} }

func (h *TeachersHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/teachers", h.List)
	g.POST("/teachers/:id/update", h.Update)
	g.POST("/teachers/:id/delete", h.Delete)
}

func (h *TeachersHandler) load(ctx context.Context, p listParams) (api.Page[api.Teacher], error) {
	key := query.K("teachers", strconv.Itoa(p.Page), strconv.Itoa(p.Limit))
	return query.Get(ctx, h.Cache, key, func(ctx context.Context) (api.Page[api.Teacher], error) {
		return h.API.Teachers().List(ctx, api.TeacherListParams{Page: p.Page, Limit: p.Limit})
	})
}

func (h *TeachersHandler) List(c *gin.Context) {
	p := parseListParams(c)
	base := gin.H{"Title": "Teachers", "Params": p}

	page, err := h.load(c.Request.Context(), p)
	if err != nil {
		h.failPage(c, err, "teachers.html", base)
		return
	}
	base["Rows"] = page.Data
	base["Meta"] = page.Meta
	h.render(c, http.StatusOK, "teachers.html", base)
}

type updateTeacherForm struct {
	Email         string  `form:"email" binding:"required,email"`
	PhoneNumber   string  `form:"phoneNumber" binding:"required,min=7"`
	FullName      string  `form:"fullName" binding:"required,min=2"`
	CardNumber    string  `form:"cardNumber" binding:"omitempty,min=12"`
	Specification string  `form:"specification" binding:"required,oneof=english french spanish italian german"`
	Level         string  `form:"level" binding:"required,oneof=b2 c1 c2"`
	HourPrice     float64 `form:"hourPrice" binding:"required,gt=0"`
	Experience    *int    `form:"experience" binding:"omitempty,min=0"`
	PortfolioLink string  `form:"portfolioLink" binding:"omitempty,url"`
}

func (f updateTeacherForm) input() api.UpdateTeacherInput {
	in := api.UpdateTeacherInput{
		Email:         f.Email,
		PhoneNumber:   f.PhoneNumber,
		FullName:      f.FullName,
		CardNumber:    f.CardNumber,
		Specification: f.Specification,
		Level:         f.Level,
		PortfolioLink: f.PortfolioLink,
	}
	if f.HourPrice > 0 {
		in.HourPrice = &f.HourPrice
	}
	// presence decides whether experience is sent: a submitted 0 is a
	// real correction, an absent field stays untouched
	in.Experience = f.Experience
	return in
}

func (h *TeachersHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid teacher id")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/teachers"))
		return
	}

	var f updateTeacherForm
	if err := c.ShouldBind(&f); err != nil {
		p := parseListParams(c)
		base := gin.H{
			"Title":       "Teachers",
			"Params":      p,
			"Dialog":      "edit-" + c.Param("id"),
			"Form":        formValues(f),
			"FieldErrors": forms.FieldErrors(err),
		}
		page, lerr := h.load(c.Request.Context(), p)
		if lerr != nil {
			h.failPage(c, lerr, "teachers.html", base)
			return
		}
		base["Rows"] = page.Data
		base["Meta"] = page.Meta
		h.render(c, http.StatusUnprocessableEntity, "teachers.html", base)
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "teachers", func(ctx context.Context) error {
		_, err := h.API.Teachers().Update(ctx, id, f.input())
		return err
	})
	if err != nil {
		h.failToast(c, err, "Failed to update teacher", backTo(c, "/panel/teachers"))
		return
	}

	h.Sessions.Success(c, "Teacher updated")
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/teachers"))
}

func (h *TeachersHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid teacher id")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/teachers"))
		return
	}

	var f confirmForm
	if err := c.ShouldBind(&f); err != nil {
		h.Sessions.Fail(c, "Deletion must be confirmed")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/teachers"))
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "teachers", func(ctx context.Context) error {
		return h.API.Teachers().Delete(ctx, id)
	})
	if err != nil {
		h.failToast(c, err, "Failed to delete teacher", backTo(c, "/panel/teachers"))
		return
	}

	h.Sessions.Success(c, "Teacher deleted")
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/teachers"))
}
