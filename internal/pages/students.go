package pages

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutorboard/internal/api"
	"tutorboard/internal/export"
	"tutorboard/internal/pkg/forms"
	"tutorboard/internal/query"
)

// StudentsHandler lists bot-originated students and exposes the
// moderation actions: block (with a mandatory reason), unblock and
// restore. Students are never created or edited here.
type StudentsHandler struct {
	*Deps
}

func NewStudentsHandler(d *Deps) *StudentsHandler { return &StudentsHandler{Deps: d} }

func (h *StudentsHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/students", h.List)
	g.GET("/students/export.xlsx", h.Export)
	g.POST("/students/:id/block", h.Block)
	g.POST("/students/:id/unblock", h.Unblock)
	g.POST("/students/:id/restore", h.Restore)
}

func (h *StudentsHandler) load(ctx context.Context, p listParams) (api.Page[api.Student], error) {
	key := query.K("students", p.Search, strconv.Itoa(p.Page), strconv.Itoa(p.Limit))
	return query.Get(ctx, h.Cache, key, func(ctx context.Context) (api.Page[api.Student], error) {
		return h.API.Students().List(ctx, api.StudentListParams{Search: p.Search, Page: p.Page, Limit: p.Limit})
	})
}

func (h *StudentsHandler) List(c *gin.Context) {
	p := parseListParams(c)
	base := gin.H{"Title": "Students", "Params": p}

	page, err := h.load(c.Request.Context(), p)
	if err != nil {
		h.failPage(c, err, "students.html", base)
		return
	}
	base["Rows"] = page.Data
	base["Meta"] = page.Meta
	h.render(c, http.StatusOK, "students.html", base)
}

type blockStudentForm struct {
	Reason string `form:"reason" binding:"required,min=3"`
}

// Block requires a non-empty reason before any request leaves the
// dashboard; a missing reason reopens the dialog with an inline error.
func (h *StudentsHandler) Block(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid student id")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/students"))
		return
	}

	var f blockStudentForm
	if err := c.ShouldBind(&f); err != nil {
		p := parseListParams(c)
		base := gin.H{
			"Title":       "Students",
			"Params":      p,
			"Dialog":      "block-" + c.Param("id"),
			"Form":        formValues(f),
			"FieldErrors": forms.FieldErrors(err),
		}
		page, lerr := h.load(c.Request.Context(), p)
		if lerr != nil {
			h.failPage(c, lerr, "students.html", base)
			return
		}
		base["Rows"] = page.Data
		base["Meta"] = page.Meta
		h.render(c, http.StatusUnprocessableEntity, "students.html", base)
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "students", func(ctx context.Context) error {
		return h.API.Students().Block(ctx, id, f.Reason)
	})
	if err != nil {
		h.failToast(c, err, "Failed to block student", backTo(c, "/panel/students"))
		return
	}

	h.Sessions.Success(c, "Student blocked")
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/students"))
}

func (h *StudentsHandler) Unblock(c *gin.Context) {
	h.toggle(c, "Student unblocked", h.API.Students().Unblock)
}

func (h *StudentsHandler) Restore(c *gin.Context) {
	h.toggle(c, "Student restored", h.API.Students().Restore)
}

func (h *StudentsHandler) toggle(c *gin.Context, okMsg string, op func(context.Context, int64) error) {
	id, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid student id")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/students"))
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "students", func(ctx context.Context) error {
		return op(ctx, id)
	})
	if err != nil {
		h.failToast(c, err, "Action failed", backTo(c, "/panel/students"))
		return
	}

	h.Sessions.Success(c, okMsg)
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/students"))
}

// Export streams the current filter's full result set as xlsx.
func (h *StudentsHandler) Export(c *gin.Context) {
	p := parseListParams(c)
	p.Page = 1
	p.Limit = maxLimit

	var rows [][]string
	for {
		page, err := h.API.Students().List(c.Request.Context(), api.StudentListParams{
			Search: p.Search, Page: p.Page, Limit: p.Limit,
		})
		if err != nil {
			h.failToast(c, err, "Export failed", backTo(c, "/panel/students"))
			return
		}
		for _, s := range page.Data {
			rows = append(rows, []string{
				strconv.FormatInt(s.ID, 10),
				s.FirstName,
				s.LastName,
				s.PhoneNumber,
				s.TgUsername,
				yesNo(s.IsActive),
				yesNo(s.IsBlocked),
				s.BlockedReason,
			})
		}
		if !page.Meta.HasNextPage {
			break
		}
		p.Page++
	}

	c.Header("Content-Disposition", `attachment; filename="students.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	err := export.Write(c.Writer, []export.Sheet{{
		Title:  "Students",
		Header: []string{"ID", "First name", "Last name", "Phone", "Telegram", "Active", "Blocked", "Blocked reason"},
		Rows:   rows,
	}})
	if err != nil {
		h.Log.Error("students export", zap.Error(err))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
