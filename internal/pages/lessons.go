package pages

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tutorboard/internal/api"
	"tutorboard/internal/query"
)

// LessonsHandler is the admin-side read view over all lessons with
// search and a status filter. Lessons are authored by teachers in their
// own area; admins only delete abandoned ones.
type LessonsHandler struct {
	*Deps
}

func NewLessonsHandler(d *Deps) *LessonsHandler { return &LessonsHandler{Deps: d} }

func (h *LessonsHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/lessons", h.List)
	g.POST("/lessons/:id/delete", h.Delete)
}

func (h *LessonsHandler) load(ctx context.Context, p listParams) (api.Page[api.Lesson], error) {
	key := query.K("lessons", p.Search, p.Status, strconv.Itoa(p.Page), strconv.Itoa(p.Limit))
	return query.Get(ctx, h.Cache, key, func(ctx context.Context) (api.Page[api.Lesson], error) {
		return h.API.Lessons().List(ctx, api.LessonListParams{
			Search: p.Search, Status: p.Status, Page: p.Page, Limit: p.Limit,
		})
	})
}

func (h *LessonsHandler) List(c *gin.Context) {
	p := parseListParams(c)
	base := gin.H{
		"Title":    "Lessons",
		"Params":   p,
		"Statuses": []string{"available", "booked", "completed", "cancelled"},
	}

	page, err := h.load(c.Request.Context(), p)
	if err != nil {
		h.failPage(c, err, "lessons.html", base)
		return
	}
	base["Rows"] = page.Data
	base["Meta"] = page.Meta
	h.render(c, http.StatusOK, "lessons.html", base)
}

func (h *LessonsHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid lesson id")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/lessons"))
		return
	}

	var f confirmForm
	if err := c.ShouldBind(&f); err != nil {
		h.Sessions.Fail(c, "Deletion must be confirmed")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/lessons"))
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "lessons", func(ctx context.Context) error {
		return h.API.Lessons().Delete(ctx, id)
	})
	if err != nil {
		h.failToast(c, err, "Failed to delete lesson", backTo(c, "/panel/lessons"))
		return
	}

	h.Sessions.Success(c, "Lesson deleted")
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/lessons"))
}
