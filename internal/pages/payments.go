package pages

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tutorboard/internal/api"
	"tutorboard/internal/pkg/forms"
	"tutorboard/internal/query"
	"tutorboard/internal/session"
)

// PaymentsHandler manages teacher payouts: list, create (the payout
// dialog) and cancel with a mandatory reason. A payout touches the
// underlying lesson's paid state, so lessons are invalidated too.
type PaymentsHandler struct {
	*Deps
}

func NewPaymentsHandler(d *Deps) *PaymentsHandler { return &PaymentsHandler{Deps: d} }

func (h *PaymentsHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/payments", h.List)
	g.POST("/payments", h.Create)
	g.POST("/payments/:id/cancel", h.Cancel)
}

func (h *PaymentsHandler) load(ctx context.Context, p listParams) (api.Page[api.TeacherPayment], error) {
	key := query.K("teacher-payments", strconv.Itoa(p.Page), strconv.Itoa(p.Limit))
	return query.Get(ctx, h.Cache, key, func(ctx context.Context) (api.Page[api.TeacherPayment], error) {
		return h.API.TeacherPayments().List(ctx, api.TeacherPaymentListParams{Page: p.Page, Limit: p.Limit})
	})
}

func (h *PaymentsHandler) List(c *gin.Context) {
	p := parseListParams(c)
	base := gin.H{"Title": "Teacher payments", "Params": p}

	page, err := h.load(c.Request.Context(), p)
	if err != nil {
		h.failPage(c, err, "payments.html", base)
		return
	}
	base["Rows"] = page.Data
	base["Meta"] = page.Meta
	h.render(c, http.StatusOK, "payments.html", base)
}

type createPaymentForm struct {
	TeacherID         int64   `form:"teacherId" binding:"required,gt=0"`
	LessonID          int64   `form:"lessonId" binding:"required,gt=0"`
	TotalLessonAmount float64 `form:"totalLessonAmount" binding:"required,gt=0"`
	PlatformComission float64 `form:"platformComission" binding:"min=0,max=100"`
}

func (h *PaymentsHandler) Create(c *gin.Context) {
	var f createPaymentForm
	if err := c.ShouldBind(&f); err != nil {
		p := parseListParams(c)
		base := gin.H{
			"Title":       "Teacher payments",
			"Params":      p,
			"Dialog":      "create",
			"Form":        formValues(f),
			"FieldErrors": forms.FieldErrors(err),
		}
		page, lerr := h.load(c.Request.Context(), p)
		if lerr != nil {
			h.failPage(c, lerr, "payments.html", base)
			return
		}
		base["Rows"] = page.Data
		base["Meta"] = page.Meta
		h.render(c, http.StatusUnprocessableEntity, "payments.html", base)
		return
	}

	paidBy := h.Sessions.DisplayName(c)
	if paidBy == "" {
		if id := session.CurrentIdentity(c); id != nil {
			paidBy = "admin #" + strconv.FormatInt(id.ID, 10)
		}
	}

	err := h.Cache.Mutate(c.Request.Context(), "teacher-payments", func(ctx context.Context) error {
		_, err := h.API.TeacherPayments().Create(ctx, api.CreateTeacherPaymentInput{
			TeacherID:         f.TeacherID,
			LessonID:          f.LessonID,
			TotalLessonAmount: f.TotalLessonAmount,
			PlatformComission: f.PlatformComission,
			PaidBy:            paidBy,
		})
		return err
	})
	if err != nil {
		h.failToast(c, err, "Failed to create payment", backTo(c, "/panel/payments"))
		return
	}
	h.Cache.InvalidateResource("lessons")

	h.Sessions.Success(c, "Payment created")
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/payments"))
}

type cancelPaymentForm struct {
	CanceledReason string `form:"canceledReason" binding:"required,min=3"`
}

func (h *PaymentsHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid payment id")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/payments"))
		return
	}

	var f cancelPaymentForm
	if err := c.ShouldBind(&f); err != nil {
		p := parseListParams(c)
		base := gin.H{
			"Title":       "Teacher payments",
			"Params":      p,
			"Dialog":      "cancel-" + c.Param("id"),
			"Form":        formValues(f),
			"FieldErrors": forms.FieldErrors(err),
		}
		page, lerr := h.load(c.Request.Context(), p)
		if lerr != nil {
			h.failPage(c, lerr, "payments.html", base)
			return
		}
		base["Rows"] = page.Data
		base["Meta"] = page.Meta
		h.render(c, http.StatusUnprocessableEntity, "payments.html", base)
		return
	}

	canceledBy := h.Sessions.DisplayName(c)
	if canceledBy == "" {
		if id := session.CurrentIdentity(c); id != nil {
			canceledBy = "admin #" + strconv.FormatInt(id.ID, 10)
		}
	}

	err := h.Cache.Mutate(c.Request.Context(), "teacher-payments", func(ctx context.Context) error {
		return h.API.TeacherPayments().Cancel(ctx, id, api.CancelTeacherPaymentInput{
			CanceledBy:     canceledBy,
			CanceledReason: f.CanceledReason,
		})
	})
	if err != nil {
		h.failToast(c, err, "Failed to cancel payment", backTo(c, "/panel/payments"))
		return
	}
	h.Cache.InvalidateResource("lessons")

	h.Sessions.Success(c, "Payment cancelled")
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/payments"))
}
