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

// TransactionsHandler covers booking transactions: filterable list,
// complete (immediate action) and cancel (confirmation dialog with a
// mandatory reason). Completing a transaction also affects the related
// lesson's paid flag, so lesson entries are invalidated alongside.
type TransactionsHandler struct {
	*Deps
}

func NewTransactionsHandler(d *Deps) *TransactionsHandler { return &TransactionsHandler{Deps: d} }

func (h *TransactionsHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/transactions", h.List)
	g.GET("/transactions/export.xlsx", h.Export)
	g.POST("/transactions/:id/complete", h.Complete)
	g.POST("/transactions/:id/cancel", h.Cancel)
}

func (h *TransactionsHandler) load(ctx context.Context, p listParams) (api.Page[api.Transaction], error) {
	key := query.K("transactions", p.Status, strconv.Itoa(p.Page), strconv.Itoa(p.Limit))
	return query.Get(ctx, h.Cache, key, func(ctx context.Context) (api.Page[api.Transaction], error) {
		return h.API.Transactions().List(ctx, api.TransactionListParams{
			Status: p.Status, Page: p.Page, Limit: p.Limit,
		})
	})
}

func (h *TransactionsHandler) List(c *gin.Context) {
	p := parseListParams(c)
	base := gin.H{
		"Title":    "Transactions",
		"Params":   p,
		"Statuses": []string{"pending", "paid", "cancelled"},
	}

	page, err := h.load(c.Request.Context(), p)
	if err != nil {
		h.failPage(c, err, "transactions.html", base)
		return
	}
	base["Rows"] = page.Data
	base["Meta"] = page.Meta
	h.render(c, http.StatusOK, "transactions.html", base)
}

func (h *TransactionsHandler) Complete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid transaction id")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/transactions"))
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "transactions", func(ctx context.Context) error {
		return h.API.Transactions().Complete(ctx, id)
	})
	if err != nil {
		h.failToast(c, err, "Failed to complete transaction", backTo(c, "/panel/transactions"))
		return
	}
	h.Cache.InvalidateResource("lessons")

	h.Sessions.Success(c, "Transaction completed")
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/transactions"))
}

type cancelTransactionForm struct {
	Reason string `form:"reason" binding:"required,min=3"`
}

func (h *TransactionsHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.Sessions.Fail(c, "Invalid transaction id")
		c.Redirect(http.StatusSeeOther, backTo(c, "/panel/transactions"))
		return
	}

	var f cancelTransactionForm
	if err := c.ShouldBind(&f); err != nil {
		p := parseListParams(c)
		base := gin.H{
			"Title":       "Transactions",
			"Params":      p,
			"Statuses":    []string{"pending", "paid", "cancelled"},
			"Dialog":      "cancel-" + c.Param("id"),
			"Form":        formValues(f),
			"FieldErrors": forms.FieldErrors(err),
		}
		page, lerr := h.load(c.Request.Context(), p)
		if lerr != nil {
			h.failPage(c, lerr, "transactions.html", base)
			return
		}
		base["Rows"] = page.Data
		base["Meta"] = page.Meta
		h.render(c, http.StatusUnprocessableEntity, "transactions.html", base)
		return
	}

	err := h.Cache.Mutate(c.Request.Context(), "transactions", func(ctx context.Context) error {
		return h.API.Transactions().Cancel(ctx, id, f.Reason)
	})
	if err != nil {
		h.failToast(c, err, "Failed to cancel transaction", backTo(c, "/panel/transactions"))
		return
	}
	h.Cache.InvalidateResource("lessons")

	h.Sessions.Success(c, "Transaction cancelled")
	c.Redirect(http.StatusSeeOther, backTo(c, "/panel/transactions"))
}

func (h *TransactionsHandler) Export(c *gin.Context) {
	p := parseListParams(c)
	p.Page = 1
	p.Limit = maxLimit

	var rows [][]string
	for {
		page, err := h.API.Transactions().List(c.Request.Context(), api.TransactionListParams{
			Status: p.Status, Page: p.Page, Limit: p.Limit,
		})
		if err != nil {
			h.failToast(c, err, "Export failed", backTo(c, "/panel/transactions"))
			return
		}
		for _, t := range page.Data {
			rows = append(rows, []string{
				strconv.FormatInt(t.ID, 10),
				strconv.FormatInt(t.LessonID, 10),
				strconv.FormatInt(t.StudentID, 10),
				strconv.FormatFloat(t.Price, 'f', 2, 64),
				t.Status,
				t.Reason,
			})
		}
		if !page.Meta.HasNextPage {
			break
		}
		p.Page++
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	err := export.Write(c.Writer, []export.Sheet{{
		Title:  "Transactions",
		Header: []string{"ID", "Lesson", "Student", "Price", "Status", "Reason"},
		Rows:   rows,
	}})
	if err != nil {
		h.Log.Error("transactions export", zap.Error(err))
	}
}
