// Package pages contains the dashboard's resource pages: each handler
// composes a searchable paginated table with create/edit/status dialogs
// on top of the cached query layer.
package pages

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutorboard/internal/api"
	"tutorboard/internal/nav"
	"tutorboard/internal/observability"
	"tutorboard/internal/query"
	"tutorboard/internal/session"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Deps is the shared wiring every page handler receives.
type Deps struct {
	API       *api.Client
	Cache     *query.Cache
	Sessions  *session.Manager
	Log       *zap.Logger
	AssetBase string
}

type listParams struct {
	Search string
	Page   int
	Limit  int
	Status string
}

func parseListParams(c *gin.Context) listParams {
	p := listParams{
		Search: c.Query("search"),
		Page:   atoiDefault(c.Query("page"), 1),
		Limit:  atoiDefault(c.Query("limit"), defaultLimit),
		Status: c.Query("status"),
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > maxLimit {
		p.Limit = defaultLimit
	}
	return p
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// render wraps c.HTML with the layout context: identity, sidebar,
// pending toasts, asset base.
func (d *Deps) render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	for _, key := range []string{"Dialog", "FormError", "LoadError"} {
		if _, ok := data[key]; !ok {
			data[key] = ""
		}
	}
	if _, ok := data["FieldErrors"]; !ok {
		data["FieldErrors"] = map[string]string{}
	}
	if _, ok := data["Form"]; !ok {
		data["Form"] = map[string]string{}
	}
	if id := session.CurrentIdentity(c); id != nil {
		data["Identity"] = id
		data["Nav"] = nav.ForRole(id.Role)
	}
	data["DisplayName"] = d.Sessions.DisplayName(c)
	data["Toasts"] = d.Sessions.TakeToasts(c)
	data["AssetBase"] = d.AssetBase
	data["Path"] = c.Request.URL.Path
	c.HTML(status, tmpl, data)
}

// failToast handles a failed mutation: auth failures end the session
// and land on the login page, anything else becomes an error toast and
// a redirect back to the table.
func (d *Deps) failToast(c *gin.Context, err error, fallback, backTo string) {
	observability.CaptureErr(err)
	d.Log.Warn("mutation failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	if api.IsAuthError(err) {
		d.Cache.Clear()
		d.Sessions.Logout(c)
		return
	}
	d.Sessions.Fail(c, api.ErrorMessage(err, fallback))
	c.Redirect(http.StatusSeeOther, backTo)
}

// failPage handles a failed list fetch: the page renders with an error
// banner instead of silently showing an empty table.
func (d *Deps) failPage(c *gin.Context, err error, tmpl string, data gin.H) {
	observability.CaptureErr(err)
	d.Log.Error("query failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	if api.IsAuthError(err) {
		d.Cache.Clear()
		d.Sessions.Logout(c)
		return
	}
	if data == nil {
		data = gin.H{}
	}
	data["LoadError"] = api.ErrorMessage(err, "Failed to load data")
	d.render(c, http.StatusBadGateway, tmpl, data)
}

// backTo rebuilds the list URL including the active query string so
// redirects keep the user's search/page/limit state.
func backTo(c *gin.Context, basePath string) string {
	if q := c.Request.URL.RawQuery; q != "" {
		return basePath + "?" + q
	}
	return basePath
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
