package router

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutorboard/internal/metrics"
	"tutorboard/internal/middleware"
	"tutorboard/internal/pages"
	"tutorboard/internal/session"
	"tutorboard/web"
)

// New assembles the route tree: public login surfaces, the admin panel
// behind the role guard, the teacher area behind its own guard, plus
// health and metrics endpoints.
func New(deps *pages.Deps, log *zap.Logger, env string) *gin.Engine {
	if env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	tmpl := template.Must(
		template.New("").Funcs(pages.TemplateFuncs()).ParseFS(web.Templates, "templates/*.html"),
	)
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(static))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	pages.NewAuthHandler(deps).RegisterRoutes(r)

	panel := r.Group("/panel", deps.Sessions.RequireRole(session.RoleAdmin, session.RoleSuperAdmin))
	{
		pages.NewStudentsHandler(deps).RegisterRoutes(panel)
		pages.NewTeachersHandler(deps).RegisterRoutes(panel)
		pages.NewLessonsHandler(deps).RegisterRoutes(panel)
		pages.NewTransactionsHandler(deps).RegisterRoutes(panel)
		pages.NewPaymentsHandler(deps).RegisterRoutes(panel)
	}

	// admin account management is superAdmin-only
	super := r.Group("/panel", deps.Sessions.RequireRole(session.RoleSuperAdmin))
	{
		pages.NewAdminsHandler(deps).RegisterRoutes(super)
	}

	teacher := r.Group("/teacher", deps.Sessions.RequireRole(session.RoleTeacher))
	{
		pages.NewTeacherAreaHandler(deps).RegisterRoutes(teacher)
	}

	return r
}
