package web

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/jobdeck/jobboard-client/internal/core/ports"
	"github.com/jobdeck/jobboard-client/internal/session"
	"github.com/jobdeck/jobboard-client/internal/web/handler"
	"github.com/jobdeck/jobboard-client/internal/web/middleware"
)

// Deps carries the wired core the views render from: the session store and
// the three resource clients.
type Deps struct {
	Store *session.Store
	Auth  ports.AuthClient
	Jobs  ports.JobsClient
	Apps  ports.ApplicationsClient
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all views registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("jobdeck"))
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- View controllers ---
	authHandler := handler.NewAuthHandler(deps.Store, deps.Auth)
	homeHandler := handler.NewHomeHandler(deps.Jobs, deps.Store)
	jobDetailHandler := handler.NewJobDetailHandler(deps.Jobs, deps.Apps, deps.Store)
	dashboardHandler := handler.NewDashboardHandler(deps.Jobs, deps.Apps, deps.Store, deps.Log)
	guard := middleware.RequireSession(deps.Store)

	// --- Public views ---
	e.GET("/", homeHandler.List)
	e.GET("/login", authHandler.LoginView)
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)
	e.GET("/session", authHandler.Session)
	e.GET("/jobs/:id", jobDetailHandler.Get)

	// --- Authenticated views ---
	e.POST("/jobs/:id/apply", jobDetailHandler.Apply, guard)

	dash := e.Group("/dashboard", guard)
	dash.GET("", dashboardHandler.View)
	dash.POST("/jobs", dashboardHandler.CreateJob)
	dash.DELETE("/jobs/:id", dashboardHandler.DeleteJob)
	dash.POST("/applications/:id/status", dashboardHandler.UpdateStatus)
	dash.GET("/applications/:id/resume", dashboardHandler.Resume)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	backendHealthHandler := handler.NewBackendHealthHandler(deps.Jobs)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", backendHealthHandler.Readiness)

	return e
}
