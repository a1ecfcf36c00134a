package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"handlestats/internal/session"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// SnapshotSource exposes the current analysis state
type SnapshotSource interface {
	Snapshot() session.Snapshot
}

// App represents the report server
type App struct {
	router    *chi.Mux
	source    SnapshotSource
	templates *template.Template
}

// NewApp creates the report server over source
func NewApp(source SnapshotSource) (*App, error) {
	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		source:    source,
		templates: templates,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/report.md", a.handleMarkdown)

	a.router.Get("/api/status", a.handleStatus)
	a.router.Get("/api/result", a.handleResult)
}

// ServeHTTP lets the app be mounted directly as a handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Server builds an http.Server bound to addr
func (a *App) Server(addr string) *http.Server {
	log.Printf("[UI] Report server configured on %s", addr)
	return &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
