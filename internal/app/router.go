package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lanternhq/lantern/internal/auth"
	"github.com/lanternhq/lantern/internal/clients"
	"github.com/lanternhq/lantern/internal/decisions"
	"github.com/lanternhq/lantern/internal/events"
	"github.com/lanternhq/lantern/internal/notes"
	"github.com/lanternhq/lantern/internal/observability"
	"github.com/lanternhq/lantern/internal/projects"
	"github.com/lanternhq/lantern/internal/tasks"
	"github.com/lanternhq/lantern/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthMiddleware   auth.Middleware
	AuthHandler      *auth.Handler
	UsersHandler     *users.Handler
	ClientsHandler   *clients.Handler
	ProjectsHandler  *projects.Handler
	DecisionsHandler *decisions.Handler
	TasksHandler     *tasks.Handler
	NotesHandler     *notes.Handler
	EventsHandler    *events.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with the full API surface.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(params.AuthMiddleware.RequirePrincipal)
			r.Route("/users", params.UsersHandler.MountRoutes)
			r.Route("/clients", params.ClientsHandler.MountRoutes)
			r.Route("/projects", params.ProjectsHandler.MountRoutes)
			r.Route("/decisions", params.DecisionsHandler.MountRoutes)
			r.Route("/tasks", params.TasksHandler.MountRoutes)
			r.Route("/notes", params.NotesHandler.MountRoutes)
			r.Route("/events", params.EventsHandler.MountRoutes)
			r.Route("/admin", params.UsersHandler.MountAdminRoutes)
		})
	})

	return r
}
