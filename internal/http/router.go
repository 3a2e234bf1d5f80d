package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"juan-note/internal/handlers"
	"juan-note/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Notes  service.NoteService
	States service.StateService
	Bulk   service.BulkService

	// Store is pinged by /health.
	Store handlers.Pinger
	// Events feeds the /events websocket stream.
	Events handlers.Subscriber

	AllowedOrigins []string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS(deps.AllowedOrigins))

	notes := handlers.NewNotesHandler(deps.Notes)
	states := handlers.NewStatesHandler(deps.States, deps.Notes)
	bulk := handlers.NewBulkHandler(deps.Bulk)

	r.Method(http.MethodGet, "/", handlers.NewDocsHandler())
	r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Store))
	r.Method(http.MethodGet, "/events", handlers.NewEventsHandler(deps.Events, deps.AllowedOrigins))

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", notes.List)
		r.Post("/", notes.Create)
		r.Post("/search", notes.Search)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", notes.Get)
			r.Put("/", notes.Update)
			r.Delete("/", notes.Delete)
			r.Patch("/done", notes.SetDone)
			r.Method(http.MethodGet, "/html", handlers.NewNoteHTMLHandler(deps.Notes))
		})
	})

	r.Route("/states", func(r chi.Router) {
		r.Get("/", states.List)
		r.Post("/", states.Create)
		r.Post("/assign", states.Assign)
		r.Put("/{id}", states.Update)
		r.Delete("/{id}", states.Delete)
	})

	r.Route("/bulk/notes", func(r chi.Router) {
		r.Post("/delete", bulk.Delete)
		r.Patch("/priority", bulk.Priority)
		r.Patch("/done", bulk.Done)
		r.Patch("/state", bulk.State)
		r.Patch("/order", bulk.Order)
	})

	return r
}
