package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/good-yellow-bee/chatter/internal/api/messages"
	"github.com/good-yellow-bee/chatter/internal/api/middleware"
	"github.com/good-yellow-bee/chatter/internal/api/projects"
	"github.com/good-yellow-bee/chatter/internal/api/respond"
)

// availableEndpoints is echoed in the 404 body so clients can discover the
// API surface.
var availableEndpoints = []string{
	"GET /health",
	"GET /projects/{projectId}/participants",
	"GET /projects/{projectId}/messages",
	"POST /projects/{projectId}/messages",
	"PUT /projects/{projectId}/messages/{messageId}",
	"DELETE /projects/{projectId}/messages/{messageId}",
	"POST /projects/{projectId}/init",
}

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestLogger(s.config.Verbose))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.PrometheusMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	messageHandler := messages.NewHandler(s.chat)
	projectHandler := projects.NewHandler(s.chat)

	r.Get("/health", s.healthHandler.Health)

	r.Route("/projects/{projectID}", func(r chi.Router) {
		r.Get("/participants", projectHandler.GetParticipants)
		r.Post("/init", projectHandler.Init)

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", messageHandler.List)
			r.Post("/", messageHandler.Send)
			r.Put("/{messageID}", messageHandler.Edit)
			r.Delete("/{messageID}", messageHandler.Delete)
		})
	})

	notFound := func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusNotFound, map[string]any{
			"error":              "route not found",
			"method":             r.Method,
			"url":                r.URL.Path,
			"availableEndpoints": availableEndpoints,
		})
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}
