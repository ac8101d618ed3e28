package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/paulgosnell/liv-concierge/internal/api/assistant"
	"github.com/paulgosnell/liv-concierge/internal/api/concierge"
	"github.com/paulgosnell/liv-concierge/internal/api/content"
	"github.com/paulgosnell/liv-concierge/internal/api/leads"
)

// Config contains dependencies needed for the router setup.
type Config struct {
	ConciergeHandler *concierge.Handler
	AssistantHandler *assistant.Handler
	LeadsHandler     *leads.Handler
	ContentHandler   *content.Handler

	// StaffMiddleware guards the admin lead routes.
	StaffMiddleware func(http.Handler) http.Handler
}

// SetupRouter wires the API routes. Server-wide middleware (request ID,
// logging, recoverer) is applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://livsweden.com", "http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public website routes.
		r.Group(func(r chi.Router) {
			r.Post("/concierge/sessions", cfg.ConciergeHandler.OpenSession)
			r.Post("/concierge/sessions/{sessionID}/messages", cfg.ConciergeHandler.PostMessage)
			r.Get("/concierge/sessions/{sessionID}", cfg.ConciergeHandler.GetSession)
			r.Get("/concierge/sessions/{sessionID}/stream", cfg.ConciergeHandler.StreamSession)

			if cfg.AssistantHandler != nil {
				r.Post("/assistant/stream", cfg.AssistantHandler.StreamChat)
			}

			r.Post("/leads", cfg.LeadsHandler.SubmitLead)

			r.Get("/content/triggers", cfg.ContentHandler.ListTriggers)
			r.Get("/content/triggers/{slug}", cfg.ContentHandler.GetTrigger)
		})

		// Staff-only routes.
		r.Group(func(r chi.Router) {
			r.Use(cfg.StaffMiddleware)
			r.Get("/admin/leads", cfg.LeadsHandler.ListLeads)
			r.Get("/admin/leads/{leadID}", cfg.LeadsHandler.GetLead)
		})
	})

	return r
}
