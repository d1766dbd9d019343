package agent

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers agent workflow routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/agent", func(r chi.Router) {
		r.Post("/intent", h.ClassifyIntent)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Get("/", h.ListSessions)
			r.Get("/{id}", h.GetSession)
			r.Delete("/{id}", h.DeleteSession)
			r.Post("/{id}/context", h.ProcessContext)
			r.Post("/{id}/prompt", h.ProcessPrompt)
			r.Post("/{id}/messages", h.SendMessage)
			r.Post("/{id}/analyze", h.AnalyzeCode)
			r.Get("/{id}/result", h.GetSessionResult)
		})
	})
}
