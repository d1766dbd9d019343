package conversation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers conversation and message routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/conversations", func(r chi.Router) {
		r.Post("/", h.CreateConversation)
		r.Get("/", h.ListConversations)
		r.Get("/{id}", h.GetConversation)
		r.Put("/{id}", h.UpdateConversation)
		r.Delete("/{id}", h.DeleteConversation)
		r.Post("/{id}/facts", h.AppendFact)
		r.Post("/{id}/messages", h.SendMessage)
		r.Get("/{id}/messages", h.ListMessages)
	})

	r.Route("/messages", func(r chi.Router) {
		r.Get("/{id}", h.GetMessage)
		r.Delete("/{id}", h.DeleteMessage)
	})
}
