package codegen

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers generation, review, execution log and request routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/codegen", func(r chi.Router) {
		r.Post("/generate", h.GenerateCode)
		r.Post("/review", h.ReviewCode)

		r.Route("/generations", func(r chi.Router) {
			r.Get("/", h.ListGenerations)
			r.Get("/{id}", h.GetGeneration)
			r.Delete("/{id}", h.DeleteGeneration)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", h.ListReviews)
			r.Get("/{id}", h.GetReview)
			r.Delete("/{id}", h.DeleteReview)
		})

		r.Route("/executions", func(r chi.Router) {
			r.Post("/", h.CreateExecutionLog)
			r.Get("/", h.ListExecutionLogs)
			r.Get("/{id}", h.GetExecutionLog)
			r.Patch("/{id}/status", h.UpdateExecutionStatus)
			r.Delete("/{id}", h.DeleteExecutionLog)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", h.CreateRequest)
			r.Get("/", h.ListRequests)
			r.Get("/{id}", h.GetRequest)
			r.Patch("/{id}/status", h.UpdateRequestStatus)
			r.Delete("/{id}", h.DeleteRequest)
		})
	})
}
