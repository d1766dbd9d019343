package api

import (
	"net/http"
	"time"

	agentapi "github.com/NinhThienLuan/404-Brain-Not-Found/internal/api/agent"
	codegenapi "github.com/NinhThienLuan/404-Brain-Not-Found/internal/api/codegen"
	conversationapi "github.com/NinhThienLuan/404-Brain-Not-Found/internal/api/conversation"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/api/docs"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/api/middleware"
	userapi "github.com/NinhThienLuan/404-Brain-Not-Found/internal/api/user"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	agentHandler *agentapi.Handler,
	codegenHandler *codegenapi.Handler,
	conversationHandler *conversationapi.Handler,
	userHandler *userapi.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(90 * time.Second)) // Default timeout, provider calls are slow

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	agentapi.RegisterRoutes(r, agentHandler)
	codegenapi.RegisterRoutes(r, codegenHandler)
	conversationapi.RegisterRoutes(r, conversationHandler)
	userapi.RegisterRoutes(r, userHandler)

	return r
}
