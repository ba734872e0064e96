package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmkrav/helper-api/internal/api"
	apiMiddleware "github.com/dmkrav/helper-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace) // Add trace IDs for improved error handling

	generateHandler := api.NewGenerateHandler(app.generationService)
	chatHandler := api.NewChatHandler(app.chatService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", generateHandler.Generate)
		r.Post("/chat/start", chatHandler.StartChat)
		r.Post("/chat/send", chatHandler.SendChat)
		r.Post("/stateless-chat", chatHandler.StatelessChat)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Liveness banner kept for clients that probe the root path.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("AI-Помощник Backend is running!")); err != nil {
			app.logger.Error("Failed to write root response", "error", err)
		}
	})

	return r
}
