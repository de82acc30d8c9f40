package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rayn18370-max/Study-Buddy/internal/api"
	"github.com/rayn18370-max/Study-Buddy/internal/service"
	"github.com/rs/cors"
)

// newRouter configures the application router with all routes and
// middleware.
func newRouter(studyService *service.StudyService, appLogger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	studyHandler := api.NewStudyHandler(studyService, appLogger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", studyHandler.Generate)
		r.Get("/sessions", studyHandler.ListSessions)
		r.Get("/sessions/{id}", studyHandler.GetSession)
		r.Delete("/sessions/{id}", studyHandler.DeleteSession)
		r.Get("/usage", studyHandler.GetUsage)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			appLogger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
