package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"calendarbot/internal/config"
	"calendarbot/internal/services"
)

// NewRouter assembles the API surface. The health endpoint stays
// outside the auth group; everything under /event requires basic auth.
func NewRouter(cfg *config.APIConfig, service *services.EventService) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.Group(func(r chi.Router) {
		r.Use(BasicAuth(cfg))
		NewEventHandler(service).Register(r)
	})

	return router
}
