// Package server exposes the processing pipeline and history over a small
// HTTP API, the boundary a UI frontend talks to.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/kishore3106/image-location-finder/internal/service"
)

const requestTimeout = 60 * time.Second

// Server wires the locator into HTTP handlers.
type Server struct {
	log        *slog.Logger
	locator    *service.Locator
	thumbSize  int
	corsOrigin string
}

// New creates a Server serving the given locator. thumbSize is the longest
// side of generated thumbnails; corsOrigin is the allowed browser origin.
func New(log *slog.Logger, locator *service.Locator, thumbSize int, corsOrigin string) *Server {
	return &Server{
		log:        log,
		locator:    locator,
		thumbSize:  thumbSize,
		corsOrigin: corsOrigin,
	}
}

// Routes builds the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{s.corsOrigin},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(corsHandler.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/images", s.uploadImage)
		r.Route("/history", func(r chi.Router) {
			r.Get("/", s.listHistory)
			r.Delete("/", s.deleteRecord)
			r.Get("/{index}/thumbnail", s.thumbnail)
			r.Get("/{index}/map", s.openInMaps)
		})
	})

	return r
}
