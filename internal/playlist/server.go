package playlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ServerConfig holds the HTTP-only settings of the playlist API.
type ServerConfig struct {
	MaxUploadBytes int64
	AllowedOrigin  string
}

type Server struct {
	svc            *Service
	maxUploadBytes int64
	allowedOrigin  string
}

func NewServer(svc *Service, cfg ServerConfig) *Server {
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "*"
	}
	return &Server{
		svc:            svc,
		maxUploadBytes: cfg.MaxUploadBytes,
		allowedOrigin:  cfg.AllowedOrigin,
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}
	r.Use(corsMiddleware(s.allowedOrigin))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/playlist", s.handleListPlaylist)
		r.Post("/playlist", s.handleInsertTrack)

		r.With(bodySizeLimitMiddleware(s.maxUploadBytes)).Post("/upload", s.handleUpload)

		r.Get("/track/*", s.handleStreamTrack)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "musicquiz",
	})
}
