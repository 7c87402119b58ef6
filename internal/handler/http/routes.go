package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes requiring a bearer credential
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/vault/secret", h.getSecret)
		r.Post("/api/capture/sessions", h.createCaptureSession)
	})

	// the transcript upload is authorized by the single-use capture token
	// alone, never by a bearer credential: the submitting session may already
	// be locked and signed out
	router.Group(func(r chi.Router) {
		r.Post("/api/capture/sessions/{sessionID}/transcript", h.submitTranscript)
	})

	return router
}
