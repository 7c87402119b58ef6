package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/service"
	"github.com/MKhiriev/go-note-vault/internal/utils"
	"github.com/MKhiriev/go-note-vault/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createCaptureSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.createCaptureSession").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	token, err := h.services.CaptureTokenService.Create(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createCaptureSession").Msg("error creating capture session")
		http.Error(w, "error creating capture session", statusFromError(err))
		return
	}

	response := models.CaptureSessionResponse{
		SessionID: token.SessionID,
		ExpiresAt: token.ExpiresAt,
	}

	utils.WriteJSON(w, response, http.StatusCreated)
}

// submitTranscript accepts a capture payload authorized by the single-use
// session token in the URL. No bearer credential is required or inspected.
//
// The payload is validated before the token is redeemed, so a malformed
// submission does not consume the token and can be retried.
func (h *Handler) submitTranscript(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		log.Error().Str("func", "*Handler.submitTranscript").Msg("no session ID was given")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var transcriptRequest models.TranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&transcriptRequest); err != nil {
		log.Err(err).Str("func", "*Handler.submitTranscript").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	formatted, err := h.services.TranscriptService.Format(ctx, transcriptRequest)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTranscriptPayload):
			log.Err(err).Msg("empty transcript payload")
			http.Error(w, "empty transcript payload", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrUnsupportedAudio):
			log.Err(err).Msg("unsupported audio payload")
			http.Error(w, "unsupported audio payload", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during transcript formatting")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	// a plain 401 regardless of whether the token never existed, expired, or
	// was already used
	session, err := h.services.CaptureTokenService.Redeem(ctx, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrCaptureTokenInvalid) {
			log.Err(err).Str("session_id", sessionID).Msg("capture token rejected")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		log.Err(err).Str("func", "*Handler.submitTranscript").Msg("error redeeming capture token")
		http.Error(w, "error redeeming capture token", statusFromError(err))
		return
	}

	log.Info().Int64("user_id", session.UserID).Str("session_id", sessionID).Msg("transcript accepted")

	utils.WriteJSON(w, models.TranscriptResponse{Text: formatted}, http.StatusOK)
}
