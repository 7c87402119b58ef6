package http

import (
	"net/http"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/utils"
	"github.com/MKhiriev/go-note-vault/models"
)

func (h *Handler) getSecret(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getSecret").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	secret, err := h.services.CustodianService.GetOrCreateSecret(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getSecret").Msg("error getting server secret")
		http.Error(w, "error getting server secret", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.SecretResponse{ServerSecret: secret}, http.StatusOK)
}
