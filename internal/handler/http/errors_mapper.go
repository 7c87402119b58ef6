package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-note-vault/internal/service"
	"github.com/MKhiriev/go-note-vault/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrCaptureTokenInvalid:     http.StatusUnauthorized,
	service.ErrEmptyTranscriptPayload:  http.StatusBadRequest,
	service.ErrUnsupportedAudio:        http.StatusBadRequest,

	store.ErrUserSecretNotFound:     http.StatusNotFound,
	store.ErrCaptureSessionNotFound: http.StatusUnauthorized,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
