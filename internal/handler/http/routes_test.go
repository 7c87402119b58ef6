package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/service"
	"github.com/MKhiriev/go-note-vault/models"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	h := &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			AuthService: &fakeAuthSvc{
				parseFn: func(_ context.Context, _ string) (models.Token, error) {
					return models.Token{UserID: 1}, nil
				},
			},
			CustodianService: &fakeCustodianSvc{
				getFn: func(_ context.Context, _ int64) (string, error) {
					return "secret", nil
				},
			},
			CaptureTokenService: &fakeCaptureTokenSvc{
				createFn: func(_ context.Context, _ int64) (models.CaptureToken, error) {
					return models.CaptureToken{SessionID: "sess"}, nil
				},
				redeemFn: func(_ context.Context, sessionID string) (models.CaptureSession, error) {
					return models.CaptureSession{SessionID: sessionID, UserID: 1}, nil
				},
			},
			TranscriptService: service.NewTranscriptService(logger.Nop()),
		},
	}
	return h.Init()
}

func TestRoutes_AuthBoundary(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		authHeader string
		wantStatus int
	}{
		{
			name:       "vault secret requires credential",
			method:     http.MethodPost,
			target:     "/api/vault/secret",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "vault secret with credential",
			method:     http.MethodPost,
			target:     "/api/vault/secret",
			authHeader: "Bearer good",
			wantStatus: http.StatusOK,
		},
		{
			name:       "capture session mint requires credential",
			method:     http.MethodPost,
			target:     "/api/capture/sessions",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "capture session mint with credential",
			method:     http.MethodPost,
			target:     "/api/capture/sessions",
			authHeader: "Bearer good",
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			target:     "/api/unknown",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "transcript upload rejects GET",
			method:     http.MethodGet,
			target:     "/api/capture/sessions/sess/transcript",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	router := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRoutes_TraceIDHeaderSet(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/vault/secret", nil)
	req.Header.Set("Authorization", "Bearer good")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestRoutes_TraceIDPropagatedFromRequest(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/vault/secret", nil)
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set(traceIDHeader, "trace-123")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "trace-123", rr.Header().Get(traceIDHeader))
}
