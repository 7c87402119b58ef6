// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/service"
	"github.com/MKhiriev/go-note-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Fake: CaptureTokenService ----

type fakeCaptureTokenSvc struct {
	createFn    func(ctx context.Context, userID int64) (models.CaptureToken, error)
	redeemFn    func(ctx context.Context, sessionID string) (models.CaptureSession, error)
	redeemCalls int
}

func (f *fakeCaptureTokenSvc) Create(ctx context.Context, userID int64) (models.CaptureToken, error) {
	return f.createFn(ctx, userID)
}

func (f *fakeCaptureTokenSvc) Redeem(ctx context.Context, sessionID string) (models.CaptureSession, error) {
	f.redeemCalls++
	return f.redeemFn(ctx, sessionID)
}

// ---- Helpers ----

func newCaptureRouter(tokens *fakeCaptureTokenSvc) http.Handler {
	h := &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			AuthService: &fakeAuthSvc{
				parseFn: func(_ context.Context, _ string) (models.Token, error) {
					return models.Token{UserID: 7}, nil
				},
			},
			CaptureTokenService: tokens,
			TranscriptService:   service.NewTranscriptService(logger.Nop()),
		},
	}
	return h.Init()
}

func postJSON(t *testing.T, router http.Handler, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ---- createCaptureSession ----

func TestCreateCaptureSession_Success(t *testing.T) {
	expires := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second)
	tokens := &fakeCaptureTokenSvc{
		createFn: func(_ context.Context, userID int64) (models.CaptureToken, error) {
			require.Equal(t, int64(7), userID)
			return models.CaptureToken{SessionID: "sess-1", ExpiresAt: expires}, nil
		},
	}
	router := newCaptureRouter(tokens)

	rr := postJSON(t, router, "/api/capture/sessions", nil, map[string]string{"Authorization": "Bearer good"})

	require.Equal(t, http.StatusCreated, rr.Code)

	var response models.CaptureSessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "sess-1", response.SessionID)
	assert.True(t, expires.Equal(response.ExpiresAt))
}

func TestCreateCaptureSession_RequiresCredential(t *testing.T) {
	tokens := &fakeCaptureTokenSvc{}
	router := newCaptureRouter(tokens)

	rr := postJSON(t, router, "/api/capture/sessions", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// ---- submitTranscript ----

func TestSubmitTranscript_Success_NoCredentialNeeded(t *testing.T) {
	tokens := &fakeCaptureTokenSvc{
		redeemFn: func(_ context.Context, sessionID string) (models.CaptureSession, error) {
			require.Equal(t, "sess-1", sessionID)
			return models.CaptureSession{SessionID: sessionID, UserID: 7}, nil
		},
	}
	router := newCaptureRouter(tokens)

	// deliberately no Authorization header
	rr := postJSON(t, router, "/api/capture/sessions/sess-1/transcript",
		models.TranscriptRequest{Text: "hello from the capture"}, nil)

	require.Equal(t, http.StatusOK, rr.Code)

	var response models.TranscriptResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "Hello from the capture.", response.Text)
	assert.Equal(t, 1, tokens.redeemCalls)
}

func TestSubmitTranscript_InvalidTokenIsPlain401(t *testing.T) {
	tokens := &fakeCaptureTokenSvc{
		redeemFn: func(_ context.Context, _ string) (models.CaptureSession, error) {
			return models.CaptureSession{}, service.ErrCaptureTokenInvalid
		},
	}
	router := newCaptureRouter(tokens)

	rr := postJSON(t, router, "/api/capture/sessions/sess-used/transcript",
		models.TranscriptRequest{Text: "late submission"}, nil)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	// unknown, expired, and already-used tokens are indistinguishable
	assert.Equal(t, http.StatusText(http.StatusUnauthorized)+"\n", rr.Body.String())
}

func TestSubmitTranscript_EmptyPayloadDoesNotConsumeToken(t *testing.T) {
	tokens := &fakeCaptureTokenSvc{
		redeemFn: func(_ context.Context, sessionID string) (models.CaptureSession, error) {
			return models.CaptureSession{SessionID: sessionID, UserID: 7}, nil
		},
	}
	router := newCaptureRouter(tokens)

	rr := postJSON(t, router, "/api/capture/sessions/sess-1/transcript",
		models.TranscriptRequest{}, nil)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, tokens.redeemCalls, "a rejected payload must leave the token redeemable")
}

func TestSubmitTranscript_BinaryAudioRejected(t *testing.T) {
	tokens := &fakeCaptureTokenSvc{
		redeemFn: func(_ context.Context, sessionID string) (models.CaptureSession, error) {
			return models.CaptureSession{SessionID: sessionID, UserID: 7}, nil
		},
	}
	router := newCaptureRouter(tokens)

	rr := postJSON(t, router, "/api/capture/sessions/sess-1/transcript",
		models.TranscriptRequest{Audio: []byte{0xFF, 0xFE, 0x00}}, nil)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, tokens.redeemCalls)
}

func TestSubmitTranscript_InvalidJSON(t *testing.T) {
	tokens := &fakeCaptureTokenSvc{}
	router := newCaptureRouter(tokens)

	req := httptest.NewRequest(http.MethodPost, "/api/capture/sessions/sess-1/transcript",
		bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
