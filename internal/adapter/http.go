package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-note-vault/internal/config"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/utils"
	"github.com/MKhiriev/go-note-vault/models"
	"github.com/go-resty/resty/v2"
)

type httpCustodianAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPCustodianAdapter constructs an HTTP/REST implementation of
// [CustodianAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPCustodianAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (CustodianAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpCustodianAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// FetchSecret implements [CustodianAdapter]. It POSTs to
// POST /api/vault/secret with the bearer credential and decodes the
// server-held secret from the response body. Returns [ErrAuthFailure] on 401
// and [ErrServiceUnavailable] (wrapped) on network failures.
func (h *httpCustodianAdapter) FetchSecret(ctx context.Context, credential string) (string, error) {
	var body models.SecretResponse

	resp, err := h.authedRequest(ctx, credential).
		SetHeader("Content-Type", "application/json").
		SetResult(&body).
		Post("/api/vault/secret")
	if err != nil {
		return "", fmt.Errorf("%w: fetch secret: %w", ErrServiceUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	if body.ServerSecret == "" {
		return "", fmt.Errorf("empty secret in custodian response")
	}

	return body.ServerSecret, nil
}

// CreateCaptureSession implements [CustodianAdapter]. It POSTs to
// POST /api/capture/sessions with the bearer credential and returns the
// minted single-use token.
func (h *httpCustodianAdapter) CreateCaptureSession(ctx context.Context, credential string) (models.CaptureToken, error) {
	var body models.CaptureSessionResponse

	resp, err := h.authedRequest(ctx, credential).
		SetHeader("Content-Type", "application/json").
		SetResult(&body).
		Post("/api/capture/sessions")
	if err != nil {
		return models.CaptureToken{}, fmt.Errorf("%w: create capture session: %w", ErrServiceUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CaptureToken{}, err
	}

	if body.SessionID == "" {
		return models.CaptureToken{}, fmt.Errorf("empty session id in custodian response")
	}

	return models.CaptureToken{SessionID: body.SessionID, ExpiresAt: body.ExpiresAt}, nil
}

// SubmitTranscript implements [CustodianAdapter]. It POSTs the captured
// payload to POST /api/capture/sessions/{sessionID}/transcript. The request
// carries no Authorization header: the single-use token in the path is the
// authorization. Returns [ErrAuthFailure] on 401, which covers unknown,
// expired, and already-redeemed tokens alike.
func (h *httpCustodianAdapter) SubmitTranscript(ctx context.Context, sessionID string, req models.TranscriptRequest) (string, error) {
	var body models.TranscriptResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("sessionID", sessionID).
		SetBody(req).
		SetResult(&body).
		Post("/api/capture/sessions/{sessionID}/transcript")
	if err != nil {
		return "", fmt.Errorf("%w: submit transcript: %w", ErrServiceUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return body.Text, nil
}

func (h *httpCustodianAdapter) authedRequest(ctx context.Context, credential string) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if credential = strings.TrimSpace(credential); credential != "" {
		req.SetHeader("Authorization", "Bearer "+credential)
	}
	return req
}
