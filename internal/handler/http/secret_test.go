package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/service"
	"github.com/MKhiriev/go-note-vault/internal/store"
	"github.com/MKhiriev/go-note-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Fake: CustodianService ----

type fakeCustodianSvc struct {
	getFn func(ctx context.Context, userID int64) (string, error)
}

func (f *fakeCustodianSvc) GetOrCreateSecret(ctx context.Context, userID int64) (string, error) {
	return f.getFn(ctx, userID)
}

// ---- Helper ----

func newSecretRouter(custodian *fakeCustodianSvc) http.Handler {
	h := &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			AuthService: &fakeAuthSvc{
				parseFn: func(_ context.Context, _ string) (models.Token, error) {
					return models.Token{UserID: 7}, nil
				},
			},
			CustodianService: custodian,
		},
	}
	return h.Init()
}

// ---- getSecret ----

func TestGetSecret_Success(t *testing.T) {
	custodian := &fakeCustodianSvc{
		getFn: func(_ context.Context, userID int64) (string, error) {
			require.Equal(t, int64(7), userID)
			return "the-server-secret", nil
		},
	}
	router := newSecretRouter(custodian)

	rr := postJSON(t, router, "/api/vault/secret", nil, map[string]string{"Authorization": "Bearer good"})

	require.Equal(t, http.StatusOK, rr.Code)

	var response models.SecretResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "the-server-secret", response.ServerSecret)
}

func TestGetSecret_RequiresCredential(t *testing.T) {
	router := newSecretRouter(&fakeCustodianSvc{})

	rr := postJSON(t, router, "/api/vault/secret", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetSecret_StorageErrorMapped(t *testing.T) {
	custodian := &fakeCustodianSvc{
		getFn: func(_ context.Context, _ int64) (string, error) {
			return "", store.ErrExecutingQuery
		},
	}
	router := newSecretRouter(custodian)

	rr := postJSON(t, router, "/api/vault/secret", nil, map[string]string{"Authorization": "Bearer good"})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
