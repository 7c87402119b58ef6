package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-vault/internal/adapter"
	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/store"
)

type secretService struct {
	custodian adapter.CustodianAdapter
	salts     store.SaltRepository
	engine    crypto.Engine

	logger *logger.Logger
}

// NewSecretService constructs a [SecretService] over the custodian adapter
// and the local salt repository.
func NewSecretService(custodian adapter.CustodianAdapter, salts store.SaltRepository, engine crypto.Engine, logger *logger.Logger) SecretService {
	logger.Debug().Msg("creating secret service")
	return &secretService{
		custodian: custodian,
		salts:     salts,
		engine:    engine,
		logger:    logger,
	}
}

// GetOrCreateServerSecret implements [SecretService]. A single round trip to
// the custodian; [adapter.ErrAuthFailure] and [adapter.ErrServiceUnavailable]
// pass through untouched so the caller can route to re-authentication or
// report the outage. No retries.
func (s *secretService) GetOrCreateServerSecret(ctx context.Context, credential string) (string, error) {
	secret, err := s.custodian.FetchSecret(ctx, credential)
	if err != nil {
		return "", fmt.Errorf("fetch server secret: %w", err)
	}

	return secret, nil
}

// GetOrCreateDeviceSalt implements [SecretService]. The salt is generated on
// first use and then reused for the lifetime of the (user, device) pair; an
// existing salt is never regenerated, since doing so would orphan every
// record encrypted under the old derivation.
func (s *secretService) GetOrCreateDeviceSalt(ctx context.Context, userID int64) (string, error) {
	salt, ok, err := s.salts.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("read device salt: %w", err)
	}
	if ok {
		return salt, nil
	}

	salt, err = s.engine.GenerateSalt()
	if err != nil {
		return "", fmt.Errorf("generate device salt: %w", err)
	}

	if err = s.salts.Put(ctx, userID, salt); err != nil {
		return "", fmt.Errorf("persist device salt: %w", err)
	}

	s.logger.Info().Int64("user_id", userID).Msg("generated new device salt")
	return salt, nil
}
