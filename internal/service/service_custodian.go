package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-vault/internal/config"
	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/store"
	"github.com/MKhiriev/go-note-vault/models"
)

// secretAlphabet has exactly 64 symbols so a random byte masked to 6 bits
// maps uniformly onto it.
const secretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// wrapKDFIterations stretches the server wrap key per user. Lower than the
// client-side record KDF: the wrap key is high-entropy configuration, not a
// password, and the derivation runs on every secret read.
const wrapKDFIterations = 10_000

// custodianService implements [CustodianService]. Secrets rest double-
// wrapped: AES-GCM under a key derived from the server-only wrap key and a
// per-user salt. Neither the wrap key nor any plaintext secret reaches the
// storage layer.
type custodianService struct {
	secrets store.UserSecretRepository
	engine  crypto.Engine

	wrapKey string

	logger *logger.Logger
}

// NewCustodianService constructs a [CustodianService].
func NewCustodianService(secrets store.UserSecretRepository, engine crypto.Engine, cfg config.App, logger *logger.Logger) CustodianService {
	return &custodianService{
		secrets: secrets,
		engine:  engine,
		wrapKey: cfg.SecretWrapKey,
		logger:  logger,
	}
}

// GetOrCreateSecret implements [CustodianService]. Two clients racing the
// first provisioning are resolved by the unique constraint: the loser
// re-reads the winner's row, so both observe the same secret.
func (s *custodianService) GetOrCreateSecret(ctx context.Context, userID int64) (string, error) {
	log := logger.FromContext(ctx)

	found, err := s.secrets.FindByUserID(ctx, userID)
	if err == nil {
		return s.unwrap(found)
	}
	if !errors.Is(err, store.ErrUserSecretNotFound) {
		return "", fmt.Errorf("look up user secret: %w", err)
	}

	secret, err := generateServerSecret()
	if err != nil {
		return "", fmt.Errorf("generate server secret: %w", err)
	}

	wrapped, err := s.wrap(userID, secret)
	if err != nil {
		return "", err
	}

	if _, err = s.secrets.Create(ctx, wrapped); err != nil {
		if errors.Is(err, store.ErrUserSecretExists) {
			// lost the provisioning race, the winner's secret is canonical
			existing, findErr := s.secrets.FindByUserID(ctx, userID)
			if findErr != nil {
				return "", fmt.Errorf("re-read user secret: %w", findErr)
			}
			return s.unwrap(existing)
		}
		return "", fmt.Errorf("store user secret: %w", err)
	}

	log.Info().Int64("user_id", userID).Msg("provisioned server secret")
	return secret, nil
}

func (s *custodianService) wrap(userID int64, secret string) (models.UserSecret, error) {
	wrapSalt, err := s.engine.GenerateSalt()
	if err != nil {
		return models.UserSecret{}, fmt.Errorf("generate wrap salt: %w", err)
	}

	key, err := s.engine.DeriveKey(s.wrapKey, wrapSalt, wrapKDFIterations)
	if err != nil {
		return models.UserSecret{}, fmt.Errorf("derive wrap key: %w", err)
	}
	defer key.Zero()

	nonce, ciphertext, err := s.engine.Encrypt(key, []byte(secret))
	if err != nil {
		return models.UserSecret{}, fmt.Errorf("wrap secret: %w", err)
	}

	return models.UserSecret{
		UserID:   userID,
		WrapSalt: wrapSalt,
		Nonce:    nonce,
		Wrapped:  ciphertext,
	}, nil
}

func (s *custodianService) unwrap(stored models.UserSecret) (string, error) {
	key, err := s.engine.DeriveKey(s.wrapKey, stored.WrapSalt, wrapKDFIterations)
	if err != nil {
		return "", fmt.Errorf("derive wrap key: %w", err)
	}
	defer key.Zero()

	plaintext, err := s.engine.Decrypt(key, stored.Nonce, stored.Wrapped)
	if err != nil {
		return "", fmt.Errorf("unwrap secret for user %d: %w", stored.UserID, err)
	}

	return string(plaintext), nil
}

func generateServerSecret() (string, error) {
	raw := make([]byte, models.ServerSecretLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	out := make([]byte, len(raw))
	for i, b := range raw {
		out[i] = secretAlphabet[int(b)&63]
	}
	return string(out), nil
}
