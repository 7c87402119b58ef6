package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/MKhiriev/go-note-vault/internal/config"
	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/store"
	"github.com/MKhiriev/go-note-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserSecretRepo is an in-memory UserSecretRepository with the same
// first-writer-wins semantics as the real table.
type fakeUserSecretRepo struct {
	rows map[int64]models.UserSecret
}

func newFakeUserSecretRepo() *fakeUserSecretRepo {
	return &fakeUserSecretRepo{rows: make(map[int64]models.UserSecret)}
}

func (r *fakeUserSecretRepo) Create(_ context.Context, secret models.UserSecret) (models.UserSecret, error) {
	if _, ok := r.rows[secret.UserID]; ok {
		return models.UserSecret{}, store.ErrUserSecretExists
	}
	r.rows[secret.UserID] = secret
	return secret, nil
}

func (r *fakeUserSecretRepo) FindByUserID(_ context.Context, userID int64) (models.UserSecret, error) {
	row, ok := r.rows[userID]
	if !ok {
		return models.UserSecret{}, store.ErrUserSecretNotFound
	}
	return row, nil
}

func newTestCustodianSvc(repo store.UserSecretRepository) CustodianService {
	cfg := config.App{SecretWrapKey: "server-only-wrap-key-material"}
	return NewCustodianService(repo, crypto.NewEngine(), cfg, logger.Nop())
}

func TestCustodianService_ProvisionsOncePerUser(t *testing.T) {
	repo := newFakeUserSecretRepo()
	svc := newTestCustodianSvc(repo)
	ctx := context.Background()

	first, err := svc.GetOrCreateSecret(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, models.ServerSecretLength)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9_-]{64}$`), first)

	second, err := svc.GetOrCreateSecret(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second, "the secret is immutable once created")
}

func TestCustodianService_SecretsDifferAcrossUsers(t *testing.T) {
	repo := newFakeUserSecretRepo()
	svc := newTestCustodianSvc(repo)
	ctx := context.Background()

	alice, err := svc.GetOrCreateSecret(ctx, 1)
	require.NoError(t, err)
	bob, err := svc.GetOrCreateSecret(ctx, 2)
	require.NoError(t, err)

	assert.NotEqual(t, alice, bob)
}

func TestCustodianService_SecretStoredWrappedNotPlaintext(t *testing.T) {
	repo := newFakeUserSecretRepo()
	svc := newTestCustodianSvc(repo)

	secret, err := svc.GetOrCreateSecret(context.Background(), 1)
	require.NoError(t, err)

	stored := repo.rows[1]
	assert.NotContains(t, string(stored.Wrapped), secret, "plaintext secret must never reach storage")
	assert.NotEmpty(t, stored.WrapSalt)
	assert.Len(t, stored.Nonce, crypto.NonceSize)
}

func TestCustodianService_LosingProvisioningRaceReturnsWinner(t *testing.T) {
	repo := newFakeUserSecretRepo()
	svc := newTestCustodianSvc(repo)
	ctx := context.Background()

	// the "winner" provisioned between our lookup and insert
	winner, err := svc.GetOrCreateSecret(ctx, 1)
	require.NoError(t, err)

	racing := &racingUserSecretRepo{fakeUserSecretRepo: repo}
	racingSvc := newTestCustodianSvc(racing)

	got, err := racingSvc.GetOrCreateSecret(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, winner, got, "the loser must observe the winner's secret")
}

// racingUserSecretRepo reports not-found on the first lookup so the caller
// attempts to provision and collides with the existing row.
type racingUserSecretRepo struct {
	*fakeUserSecretRepo
	missed bool
}

func (r *racingUserSecretRepo) FindByUserID(ctx context.Context, userID int64) (models.UserSecret, error) {
	if !r.missed {
		r.missed = true
		return models.UserSecret{}, store.ErrUserSecretNotFound
	}
	return r.fakeUserSecretRepo.FindByUserID(ctx, userID)
}
