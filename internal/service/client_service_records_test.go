package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/store"
	"github.com/MKhiriev/go-note-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordFixture struct {
	svc    *recordService
	repo   store.RecordRepository
	engine crypto.Engine
	key    *crypto.VaultKey
	clock  *fakeClock
}

func newRecordFixture(t *testing.T) *recordFixture {
	t.Helper()

	kv, err := store.NewFileKV(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	engine := crypto.NewEngine()
	repo := store.NewRecordRepository(kv)
	svc := NewRecordService(repo, engine, logger.Nop()).(*recordService)

	clock := newFakeClock()
	svc.now = clock.Now

	key, err := engine.DeriveKey(testServerSecret, "test-salt", 1_000)
	require.NoError(t, err)
	t.Cleanup(key.Zero)

	return &recordFixture{svc: svc, repo: repo, engine: engine, key: key, clock: clock}
}

func (f *recordFixture) append(t *testing.T, title string) string {
	t.Helper()
	id, err := f.svc.Append(context.Background(), 1, f.key, models.NoteFields{Title: title, Transcript: title + " body"})
	require.NoError(t, err)
	return id
}

func TestRecordService_AppendListRoundTrip(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	first := f.append(t, "first")
	f.clock.Advance(time.Minute)
	second := f.append(t, "second")

	listed, err := f.svc.ListDecrypted(ctx, 1, f.key)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	// newest first
	assert.Equal(t, second, listed[0].ID)
	assert.Equal(t, first, listed[1].ID)
	assert.Equal(t, "second", listed[0].Fields.Title)
	assert.Equal(t, "second body", listed[0].Fields.Transcript)
}

func TestRecordService_CorruptRecordIsolatedInListing(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	ids := make([]string, 0, 5)
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		ids = append(ids, f.append(t, title))
		f.clock.Advance(time.Minute)
	}

	// corrupt record #3 in storage
	all, err := f.repo.LoadAll(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 5)
	all[2].Ciphertext[0] ^= 0xFF
	require.NoError(t, f.repo.ReplaceAll(ctx, 1, all))

	listed, err := f.svc.ListDecrypted(ctx, 1, f.key)
	require.NoError(t, err, "one corrupt record must not fail the listing")
	require.Len(t, listed, 4)

	// the remaining four, newest first, with #3 missing
	want := []string{ids[4], ids[3], ids[1], ids[0]}
	for i, record := range listed {
		assert.Equal(t, want[i], record.ID)
	}
}

func TestRecordService_Update(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	id := f.append(t, "original")

	newTitle := "renamed"
	err := f.svc.Update(ctx, 1, f.key, id, models.NoteFieldsPatch{Title: &newTitle})
	require.NoError(t, err)

	listed, err := f.svc.ListDecrypted(ctx, 1, f.key)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "renamed", listed[0].Fields.Title)
	// untouched field survives the merge
	assert.Equal(t, "original body", listed[0].Fields.Transcript)
}

func TestRecordService_UpdateReencryptsWithFreshNonce(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	id := f.append(t, "note")

	before, err := f.repo.LoadAll(ctx, 1)
	require.NoError(t, err)

	newTitle := "note v2"
	require.NoError(t, f.svc.Update(ctx, 1, f.key, id, models.NoteFieldsPatch{Title: &newTitle}))

	after, err := f.repo.LoadAll(ctx, 1)
	require.NoError(t, err)
	assert.NotEqual(t, before[0].Nonce, after[0].Nonce)
	assert.NotEqual(t, before[0].Ciphertext, after[0].Ciphertext)
}

func TestRecordService_UpdateUnknownIDFails(t *testing.T) {
	f := newRecordFixture(t)

	title := "x"
	err := f.svc.Update(context.Background(), 1, f.key, "no-such-id", models.NoteFieldsPatch{Title: &title})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordService_UpdateCorruptRecordFails(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	id := f.append(t, "note")

	all, err := f.repo.LoadAll(ctx, 1)
	require.NoError(t, err)
	all[0].Ciphertext[0] ^= 0xFF
	require.NoError(t, f.repo.ReplaceAll(ctx, 1, all))

	title := "x"
	err = f.svc.Update(ctx, 1, f.key, id, models.NoteFieldsPatch{Title: &title})
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestRecordService_DeleteIsIdempotent(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	id := f.append(t, "note")

	require.NoError(t, f.svc.Delete(ctx, 1, id))
	require.NoError(t, f.svc.Delete(ctx, 1, id), "deleting an unknown id is not an error")

	listed, err := f.svc.ListDecrypted(ctx, 1, f.key)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestRecordService_SweepExpiredBoundary(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()
	ttl := 12 * time.Hour

	// one record just past the ttl, one just inside it
	expired := f.append(t, "old")
	f.clock.Advance(2 * time.Second)
	retained := f.append(t, "fresh")

	// now - expired.CreatedAt = ttl + 1s; now - retained.CreatedAt = ttl - 1s
	f.clock.Advance(ttl - time.Second)

	removed, err := f.svc.SweepExpired(ctx, 1, ttl)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	listed, err := f.svc.ListDecrypted(ctx, 1, f.key)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, retained, listed[0].ID)
	assert.NotEqual(t, expired, listed[0].ID)
}

func TestRecordService_SweepNothingExpired(t *testing.T) {
	f := newRecordFixture(t)

	f.append(t, "fresh")

	removed, err := f.svc.SweepExpired(context.Background(), 1, 12*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRecordService_PurgePlaintextDropsCache(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	f.append(t, "note")

	_, err := f.svc.ListDecrypted(ctx, 1, f.key)
	require.NoError(t, err)

	f.svc.cacheMu.Lock()
	_, cached := f.svc.cache[1]
	f.svc.cacheMu.Unlock()
	require.True(t, cached, "listing should populate the cache")

	f.svc.PurgePlaintext(1)

	f.svc.cacheMu.Lock()
	_, cached = f.svc.cache[1]
	f.svc.cacheMu.Unlock()
	assert.False(t, cached, "purge must drop all volatile plaintext")
}
