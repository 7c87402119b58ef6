package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/store"
	"github.com/MKhiriev/go-note-vault/internal/utils"
	"github.com/MKhiriev/go-note-vault/models"
)

type recordService struct {
	records store.RecordRepository
	engine  crypto.Engine
	ids     *utils.UUIDGenerator

	// cacheMu guards the volatile decrypted-listing cache. The cache never
	// reaches durable storage and is purged wholesale on lock.
	cacheMu sync.Mutex
	cache   map[int64][]models.DecryptedRecord

	now func() time.Time

	logger *logger.Logger
}

// NewRecordService constructs a [RecordService] over the local record
// repository and the crypto engine.
func NewRecordService(records store.RecordRepository, engine crypto.Engine, logger *logger.Logger) RecordService {
	logger.Debug().Msg("creating record service")
	return &recordService{
		records: records,
		engine:  engine,
		ids:     utils.NewUUIDGenerator(),
		cache:   make(map[int64][]models.DecryptedRecord),
		now:     time.Now,
		logger:  logger,
	}
}

// Append implements [RecordService].
func (s *recordService) Append(ctx context.Context, userID int64, key *crypto.VaultKey, fields models.NoteFields) (string, error) {
	plaintext, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("serialize record fields: %w", err)
	}

	nonce, ciphertext, err := s.engine.Encrypt(key, plaintext)
	if err != nil {
		return "", fmt.Errorf("encrypt record: %w", err)
	}

	all, err := s.records.LoadAll(ctx, userID)
	if err != nil {
		return "", err
	}

	record := models.EncryptedRecord{
		ID:         s.ids.Generate(),
		CreatedAt:  s.now(),
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}

	if err = s.records.ReplaceAll(ctx, userID, append(all, record)); err != nil {
		return "", err
	}

	s.invalidateCache(userID)
	s.logger.Info().Int64("user_id", userID).Str("record_id", record.ID).Msg("record appended")
	return record.ID, nil
}

// ListDecrypted implements [RecordService]. Each record is decrypted
// independently; a failed tag verification is logged with the record id only
// and the record is skipped, so one corrupt entry never blocks the listing.
func (s *recordService) ListDecrypted(ctx context.Context, userID int64, key *crypto.VaultKey) ([]models.DecryptedRecord, error) {
	if cached, ok := s.cachedList(userID); ok {
		return cached, nil
	}

	all, err := s.records.LoadAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	decrypted := make([]models.DecryptedRecord, 0, len(all))
	for _, record := range all {
		plaintext, err := s.engine.Decrypt(key, record.Nonce, record.Ciphertext)
		if err != nil {
			if errors.Is(err, crypto.ErrAuthentication) {
				s.logger.Warn().Int64("user_id", userID).Str("record_id", record.ID).Msg("skipping undecryptable record")
				continue
			}
			return nil, fmt.Errorf("decrypt record %s: %w", record.ID, err)
		}

		var fields models.NoteFields
		if err = json.Unmarshal(plaintext, &fields); err != nil {
			s.logger.Warn().Int64("user_id", userID).Str("record_id", record.ID).Msg("skipping malformed record payload")
			continue
		}

		decrypted = append(decrypted, models.DecryptedRecord{
			ID:        record.ID,
			CreatedAt: record.CreatedAt,
			Fields:    fields,
		})
	}

	sort.SliceStable(decrypted, func(i, j int) bool {
		return decrypted[i].CreatedAt.After(decrypted[j].CreatedAt)
	})

	s.storeCache(userID, decrypted)
	return decrypted, nil
}

// Update implements [RecordService]. The replacement is a single repository
// write, so no partial-write state is observable by readers.
func (s *recordService) Update(ctx context.Context, userID int64, key *crypto.VaultKey, recordID string, patch models.NoteFieldsPatch) error {
	all, err := s.records.LoadAll(ctx, userID)
	if err != nil {
		return err
	}

	idx := -1
	for i, record := range all {
		if record.ID == recordID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrRecordNotFound
	}

	plaintext, err := s.engine.Decrypt(key, all[idx].Nonce, all[idx].Ciphertext)
	if err != nil {
		if errors.Is(err, crypto.ErrAuthentication) {
			return fmt.Errorf("%w: %s", ErrCorruptRecord, recordID)
		}
		return fmt.Errorf("decrypt record %s: %w", recordID, err)
	}

	var fields models.NoteFields
	if err = json.Unmarshal(plaintext, &fields); err != nil {
		return fmt.Errorf("%w: %s", ErrCorruptRecord, recordID)
	}

	patch.Apply(&fields)

	updated, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("serialize record fields: %w", err)
	}

	// fresh nonce on every re-encryption
	nonce, ciphertext, err := s.engine.Encrypt(key, updated)
	if err != nil {
		return fmt.Errorf("encrypt record: %w", err)
	}

	all[idx].Nonce = nonce
	all[idx].Ciphertext = ciphertext

	if err = s.records.ReplaceAll(ctx, userID, all); err != nil {
		return err
	}

	s.invalidateCache(userID)
	return nil
}

// Delete implements [RecordService].
func (s *recordService) Delete(ctx context.Context, userID int64, recordID string) error {
	all, err := s.records.LoadAll(ctx, userID)
	if err != nil {
		return err
	}

	kept := all[:0]
	for _, record := range all {
		if record.ID != recordID {
			kept = append(kept, record)
		}
	}
	if len(kept) == len(all) {
		// unknown id, nothing to do
		return nil
	}

	if err = s.records.ReplaceAll(ctx, userID, kept); err != nil {
		return err
	}

	s.invalidateCache(userID)
	return nil
}

// SweepExpired implements [RecordService]. Expiry compares the plaintext
// CreatedAt field against ttl; no record is decrypted.
func (s *recordService) SweepExpired(ctx context.Context, userID int64, ttl time.Duration) (int, error) {
	all, err := s.records.LoadAll(ctx, userID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	kept := make([]models.EncryptedRecord, 0, len(all))
	for _, record := range all {
		if now.Sub(record.CreatedAt) >= ttl {
			continue
		}
		kept = append(kept, record)
	}

	removed := len(all) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err = s.records.ReplaceAll(ctx, userID, kept); err != nil {
		return 0, err
	}

	s.invalidateCache(userID)
	s.logger.Info().Int64("user_id", userID).Int("removed", removed).Msg("expired records swept")
	return removed, nil
}

// PurgePlaintext implements [RecordService].
func (s *recordService) PurgePlaintext(userID int64) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	delete(s.cache, userID)
}

func (s *recordService) cachedList(userID int64) ([]models.DecryptedRecord, bool) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	cached, ok := s.cache[userID]
	if !ok {
		return nil, false
	}

	out := make([]models.DecryptedRecord, len(cached))
	copy(out, cached)
	return out, true
}

func (s *recordService) storeCache(userID int64, records []models.DecryptedRecord) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	stored := make([]models.DecryptedRecord, len(records))
	copy(stored, records)
	s.cache[userID] = stored
}

func (s *recordService) invalidateCache(userID int64) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	delete(s.cache, userID)
}
