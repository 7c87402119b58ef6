package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-note-vault/models"
)

type recordRepository struct {
	kv KVStore
}

// NewRecordRepository returns a [RecordRepository] over the given KV store.
func NewRecordRepository(kv KVStore) RecordRepository {
	return &recordRepository{kv: kv}
}

func recordsKey(userID int64) string {
	return fmt.Sprintf("records:%d", userID)
}

func (r *recordRepository) LoadAll(ctx context.Context, userID int64) ([]models.EncryptedRecord, error) {
	data, ok, err := r.kv.Get(ctx, recordsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("load records for user %d: %w", userID, err)
	}
	if !ok {
		return []models.EncryptedRecord{}, nil
	}

	var records []models.EncryptedRecord
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode records for user %d: %w", userID, err)
	}

	return records, nil
}

func (r *recordRepository) ReplaceAll(ctx context.Context, userID int64, records []models.EncryptedRecord) error {
	if records == nil {
		records = []models.EncryptedRecord{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode records for user %d: %w", userID, err)
	}

	if err = r.kv.Set(ctx, recordsKey(userID), data); err != nil {
		return fmt.Errorf("store records for user %d: %w", userID, err)
	}

	return nil
}
