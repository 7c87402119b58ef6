package store

import (
	"context"
	"fmt"
)

type saltRepository struct {
	kv KVStore
}

// NewSaltRepository returns a [SaltRepository] over the given KV store.
func NewSaltRepository(kv KVStore) SaltRepository {
	return &saltRepository{kv: kv}
}

func saltKey(userID int64) string {
	return fmt.Sprintf("salt:%d", userID)
}

func (r *saltRepository) Get(ctx context.Context, userID int64) (string, bool, error) {
	data, ok, err := r.kv.Get(ctx, saltKey(userID))
	if err != nil {
		return "", false, fmt.Errorf("load salt for user %d: %w", userID, err)
	}
	if !ok {
		return "", false, nil
	}

	return string(data), true, nil
}

func (r *saltRepository) Put(ctx context.Context, userID int64, salt string) error {
	if err := r.kv.Set(ctx, saltKey(userID), []byte(salt)); err != nil {
		return fmt.Errorf("store salt for user %d: %w", userID, err)
	}

	return nil
}
