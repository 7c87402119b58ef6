package store

import (
	"fmt"

	"github.com/MKhiriev/go-note-vault/internal/config"
	"github.com/MKhiriev/go-note-vault/internal/logger"
)

// ClientStorages groups the client-side repositories into a single value
// that can be passed around the service layer.
type ClientStorages struct {
	// RecordRepository is the local repository of encrypted voice-note
	// records, keyed per user.
	RecordRepository RecordRepository
	// SaltRepository holds the device-local key-derivation salt per user.
	SaltRepository SaltRepository

	kv KVStore
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. The backend is chosen by cfg.Backend: "sqlite"
// opens a SQLite database at cfg.Path, "file" keeps a JSON file there. Both
// repositories share the same KV store underneath.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("backend", cfg.Local.Backend).Msg("creating new local storages...")

	var (
		kv  KVStore
		err error
	)
	switch cfg.Local.Backend {
	case config.StorageBackendSQLite:
		kv, err = NewSQLiteKV(cfg.Local.Path)
	case config.StorageBackendFile:
		kv, err = NewFileKV(cfg.Local.Path)
	default:
		return nil, fmt.Errorf("unknown local storage backend %q", cfg.Local.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("local storage init error: %w", err)
	}

	return &ClientStorages{
		RecordRepository: NewRecordRepository(kv),
		SaltRepository:   NewSaltRepository(kv),
		kv:               kv,
	}, nil
}

// Close releases the underlying KV store.
func (s *ClientStorages) Close() error {
	return s.kv.Close()
}
