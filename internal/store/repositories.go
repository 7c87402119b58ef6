package store

import "github.com/MKhiriev/go-note-vault/internal/logger"

// Storages groups the custodian-side repositories.
type Storages struct {
	UserSecretRepository     UserSecretRepository
	CaptureSessionRepository CaptureSessionRepository
}

// NewStorages wires all custodian repositories to the given database.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserSecretRepository:     NewUserSecretRepository(db, log),
		CaptureSessionRepository: NewCaptureSessionRepository(db, log),
	}
}
