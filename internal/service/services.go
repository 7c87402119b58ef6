package service

import (
	"github.com/MKhiriev/go-note-vault/internal/config"
	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/store"
)

type Services struct {
	AuthService         AuthService
	CustodianService    CustodianService
	CaptureTokenService CaptureTokenService
	TranscriptService   TranscriptService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	engine := crypto.NewEngine()

	return &Services{
		AuthService:         NewAuthService(cfg.App, logger),
		CustodianService:    NewCustodianService(storages.UserSecretRepository, engine, cfg.App, logger),
		CaptureTokenService: NewCaptureTokenService(storages.CaptureSessionRepository, cfg.Server.CaptureTokenTTL, logger),
		TranscriptService:   NewTranscriptService(logger),
	}
}
