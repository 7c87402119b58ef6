package service

import (
	"github.com/MKhiriev/go-note-vault/internal/adapter"
	"github.com/MKhiriev/go-note-vault/internal/config"
	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/store"
)

type ClientServices struct {
	SecretService     SecretService
	RecordService     RecordService
	SessionController SessionController
	CaptureService    CaptureService
}

func NewClientServices(storages *store.ClientStorages, custodian adapter.CustodianAdapter, cfg *config.ClientConfig, log *logger.Logger) *ClientServices {
	engine := crypto.NewEngine()
	secretSvc := NewSecretService(custodian, storages.SaltRepository, engine, log)
	recordSvc := NewRecordService(storages.RecordRepository, engine, log)
	controller := NewSessionController(cfg.Session, cfg.Vault, secretSvc, recordSvc, engine, log)

	return &ClientServices{
		SecretService:     secretSvc,
		RecordService:     recordSvc,
		SessionController: controller,
		CaptureService:    NewCaptureService(controller, custodian, secretSvc, recordSvc, engine, cfg.Session, cfg.Vault, log),
	}
}
