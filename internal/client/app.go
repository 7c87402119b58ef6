package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/MKhiriev/go-note-vault/internal/config"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/service"
	"github.com/MKhiriev/go-note-vault/internal/workers"
)

// App is the headless client runtime. A front end embedding the vault talks
// to App.services directly; App itself only owns the process lifecycle.
type App struct {
	services *service.ClientServices

	vaultCfg   config.Vault
	workersCfg config.ClientWorkers

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errors.New("no client services provided")
	}

	return &App{
		services:   services,
		vaultCfg:   cfg.Vault,
		workersCfg: cfg.Workers,
		logger:     logger,
	}, nil
}

// Run implements Client. It unlocks the session with the credential from the
// environment, starts the record janitor, and blocks until the session locks
// or a stop signal arrives. The vault key never outlives Run: every exit path
// goes through SessionController.Dispose.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	credential, userID, err := sessionParamsFromEnv()
	if err != nil {
		return err
	}

	controller := a.services.SessionController
	defer controller.Dispose()

	locked := make(chan struct{})
	controller.OnStateChange(func(change service.StateChange) {
		a.logger.Info().
			Str("from", string(change.From)).
			Str("to", string(change.To)).
			Time("at", change.At).
			Msg("session state changed")

		if change.CaptureContinues {
			a.logger.Info().Msg("a capture was in progress; it will finish and save on its own")
		}
		if change.To == service.StateLocked {
			close(locked)
		}
	})

	if err = controller.Unlock(ctx, credential, userID); err != nil {
		return fmt.Errorf("unlock session: %w", err)
	}

	janitor := workers.NewRecordJanitor(
		a.services.RecordService,
		userID,
		a.vaultCfg.RecordTTL,
		a.workersCfg.SweepInterval,
		a.logger,
	)
	jobs := workers.NewWorkers(janitor)
	jobs.Start(ctx)
	defer jobs.Stop()

	select {
	case <-locked:
		a.logger.Info().Msg("session locked, shutting down")
	case <-ctx.Done():
		a.logger.Info().Msg("stop signal received, shutting down")
	}

	return nil
}

func sessionParamsFromEnv() (string, int64, error) {
	credential := os.Getenv("NOTE_VAULT_CREDENTIAL")
	if credential == "" {
		return "", 0, errors.New("NOTE_VAULT_CREDENTIAL is not set")
	}

	rawUserID := os.Getenv("NOTE_VAULT_USER_ID")
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("parse NOTE_VAULT_USER_ID: %w", err)
	}

	return credential, userID, nil
}
