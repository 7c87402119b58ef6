// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-vault/internal/config"
	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
)

// SessionState is the idle-lock state machine position.
type SessionState string

const (
	// StateUnlocked means the vault key is live and the user is active.
	StateUnlocked SessionState = "unlocked"
	// StateUnlockedWarning means the key is still live but the idle clock
	// has passed the warning threshold.
	StateUnlockedWarning SessionState = "unlocked_warning"
	// StateLocked means the key has been destroyed and the credential
	// revoked. Terminal for the session: re-entering Unlocked takes a fresh
	// authentication and derivation, not a resume.
	StateLocked SessionState = "locked"
)

// StateChange describes one observed transition.
type StateChange struct {
	From SessionState
	To   SessionState
	At   time.Time

	// CaptureContinues is set on a lock that happened while a capture was
	// in flight: the capture finishes in the background from its snapshot.
	// Emitted at most once per session.
	CaptureContinues bool
}

type sessionController struct {
	sessionCfg config.Session
	vaultCfg   config.Vault

	secrets SecretService
	records RecordService
	engine  crypto.Engine

	mu                sync.Mutex
	state             SessionState
	key               *crypto.VaultKey
	secret            string
	credential        string
	userID            int64
	lastActivity      time.Time
	recording         bool
	captureNoticeSent bool
	subs              []func(StateChange)

	now func() time.Time

	tickMu     sync.Mutex
	tickCancel context.CancelFunc
	tickWG     sync.WaitGroup

	logger *logger.Logger
}

// NewSessionController constructs a [SessionController] in the Locked state.
// Unlock brings it to life.
func NewSessionController(sessionCfg config.Session, vaultCfg config.Vault, secrets SecretService, records RecordService, engine crypto.Engine, logger *logger.Logger) SessionController {
	logger.Debug().Msg("creating session controller")
	return &sessionController{
		sessionCfg: sessionCfg,
		vaultCfg:   vaultCfg,
		secrets:    secrets,
		records:    records,
		engine:     engine,
		state:      StateLocked,
		now:        time.Now,
		logger:     logger,
	}
}

// Unlock implements [SessionController].
func (s *sessionController) Unlock(ctx context.Context, credential string, userID int64) error {
	secret, err := s.secrets.GetOrCreateServerSecret(ctx, credential)
	if err != nil {
		return fmt.Errorf("unlock: %w", err)
	}

	salt, err := s.secrets.GetOrCreateDeviceSalt(ctx, userID)
	if err != nil {
		return fmt.Errorf("unlock: %w", err)
	}

	key, err := s.engine.DeriveKey(secret, salt, s.vaultCfg.KDFIterations)
	if err != nil {
		return fmt.Errorf("unlock: derive key: %w", err)
	}

	s.mu.Lock()
	if s.key != nil {
		s.key.Zero()
	}
	from := s.state
	s.key = key
	s.secret = secret
	s.credential = credential
	s.userID = userID
	s.lastActivity = s.now()
	s.recording = false
	s.captureNoticeSent = false
	s.state = StateUnlocked
	change := StateChange{From: from, To: StateUnlocked, At: s.now()}
	s.mu.Unlock()

	s.startTicker()
	s.emit(change)
	s.logger.Info().Int64("user_id", userID).Msg("session unlocked")
	return nil
}

// State implements [SessionController].
func (s *sessionController) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Touch implements [SessionController].
func (s *sessionController) Touch() {
	s.resetIdleClock()
}

// DismissWarning implements [SessionController]. Dismissing resets the idle
// clock even when no underlying activity listener fired.
func (s *sessionController) DismissWarning() {
	s.resetIdleClock()
}

func (s *sessionController) resetIdleClock() {
	s.mu.Lock()
	if s.state == StateLocked {
		s.mu.Unlock()
		return
	}

	s.lastActivity = s.now()
	var change *StateChange
	if s.state == StateUnlockedWarning {
		s.state = StateUnlocked
		change = &StateChange{From: StateUnlockedWarning, To: StateUnlocked, At: s.now()}
	}
	s.mu.Unlock()

	if change != nil {
		s.emit(*change)
	}
}

// LockNow implements [SessionController]. The recording guard does not apply
// to an explicit lock: an in-flight capture finishes from its snapshot.
func (s *sessionController) LockNow() {
	s.mu.Lock()
	change, locked := s.lockLocked()
	s.mu.Unlock()

	if locked {
		s.emit(change)
	}
}

// Dispose implements [SessionController].
func (s *sessionController) Dispose() {
	s.mu.Lock()
	change, locked := s.lockLocked()
	s.mu.Unlock()

	if locked {
		s.emit(change)
	}
	s.stopTicker()
}

// Key implements [SessionController].
func (s *sessionController) Key() (*crypto.VaultKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLocked || s.key == nil || !s.key.Live() {
		return nil, ErrVaultLocked
	}
	return s.key, nil
}

// UserID implements [SessionController].
func (s *sessionController) UserID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// OnStateChange implements [SessionController].
func (s *sessionController) OnStateChange(fn func(StateChange)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// BindActivitySource implements [SessionController].
func (s *sessionController) BindActivitySource(src ActivitySource) {
	src.OnActivity(s.Touch)
}

// BeginCapture implements [SessionController]. Snapshot creation and the
// recording guard are set under the same mutex the tick uses for its lock
// decision, so a capture either begins before the tick commits (and
// suppresses it) or observes the locked state and fails.
func (s *sessionController) BeginCapture() (*CaptureSnapshot, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLocked || s.key == nil || !s.key.Live() {
		return nil, "", ErrVaultLocked
	}

	snapshot := newCaptureSnapshot(s.secret, s.userID, s.now())
	s.recording = true
	return snapshot, s.credential, nil
}

// EndCapture implements [SessionController].
func (s *sessionController) EndCapture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recording = false
}

// tick evaluates one idle check. It reads only in-memory state and never
// blocks on I/O.
func (s *sessionController) tick() {
	s.mu.Lock()

	if s.state == StateLocked {
		s.mu.Unlock()
		return
	}

	idle := s.now().Sub(s.lastActivity)
	warning := s.sessionCfg.EffectiveWarningThreshold()
	lock := s.sessionCfg.EffectiveLockThreshold()

	var (
		change  StateChange
		changed bool
	)
	switch {
	case idle >= lock && !s.recording:
		change, changed = s.lockLocked()
	case idle >= lock && s.recording:
		// suppressed: lock never preempts an active capture
	case idle >= warning && s.state == StateUnlocked:
		s.state = StateUnlockedWarning
		change = StateChange{From: StateUnlocked, To: StateUnlockedWarning, At: s.now()}
		changed = true
	}
	s.mu.Unlock()

	if changed {
		s.emit(change)
	}
}

// lockLocked commits the lock transition. Caller holds s.mu. The side
// effects run synchronously and in order: destroy the vault key, purge the
// plaintext cache, revoke the credential, then flag the one-time capture
// notice if a capture is in flight.
func (s *sessionController) lockLocked() (StateChange, bool) {
	if s.state == StateLocked {
		return StateChange{}, false
	}

	if s.key != nil {
		s.key.Zero()
		s.key = nil
	}
	s.records.PurgePlaintext(s.userID)
	s.credential = ""
	s.secret = ""

	captureContinues := false
	if s.recording && !s.captureNoticeSent {
		s.captureNoticeSent = true
		captureContinues = true
	}

	from := s.state
	s.state = StateLocked

	s.logger.Info().Int64("user_id", s.userID).Bool("capture_continues", captureContinues).Msg("session locked")
	return StateChange{From: from, To: StateLocked, At: s.now(), CaptureContinues: captureContinues}, true
}

func (s *sessionController) emit(change StateChange) {
	s.mu.Lock()
	subs := make([]func(StateChange), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(change)
	}
}

func (s *sessionController) startTicker() {
	s.stopTicker()

	s.tickMu.Lock()
	tickCtx, cancel := context.WithCancel(context.Background())
	s.tickCancel = cancel
	s.tickWG.Add(1)
	s.tickMu.Unlock()

	go func() {
		defer s.tickWG.Done()
		t := time.NewTicker(s.sessionCfg.TickInterval)
		defer t.Stop()

		for {
			select {
			case <-tickCtx.Done():
				return
			case <-t.C:
				s.tick()
				if s.State() == StateLocked {
					return
				}
			}
		}
	}()
}

func (s *sessionController) stopTicker() {
	s.tickMu.Lock()
	cancel := s.tickCancel
	s.tickCancel = nil
	s.tickMu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.tickWG.Wait()
}
