// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-vault/internal/adapter"
	"github.com/MKhiriev/go-note-vault/internal/config"
	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/models"
)

// expireSubmitTimeout bounds the best-effort finalize triggered by the
// max-duration cutoff, which runs outside any caller context.
const expireSubmitTimeout = time.Minute

type captureService struct {
	controller SessionController
	custodian  adapter.CustodianAdapter
	secrets    SecretService
	records    RecordService
	engine     crypto.Engine

	sessionCfg config.Session
	vaultCfg   config.Vault

	logger *logger.Logger
}

// NewCaptureService constructs a [CaptureService].
func NewCaptureService(controller SessionController, custodian adapter.CustodianAdapter, secrets SecretService, records RecordService, engine crypto.Engine, sessionCfg config.Session, vaultCfg config.Vault, logger *logger.Logger) CaptureService {
	logger.Debug().Msg("creating capture service")
	return &captureService{
		controller: controller,
		custodian:  custodian,
		secrets:    secrets,
		records:    records,
		engine:     engine,
		sessionCfg: sessionCfg,
		vaultCfg:   vaultCfg,
		logger:     logger,
	}
}

// Begin implements [CaptureService]. Everything that needs the live session
// happens here, while it is still live: the snapshot is taken, the device
// salt is loaded, and the single-use capture token is minted with the
// current credential. From this point the capture depends on none of them
// staying alive.
func (s *captureService) Begin(ctx context.Context) (*Capture, error) {
	snapshot, credential, err := s.controller.BeginCapture()
	if err != nil {
		return nil, err
	}

	salt, err := s.secrets.GetOrCreateDeviceSalt(ctx, snapshot.UserID())
	if err != nil {
		s.abortBegin(snapshot)
		return nil, fmt.Errorf("begin capture: %w", err)
	}

	token, err := s.custodian.CreateCaptureSession(ctx, credential)
	if err != nil {
		s.abortBegin(snapshot)
		return nil, fmt.Errorf("begin capture: %w", err)
	}

	c := &Capture{
		svc:       s,
		snapshot:  snapshot,
		token:     token,
		salt:      salt,
		startedAt: time.Now(),
	}
	c.timer = time.AfterFunc(s.sessionCfg.MaxCaptureDuration, c.expire)

	s.logger.Info().Int64("user_id", snapshot.UserID()).Str("session_id", token.SessionID).Msg("capture started")
	return c, nil
}

func (s *captureService) abortBegin(snapshot *CaptureSnapshot) {
	snapshot.Invalidate()
	s.controller.EndCapture()
}

// Capture is one in-flight long-running capture operation. It owns its
// snapshot and finishes from it alone: once Begin returns, a concurrent lock
// or sign-out cannot stop the capture from persisting its result.
type Capture struct {
	svc       *captureService
	snapshot  *CaptureSnapshot
	token     models.CaptureToken
	salt      string
	startedAt time.Time

	mu      sync.Mutex
	audio   []byte
	text    string
	ended   bool
	expired bool

	timer   *time.Timer
	endOnce sync.Once
}

// AddAudio appends a chunk of captured audio. Fails with [ErrCaptureEnded]
// after the capture has finished.
func (c *Capture) AddAudio(chunk []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ended {
		return ErrCaptureEnded
	}
	c.audio = append(c.audio, chunk...)
	return nil
}

// SetText records device-side recognizer output to accompany (or replace)
// the raw audio.
func (c *Capture) SetText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ended {
		return ErrCaptureEnded
	}
	c.text = text
	return nil
}

// SessionID returns the single-use capture token id.
func (c *Capture) SessionID() string {
	return c.token.SessionID
}

// Complete finalizes the capture: the gathered payload goes to the
// transcription service (authorized by the single-use token, not the
// session credential), the result is encrypted under a key re-derived from
// the snapshot secret and the device salt, and the record is appended.
// Returns the new record id. The snapshot is invalidated and the recording
// guard cleared on every path out of here, success or not.
func (c *Capture) Complete(ctx context.Context) (string, error) {
	audio, text, err := c.takePayload()
	if err != nil {
		return "", err
	}
	defer c.end()

	return c.finalize(ctx, audio, text)
}

// Cancel stops the capture before its natural completion. Data already
// gathered is still submitted to the finish path (best effort); with zero
// data the capture just ends. Returns the record id when a record was made.
func (c *Capture) Cancel(ctx context.Context) (string, error) {
	audio, text, err := c.takePayload()
	if err != nil {
		return "", err
	}
	defer c.end()

	if len(audio) == 0 && text == "" {
		c.svc.logger.Info().Str("session_id", c.token.SessionID).Msg("capture cancelled with no data")
		return "", nil
	}

	return c.finalize(ctx, audio, text)
}

// expire is the max-duration cutoff. It terminates the capture and submits
// whatever was gathered so far; exceeding the cap is not a hard failure of
// existing data.
func (c *Capture) expire() {
	audio, text, err := c.takePayload()
	if err != nil {
		return // already ended
	}
	defer c.end()

	c.mu.Lock()
	c.expired = true
	c.mu.Unlock()

	c.svc.logger.Warn().Str("session_id", c.token.SessionID).Msg("capture exceeded maximum duration, finalizing")
	if len(audio) == 0 && text == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), expireSubmitTimeout)
	defer cancel()

	if _, err := c.finalize(ctx, audio, text); err != nil {
		c.svc.logger.Err(err).Str("session_id", c.token.SessionID).Msg("auto-finalize after expiry failed")
	}
}

// takePayload atomically claims the gathered data and marks the capture
// ended, so exactly one finish path runs.
func (c *Capture) takePayload() ([]byte, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ended {
		if c.expired {
			return nil, "", ErrCaptureExpired
		}
		return nil, "", ErrCaptureEnded
	}
	c.ended = true

	return c.audio, c.text, nil
}

func (c *Capture) finalize(ctx context.Context, audio []byte, text string) (string, error) {
	secret, err := c.snapshot.Secret()
	if err != nil {
		return "", err
	}

	formatted, err := c.svc.custodian.SubmitTranscript(ctx, c.token.SessionID, models.TranscriptRequest{
		Audio: audio,
		Text:  text,
	})
	if err != nil {
		return "", fmt.Errorf("submit transcript: %w", err)
	}

	// the key comes from the snapshot, never from the controller
	key, err := c.svc.engine.DeriveKey(secret, c.salt, c.svc.vaultCfg.KDFIterations)
	if err != nil {
		return "", fmt.Errorf("derive capture key: %w", err)
	}
	defer key.Zero()

	fields := models.NoteFields{
		Title:           noteTitle(formatted),
		Transcript:      formatted,
		DurationSeconds: int(time.Since(c.startedAt).Seconds()),
	}

	recordID, err := c.svc.records.Append(ctx, c.snapshot.UserID(), key, fields)
	if err != nil {
		return "", fmt.Errorf("store capture record: %w", err)
	}

	c.svc.logger.Info().Int64("user_id", c.snapshot.UserID()).Str("record_id", recordID).Msg("capture persisted")
	return recordID, nil
}

// end releases everything the capture holds: the cutoff timer, the snapshot
// secret, and the controller's recording guard. Runs exactly once no matter
// which exit path got here first.
func (c *Capture) end() {
	c.endOnce.Do(func() {
		if c.timer != nil {
			c.timer.Stop()
		}
		c.snapshot.Invalidate()
		c.svc.controller.EndCapture()
	})
}

func noteTitle(text string) string {
	line := text
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "Voice note"
	}

	runes := []rune(line)
	if len(runes) > 48 {
		return string(runes[:48])
	}
	return line
}
