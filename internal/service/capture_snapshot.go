package service

import (
	"sync"
	"time"
)

// CaptureSnapshot is a point-in-time copy of the session's server secret and
// user identity, taken at the start of a long-running capture. The snapshot
// is owned exclusively by that capture: a concurrent lock or sign-out wipes
// the controller's own state but never reaches in here. The capture must
// invalidate the snapshot on every exit path.
type CaptureSnapshot struct {
	mu        sync.Mutex
	secret    []byte
	userID    int64
	createdAt time.Time
	valid     bool
}

func newCaptureSnapshot(secret string, userID int64, createdAt time.Time) *CaptureSnapshot {
	return &CaptureSnapshot{
		secret:    []byte(secret),
		userID:    userID,
		createdAt: createdAt,
		valid:     true,
	}
}

// Secret returns a copy of the captured server secret, or
// [ErrSnapshotInvalidated] after Invalidate.
func (s *CaptureSnapshot) Secret() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.valid {
		return "", ErrSnapshotInvalidated
	}
	return string(s.secret), nil
}

// UserID returns the captured user id.
func (s *CaptureSnapshot) UserID() int64 {
	return s.userID
}

// CreatedAt returns the moment the snapshot was taken.
func (s *CaptureSnapshot) CreatedAt() time.Time {
	return s.createdAt
}

// Valid reports whether the snapshot still holds its secret.
func (s *CaptureSnapshot) Valid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valid
}

// Invalidate wipes the secret buffer. Idempotent.
func (s *CaptureSnapshot) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.secret {
		s.secret[i] = 0
	}
	s.secret = nil
	s.valid = false
}
