// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the AEAD key length in bytes (AES-256).
	KeySize = 32

	// NonceSize is the AES-GCM nonce length in bytes (96 bits).
	NonceSize = 12

	// DefaultIterations is the default PBKDF2 iteration count. High on
	// purpose: key derivation happens once per unlock, not per record.
	DefaultIterations = 100_000

	// saltBytes is the raw length of a generated salt before hex encoding.
	saltBytes = 32
)

// engine is the private implementation of [Engine].
type engine struct{}

// NewEngine constructs the production [Engine]: PBKDF2-SHA256 for key
// derivation, AES-256-GCM for record encryption.
func NewEngine() Engine {
	return &engine{}
}

// DeriveKey implements [Engine].
func (e *engine) DeriveKey(secret, salt string, iterations int) (*VaultKey, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if salt == "" {
		return nil, ErrEmptySalt
	}
	if iterations <= 0 {
		return nil, ErrInvalidIterations
	}

	// The ":" separator keeps (secret="ab", salt="c") and
	// (secret="a", salt="bc") from deriving the same key.
	material := pbkdf2.Key([]byte(secret+":"+salt), []byte(salt), iterations, KeySize, sha256.New)

	return &VaultKey{material: material}, nil
}

// GenerateSalt implements [Engine]. It reads 32 random bytes from the OS
// CSPRNG and returns them hex-encoded. Returns an error if the random read
// fails.
func (e *engine) GenerateSalt() (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("read salt from CSPRNG: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// Encrypt implements [Engine].
func (e *engine) Encrypt(key *VaultKey, plaintext []byte) ([]byte, []byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	return nonce, ciphertext, nil
}

// Decrypt implements [Engine].
func (e *engine) Decrypt(key *VaultKey, nonce, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(nonce) != gcm.NonceSize() {
		// A mangled nonce is the same class of failure as a mangled
		// ciphertext: the record cannot be authenticated.
		return nil, ErrAuthentication
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// Single error kind for every verification failure.
		return nil, ErrAuthentication
	}

	return plaintext, nil
}

func newGCM(key *VaultKey) (cipher.AEAD, error) {
	if !key.Live() {
		return nil, ErrKeyDestroyed
	}

	block, err := aes.NewCipher(key.material)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
