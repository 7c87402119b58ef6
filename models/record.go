// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EncryptedRecord is the at-rest form of a single vault note. It is stored
// in the per-user append-only collection under the "records:{userID}" key.
//
// CreatedAt is deliberately kept in plaintext: the TTL janitor must be able
// to expire records without decrypting them.
//
// Nonce is generated fresh for every encryption call. A repeated nonce under
// the same key is a correctness bug, not merely a security concern.
type EncryptedRecord struct {
	// ID is an opaque record identifier (UUID).
	ID string `json:"id"`

	// CreatedAt is the record creation instant, plaintext by design.
	CreatedAt time.Time `json:"created_at"`

	// Nonce is the 12-byte AES-GCM nonce used for this ciphertext.
	Nonce []byte `json:"nonce"`

	// Ciphertext is the AEAD output: encrypted payload with the 16-byte
	// authentication tag appended.
	Ciphertext []byte `json:"ciphertext"`
}

// DecryptedRecord is the in-memory form of a vault note. It exists only in
// volatile memory and is never written to durable storage in plaintext.
type DecryptedRecord struct {
	ID        string
	CreatedAt time.Time
	Fields    NoteFields
}

// NoteFields is the structured payload of a decrypted note.
type NoteFields struct {
	// Title is a short user-facing caption for the note.
	Title string `json:"title"`

	// Transcript is the plain-text body produced by the transcription and
	// formatting service (or typed directly by the user).
	Transcript string `json:"transcript"`

	// DurationSeconds is the length of the source audio, zero for typed notes.
	DurationSeconds int `json:"duration_seconds,omitempty"`
}

// NoteFieldsPatch describes a partial update of [NoteFields]. Nil fields are
// left untouched by the merge.
type NoteFieldsPatch struct {
	Title           *string `json:"title,omitempty"`
	Transcript      *string `json:"transcript,omitempty"`
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
}

// Apply merges the patch into fields, overwriting only the fields that are
// set on the patch.
func (p NoteFieldsPatch) Apply(fields *NoteFields) {
	if p.Title != nil {
		fields.Title = *p.Title
	}
	if p.Transcript != nil {
		fields.Transcript = *p.Transcript
	}
	if p.DurationSeconds != nil {
		fields.DurationSeconds = *p.DurationSeconds
	}
}
