// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// VaultKey is the 256-bit record-encryption key derived from the server
// secret and the device salt.
//
// Go has no runtime notion of a non-extractable key handle, so the property
// is enforced structurally instead: the material lives in an unexported
// field, every marshal entry point refuses with [ErrKeyNotExportable], and
// the string formatters print a redacted placeholder. Zero wipes the buffer
// when the session locks or the process shuts down.
//
// A VaultKey is never persisted.
type VaultKey struct {
	material []byte
}

// Live reports whether the key still holds usable material (i.e. Zero has
// not been called).
func (k *VaultKey) Live() bool {
	return k != nil && len(k.material) == KeySize
}

// Zero overwrites the key material and drops the buffer. Safe to call more
// than once. After Zero, any Encrypt/Decrypt with this key returns
// [ErrKeyDestroyed].
func (k *VaultKey) Zero() {
	if k == nil {
		return
	}
	for i := range k.material {
		k.material[i] = 0
	}
	k.material = nil
}

// String implements [fmt.Stringer] with a redacted placeholder so that a
// stray %v in a log line can never leak key bytes.
func (k *VaultKey) String() string {
	return "VaultKey(redacted)"
}

// GoString implements [fmt.GoStringer]; %#v is redacted the same way as %v.
func (k *VaultKey) GoString() string {
	return k.String()
}

// MarshalJSON always fails: the key must not survive a trip through any
// serializer.
func (k *VaultKey) MarshalJSON() ([]byte, error) {
	return nil, ErrKeyNotExportable
}

// MarshalText always fails, same contract as [VaultKey.MarshalJSON].
func (k *VaultKey) MarshalText() ([]byte, error) {
	return nil, ErrKeyNotExportable
}

// MarshalBinary always fails, same contract as [VaultKey.MarshalJSON].
func (k *VaultKey) MarshalBinary() ([]byte, error) {
	return nil, ErrKeyNotExportable
}
