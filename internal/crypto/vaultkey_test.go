package crypto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestVaultKey_ZeroWipesMaterial(t *testing.T) {
	key := deriveTestKey(t)
	buf := key.material // alias the backing array before Zero drops it

	key.Zero()

	if key.Live() {
		t.Fatalf("expected key to be dead after Zero")
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not zeroed", i)
		}
	}

	// Idempotent.
	key.Zero()
}

func TestVaultKey_UnusableAfterZero(t *testing.T) {
	e := NewEngine()
	key := deriveTestKey(t)
	key.Zero()

	if _, _, err := e.Encrypt(key, []byte("x")); !errors.Is(err, ErrKeyDestroyed) {
		t.Fatalf("Encrypt after Zero: got %v, want ErrKeyDestroyed", err)
	}
	if _, err := e.Decrypt(key, make([]byte, NonceSize), []byte("x")); !errors.Is(err, ErrKeyDestroyed) {
		t.Fatalf("Decrypt after Zero: got %v, want ErrKeyDestroyed", err)
	}
}

func TestVaultKey_NotExportable(t *testing.T) {
	key := deriveTestKey(t)

	if _, err := json.Marshal(key); err == nil {
		t.Fatalf("expected json.Marshal of VaultKey to fail")
	}
	if _, err := key.MarshalText(); !errors.Is(err, ErrKeyNotExportable) {
		t.Fatalf("MarshalText: got %v, want ErrKeyNotExportable", err)
	}
	if _, err := key.MarshalBinary(); !errors.Is(err, ErrKeyNotExportable) {
		t.Fatalf("MarshalBinary: got %v, want ErrKeyNotExportable", err)
	}
}

func TestVaultKey_FormattersRedact(t *testing.T) {
	key := deriveTestKey(t)

	for _, formatted := range []string{
		fmt.Sprintf("%v", key),
		fmt.Sprintf("%s", key),
		fmt.Sprintf("%#v", key),
	} {
		if !strings.Contains(formatted, "redacted") {
			t.Fatalf("formatter output %q does not redact", formatted)
		}
	}
}
