package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_engine_mock.go -package=mock

// Engine owns every cryptographic primitive used by the vault. It knows
// nothing about the network, storage, or sessions; its single job is key
// derivation and authenticated encryption.
//
// Scheme:
//
//	key        = DeriveKey(serverSecret, deviceSalt, iterations)
//	nonce, ct  = Encrypt(key, plaintext)
//	plaintext  = Decrypt(key, nonce, ct)
//
// The derived [VaultKey] is non-exportable: once produced, no code path can
// serialize its raw bytes (see [VaultKey]).
type Engine interface {
	// DeriveKey stretches the server-held secret and the device-local salt
	// into a 256-bit AEAD key using PBKDF2-SHA256 over the concatenation
	// "secret:salt", salted with salt itself. Fails loudly on an empty
	// secret or salt, or a non-positive iteration count — a silent default
	// here would mean silently weak keys.
	DeriveKey(secret, salt string, iterations int) (*VaultKey, error)

	// GenerateSalt reads 32 bytes from the OS CSPRNG and returns them
	// hex-encoded (64 characters). Used for the per-(user, device) salt on
	// the client and the per-user wrap salt on the custodian.
	GenerateSalt() (string, error)

	// Encrypt seals plaintext with AES-256-GCM under key. A fresh random
	// 12-byte nonce is generated on every call; the 16-byte authentication
	// tag is appended to the ciphertext per the standard AEAD construction.
	Encrypt(key *VaultKey, plaintext []byte) (nonce, ciphertext []byte, err error)

	// Decrypt opens ciphertext with key and the nonce it was sealed under.
	// Every tag-verification failure — wrong key, flipped bit, truncated
	// blob — surfaces as [ErrAuthentication]; the cipher construction does
	// not allow callers to tell those cases apart.
	Decrypt(key *VaultKey, nonce, ciphertext []byte) ([]byte, error)
}
