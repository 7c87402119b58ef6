package adapter

import (
	"context"

	"github.com/MKhiriev/go-note-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// CustodianAdapter is the client-side transport to the secret-custodian
// server. Credential-bearing calls take the credential explicitly per call
// rather than holding it in adapter state: the session controller owns the
// credential lifecycle and revokes it on lock, and a stale copy inside the
// adapter would outlive that revocation.
type CustodianAdapter interface {
	// FetchSecret retrieves the caller's server-held secret. Issued once per
	// user and immutable afterwards, so repeated calls return the same value.
	FetchSecret(ctx context.Context, credential string) (string, error)

	// CreateCaptureSession mints a single-use capture session token for the
	// authenticated user.
	CreateCaptureSession(ctx context.Context, credential string) (models.CaptureToken, error)

	// SubmitTranscript redeems the capture token and returns the formatted
	// transcript text. No credential: the single-use token is the whole
	// authorization, which is what lets a capture finish after the local
	// session has locked and its credential has been revoked.
	SubmitTranscript(ctx context.Context, sessionID string, req models.TranscriptRequest) (string, error)
}
