package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptService_Format(t *testing.T) {
	tests := []struct {
		name    string
		req     models.TranscriptRequest
		want    string
		wantErr error
	}{
		{
			name: "text preferred over audio",
			req:  models.TranscriptRequest{Text: "hello there", Audio: []byte("ignored")},
			want: "Hello there.",
		},
		{
			name: "utf-8 audio used when text empty",
			req:  models.TranscriptRequest{Audio: []byte("spoken words")},
			want: "Spoken words.",
		},
		{
			name:    "binary audio rejected",
			req:     models.TranscriptRequest{Audio: []byte{0xFF, 0xFE, 0x00, 0x81}},
			wantErr: ErrUnsupportedAudio,
		},
		{
			name:    "empty payload rejected",
			req:     models.TranscriptRequest{},
			wantErr: ErrEmptyTranscriptPayload,
		},
		{
			name:    "whitespace-only payload rejected",
			req:     models.TranscriptRequest{Text: "  \n\t \n"},
			wantErr: ErrEmptyTranscriptPayload,
		},
		{
			name: "whitespace collapsed per line",
			req:  models.TranscriptRequest{Text: "first   line\nsecond\t\tline"},
			want: "First line\nsecond line.",
		},
		{
			name: "blank-line runs squeezed",
			req:  models.TranscriptRequest{Text: "one\n\n\n\ntwo"},
			want: "One\n\ntwo.",
		},
		{
			name: "crlf normalised",
			req:  models.TranscriptRequest{Text: "one\r\ntwo"},
			want: "One\ntwo.",
		},
		{
			name: "existing punctuation kept",
			req:  models.TranscriptRequest{Text: "is this a question?"},
			want: "Is this a question?",
		},
		{
			name: "trailing digit gets a period",
			req:  models.TranscriptRequest{Text: "room 42"},
			want: "Room 42.",
		},
	}

	svc := NewTranscriptService(logger.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Format(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
