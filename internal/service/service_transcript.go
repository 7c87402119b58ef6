package service

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/models"
)

// transcriptService implements [TranscriptService]. It stands in for a full
// speech-to-text pipeline: device-side recognizer text is preferred, and
// audio is accepted when it decodes as UTF-8 text (the capture client ships
// recognizer output in the audio slot when no text field was set).
//
// TODO: plug a real speech-to-text backend behind this interface once one is
// provisioned; Format's contract will not change.
type transcriptService struct {
	logger *logger.Logger
}

// NewTranscriptService constructs a [TranscriptService].
func NewTranscriptService(logger *logger.Logger) TranscriptService {
	return &transcriptService{logger: logger}
}

// Format implements [TranscriptService].
func (s *transcriptService) Format(ctx context.Context, req models.TranscriptRequest) (string, error) {
	raw := req.Text
	if raw == "" {
		if len(req.Audio) == 0 {
			return "", ErrEmptyTranscriptPayload
		}
		if !utf8.Valid(req.Audio) {
			return "", ErrUnsupportedAudio
		}
		raw = string(req.Audio)
	}

	formatted := formatPlainText(raw)
	if formatted == "" {
		return "", ErrEmptyTranscriptPayload
	}

	return formatted, nil
}

// formatPlainText normalises recognizer output into readable plain text:
// whitespace is collapsed per line, blank-line runs are squeezed, the first
// letter is capitalised, and a terminal period is added when the text ends
// without punctuation.
func formatPlainText(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	cleaned := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank = true
			continue
		}
		if blank && len(cleaned) > 0 {
			cleaned = append(cleaned, "")
		}
		blank = false
		cleaned = append(cleaned, line)
	}

	text := strings.Join(cleaned, "\n")
	if text == "" {
		return ""
	}

	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	text = string(runes)

	last := runes[len(runes)-1]
	if unicode.IsLetter(last) || unicode.IsDigit(last) {
		text += "."
	}

	return text
}
