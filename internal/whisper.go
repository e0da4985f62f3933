package internal

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

var supportedAudioFormats = map[string]bool{
	".mp3": true, ".mp4": true, ".mpeg": true, ".mpga": true,
	".m4a": true, ".wav": true, ".webm": true,
}

// SupportedAudioFormat reports whether the transcription capability
// accepts the file's extension.
func SupportedAudioFormat(filename string) bool {
	return supportedAudioFormats[strings.ToLower(filepath.Ext(filename))]
}

var _ Transcriber = (*WhisperTranscriber)(nil)

// WhisperTranscriber delegates speech-to-text to the OpenAI audio API.
type WhisperTranscriber struct {
	client openai.Client
	model  string
}

func NewWhisperTranscriber(apiKey, model string) *WhisperTranscriber {
	return &WhisperTranscriber{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if !SupportedAudioFormat(filename) {
		return "", fmt.Errorf("%w: unsupported format %q", ErrTranscription, filepath.Ext(filename))
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(t.model),
		File:  openai.File(bytes.NewReader(audio), filename, "application/octet-stream"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}

	return resp.Text, nil
}
