package speech

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nightowl-labs/restwise/backend/internal/config"
)

// WhisperTranscriber implements Transcriber against the OpenAI Whisper API.
type WhisperTranscriber struct {
	client *openai.Client
	model  string
}

// NewWhisperTranscriber builds the Whisper adapter from configuration.
func NewWhisperTranscriber(cfg config.OpenAIConfig) *WhisperTranscriber {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &WhisperTranscriber{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.WhisperModel,
	}
}

// Transcribe sends the utterance bytes to Whisper and returns the trimmed
// transcript text.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model: t.model,
		// The API infers the codec from the file extension; clients send
		// single-channel WAV clips.
		FilePath: "utterance.wav",
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}
