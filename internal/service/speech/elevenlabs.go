package speech

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/haguro/elevenlabs-go"
	"github.com/rs/zerolog"

	"github.com/nightowl-labs/restwise/backend/internal/config"
	"github.com/nightowl-labs/restwise/backend/internal/observability/logging"
)

const ttsModelID = "eleven_monolingual_v1"

// ElevenLabsClient implements Synthesizer and VoiceLister against the
// ElevenLabs HTTP API.
type ElevenLabsClient struct {
	cfg    config.ElevenLabsConfig
	logger zerolog.Logger
}

// NewElevenLabsClient builds the ElevenLabs adapter from configuration.
func NewElevenLabsClient(cfg config.ElevenLabsConfig) *ElevenLabsClient {
	return &ElevenLabsClient{
		cfg:    cfg,
		logger: logging.WithComponent("elevenlabs"),
	}
}

// Synthesize renders text to audio bytes in the requested voice, retrying
// transient failures before giving up.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	client := elevenlabs.NewClient(ctx, c.cfg.APIKey, c.cfg.Timeout)

	var audio []byte
	op := func() error {
		data, err := client.TextToSpeech(voiceID, elevenlabs.TextToSpeechRequest{
			Text:    text,
			ModelID: ttsModelID,
		}, elevenlabs.OutputFormat(c.cfg.OutputFormat))
		if err != nil {
			c.logger.Debug().Err(err).Str("voice", voiceID).Msg("synthesis attempt failed")
			return err
		}
		audio = data
		return nil
	}

	if err := backoff.Retry(op, c.retryPolicy(ctx)); err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	return audio, nil
}

// ListVoices returns the account's available voices.
func (c *ElevenLabsClient) ListVoices(ctx context.Context) ([]Voice, error) {
	client := elevenlabs.NewClient(ctx, c.cfg.APIKey, c.cfg.Timeout)

	var voices []Voice
	op := func() error {
		all, err := client.GetVoices()
		if err != nil {
			c.logger.Debug().Err(err).Msg("voice listing attempt failed")
			return err
		}
		voices = voices[:0]
		for _, v := range all {
			voices = append(voices, Voice{ID: v.VoiceId, Name: v.Name})
		}
		return nil
	}

	if err := backoff.Retry(op, c.retryPolicy(ctx)); err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}
	return voices, nil
}

func (c *ElevenLabsClient) retryPolicy(ctx context.Context) backoff.BackOff {
	return backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.cfg.MaxRetries), ctx)
}
