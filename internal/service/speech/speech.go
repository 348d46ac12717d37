// Package speech defines the narrow capability interfaces the voice pipeline
// consumes, with one concrete adapter per provider. Handlers depend only on
// the interfaces so every pipeline scenario is testable with local fakes.
package speech

import "context"

// Transcriber converts one recorded utterance to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Synthesizer converts coach text to audio in the selected voice.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}

// Voice is one selectable synthesis voice.
type Voice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VoiceLister enumerates the available synthesis voices. The list may be
// empty.
type VoiceLister interface {
	ListVoices(ctx context.Context) ([]Voice, error)
}
