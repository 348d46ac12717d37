package voice

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// session is the mutable state of one live connection. It is only ever
// touched by the connection's own goroutine, so no locking is needed.
type session struct {
	id      string
	voiceID string // empty until a control message selects one
}

func newSession() *session {
	return &session{id: uuid.NewString()}
}

// controlMessage is the recognized shape of inbound text frames. Unknown
// fields are ignored.
type controlMessage struct {
	VoiceID *string `json:"voice_id"`
}

// applyControl parses a control frame and updates the session. A malformed
// frame is discarded without touching session state; a present voice_id
// overwrites the selection unconditionally, last write wins.
func (h *Handler) applyControl(sess *session, payload []byte, logger zerolog.Logger) {
	var msg controlMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		h.metrics.ControlParseFailures.Inc()
		logger.Debug().Err(err).Msg("discarding malformed control message")
		return
	}

	if msg.VoiceID != nil {
		sess.voiceID = *msg.VoiceID
		logger.Info().Str("voice", sess.voiceID).Msg("voice selected")
	}
}
