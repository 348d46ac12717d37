package voice

import "context"

// resolveVoice picks the synthesis voice for the next utterance: the
// session's selection when set, otherwise the first available voice from
// the lister, otherwise the configured default.
func (h *Handler) resolveVoice(ctx context.Context, sess *session) string {
	if sess.voiceID != "" {
		return sess.voiceID
	}

	if h.voices != nil {
		callCtx, cancel := context.WithTimeout(ctx, h.callTimeout)
		defer cancel()

		voices, err := h.voices.ListVoices(callCtx)
		if err != nil {
			h.logger.Debug().Err(err).Msg("voice listing failed, using default voice")
		} else if len(voices) > 0 {
			return voices[0].ID
		}
	}

	return h.defaultVoiceID
}
