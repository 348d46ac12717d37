package ai

import "github.com/cloudwego/eino/schema"

const coachInstructions = "You are a virtual sleep coach assistant. " +
	"Be empathetic, friendly, and provide helpful advice about sleep. " +
	"You have access to the user's sleep diary and wearable data."

// buildMessages assembles the message list for one generation call: persona
// instruction, optional latest-data context, then the user utterance.
func (s *Service) buildMessages(userText string) []*schema.Message {
	messages := []*schema.Message{schema.SystemMessage(coachInstructions)}

	if snap := s.store.Snapshot(); !snap.Empty() {
		messages = append(messages, schema.SystemMessage("Context:\n"+snap.Format()))
	}

	return append(messages, schema.UserMessage(userText))
}

// fallback serves the degraded response chain: first matching dialogue
// example, then the fixed default line.
func (s *Service) fallback(userText, reason string) string {
	if reply, ok := s.store.FindFallback(userText); ok {
		s.metrics.GenerationFallbacks.WithLabelValues("example").Inc()
		s.logger.Debug().Str("reason", reason).Msg("served dialogue-example fallback")
		return reply
	}

	s.metrics.GenerationFallbacks.WithLabelValues("default").Inc()
	s.logger.Debug().Str("reason", reason).Msg("served default fallback")
	return DefaultReply
}
