// Package ai generates coach responses: persona plus latest context plus the
// current utterance, with a local fallback chain when the model is
// unavailable. Generation is deliberately stateless, no conversation history
// carries across turns.
package ai

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/rs/zerolog"

	"github.com/nightowl-labs/restwise/backend/internal/model/coach"
	"github.com/nightowl-labs/restwise/backend/internal/observability/logging"
	"github.com/nightowl-labs/restwise/backend/internal/observability/metrics"
)

// DefaultReply is the final link of the fallback chain.
const DefaultReply = "I'm here to help with your sleep."

// Fixed generation parameters for every call.
const (
	generationTemperature float32 = 0.7
	generationMaxTokens           = 400
)

// Service builds prompts and produces coach responses. It never returns an
// error: model failures degrade to a dialogue-example match, then to
// DefaultReply.
type Service struct {
	chatModel model.BaseChatModel // nil when generation is not configured
	store     coach.Store
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewService creates the response generator. chatModel may be nil; the
// service then serves fallback responses only.
func NewService(chatModel model.BaseChatModel, store coach.Store) *Service {
	return &Service{
		chatModel: chatModel,
		store:     store,
		metrics:   metrics.Default,
		logger:    logging.WithComponent("ai"),
	}
}

// GenerateResponse produces a coach reply for the transcribed utterance.
func (s *Service) GenerateResponse(ctx context.Context, userText string) string {
	if s.chatModel == nil {
		return s.fallback(userText, "disabled")
	}

	response, err := s.chatModel.Generate(ctx, s.buildMessages(userText),
		model.WithTemperature(generationTemperature),
		model.WithMaxTokens(generationMaxTokens),
	)
	if err != nil {
		s.logger.Warn().Err(err).Msg("generation failed, serving fallback")
		return s.fallback(userText, "error")
	}

	return strings.TrimSpace(response.Content)
}
