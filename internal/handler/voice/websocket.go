// Package voice serves the bidirectional websocket voice-coaching endpoint.
//
// Each connection is one session handled by one goroutine: frames are
// processed strictly in arrival order and a pipeline run for frame N
// completes before frame N+1 is read. Every external failure degrades to a
// client-visible sentinel (empty binary frame, fallback text) instead of
// closing the connection.
package voice

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/nightowl-labs/restwise/backend/internal/observability/logging"
	"github.com/nightowl-labs/restwise/backend/internal/observability/metrics"
	"github.com/nightowl-labs/restwise/backend/internal/service/speech"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
)

// ResponseGenerator produces a coach reply for a transcript. It never fails;
// degraded outputs are part of its contract.
type ResponseGenerator interface {
	GenerateResponse(ctx context.Context, userText string) string
}

// Config carries the handler's tunables.
type Config struct {
	DefaultVoiceID string
	CallTimeout    time.Duration // per external capability call
	MaxFrameBytes  int64         // inbound frame size cap
}

// Handler owns the websocket endpoint and the per-connection pipeline.
type Handler struct {
	transcriber speech.Transcriber
	generator   ResponseGenerator
	synthesizer speech.Synthesizer
	voices      speech.VoiceLister

	defaultVoiceID string
	callTimeout    time.Duration
	maxFrameBytes  int64

	upgrader websocket.Upgrader
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// New creates the voice handler. Nil capabilities are tolerated and behave
// as permanently failing providers, the pipeline degrades accordingly.
func New(transcriber speech.Transcriber, generator ResponseGenerator, synthesizer speech.Synthesizer, voices speech.VoiceLister, cfg Config) *Handler {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 30 * time.Second
	}
	if cfg.MaxFrameBytes <= 0 {
		cfg.MaxFrameBytes = 10 << 20
	}

	return &Handler{
		transcriber:    transcriber,
		generator:      generator,
		synthesizer:    synthesizer,
		voices:         voices,
		defaultVoiceID: cfg.DefaultVoiceID,
		callTimeout:    cfg.CallTimeout,
		maxFrameBytes:  cfg.MaxFrameBytes,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		metrics: metrics.Default,
		logger:  logging.WithComponent("voice"),
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/audio", h.handleWebSocket)
}

// outboundText is the text frame sent once per transcribed utterance.
type outboundText struct {
	Transcript string `json:"transcript"`
	Response   string `json:"response"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sess := newSession()
	logger := h.logger.With().Str("session", sess.id).Logger()
	logger.Info().Msg("voice session opened")

	h.metrics.SessionsTotal.Inc()
	h.metrics.SessionsActive.Inc()
	defer h.metrics.SessionsActive.Dec()
	defer logger.Info().Msg("voice session closed")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadLimit(h.maxFrameBytes)
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go h.pingLoop(ctx, conn)

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Warn().Err(err).Msg("read error")
			}
			return
		}

		conn.SetReadDeadline(time.Now().Add(readTimeout))

		switch msgType {
		case websocket.BinaryMessage:
			h.runPipeline(ctx, conn, sess, payload, logger)
		case websocket.TextMessage:
			h.applyControl(sess, payload, logger)
		}
	}
}

// runPipeline drives one utterance through transcription, generation,
// synthesis and reply streaming.
func (h *Handler) runPipeline(ctx context.Context, conn *websocket.Conn, sess *session, audio []byte, logger zerolog.Logger) {
	h.metrics.FramesReceived.Inc()
	h.metrics.AudioBytesReceived.Add(float64(len(audio)))

	voiceID := h.resolveVoice(ctx, sess)

	transcript, err := h.transcribe(ctx, audio)
	if err != nil {
		h.metrics.TranscriptionFailures.Inc()
		logger.Warn().Err(err).Msg("transcription failed, skipping utterance")
		h.writeEmptyAudio(conn, logger)
		return
	}
	if transcript == "" {
		h.metrics.EmptyTranscripts.Inc()
		logger.Debug().Msg("empty transcript, skipping utterance")
		h.writeEmptyAudio(conn, logger)
		return
	}

	genCtx, cancel := context.WithTimeout(ctx, h.callTimeout)
	response := h.generator.GenerateResponse(genCtx, transcript)
	cancel()
	h.metrics.ResponsesTotal.Inc()

	if err := conn.WriteJSON(outboundText{Transcript: transcript, Response: response}); err != nil {
		logger.Warn().Err(err).Msg("failed to write text frame")
		return
	}

	replyAudio, err := h.synthesize(ctx, response, voiceID)
	if err != nil {
		h.metrics.SynthesisFailures.Inc()
		logger.Warn().Err(err).Str("voice", voiceID).Msg("synthesis failed")
		h.writeEmptyAudio(conn, logger)
		return
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, replyAudio); err != nil {
		logger.Warn().Err(err).Msg("failed to write audio frame")
	}
}

func (h *Handler) transcribe(ctx context.Context, audio []byte) (string, error) {
	if h.transcriber == nil {
		return "", errors.New("transcription unavailable")
	}

	callCtx, cancel := context.WithTimeout(ctx, h.callTimeout)
	defer cancel()
	return h.transcriber.Transcribe(callCtx, audio)
}

func (h *Handler) synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if h.synthesizer == nil {
		return nil, errors.New("synthesis unavailable")
	}

	callCtx, cancel := context.WithTimeout(ctx, h.callTimeout)
	defer cancel()
	return h.synthesizer.Synthesize(callCtx, text, voiceID)
}

// writeEmptyAudio sends the zero-length binary frame that signals a skipped
// or failed utterance to the client.
func (h *Handler) writeEmptyAudio(conn *websocket.Conn, logger zerolog.Logger) {
	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{}); err != nil {
		logger.Warn().Err(err).Msg("failed to write empty audio frame")
	}
}

func (h *Handler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
