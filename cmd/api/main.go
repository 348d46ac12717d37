package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/nightowl-labs/restwise/backend/internal/config"
	"github.com/nightowl-labs/restwise/backend/internal/handler"
	"github.com/nightowl-labs/restwise/backend/internal/handler/voice"
	"github.com/nightowl-labs/restwise/backend/internal/model/coach"
	"github.com/nightowl-labs/restwise/backend/internal/model/usercontext"
	"github.com/nightowl-labs/restwise/backend/internal/observability/logging"
	"github.com/nightowl-labs/restwise/backend/internal/service/ai"
	"github.com/nightowl-labs/restwise/backend/internal/service/auth"
	"github.com/nightowl-labs/restwise/backend/internal/service/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file, continuing with system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(cfg.Log)
	logger := logging.WithComponent("main")

	coachStore := coach.LoadStore(cfg.Data.DiaryPath, cfg.Data.MetricsPath, cfg.Data.DialoguesPath)

	var chatModel model.BaseChatModel
	var transcriber speech.Transcriber
	if cfg.OpenAI.Enabled() {
		chatModel, err = cfg.OpenAI.NewChatModel(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("chat model unavailable, responses degrade to fallbacks")
		}
		transcriber = speech.NewWhisperTranscriber(cfg.OpenAI)
	} else {
		logger.Warn().Msg("OPENAI_API_KEY not set, transcription disabled and responses degrade to fallbacks")
	}
	generator := ai.NewService(chatModel, coachStore)

	var synthesizer speech.Synthesizer
	var lister speech.VoiceLister
	if cfg.ElevenLabs.Enabled() {
		elevenLabs := speech.NewElevenLabsClient(cfg.ElevenLabs)
		synthesizer = elevenLabs
		lister = elevenLabs
	} else {
		logger.Warn().Msg("ELEVENLABS_API_KEY not set, synthesis and voice listing disabled")
	}

	var verifier auth.Verifier
	if cfg.Auth.Enabled() {
		verifier = auth.NewJWTVerifier(cfg.Auth.JWTSecret)
	} else {
		logger.Warn().Msg("AUTH_JWT_SECRET not set, gated endpoints will answer 503")
	}

	voiceHandler := voice.New(transcriber, generator, synthesizer, lister, voice.Config{
		DefaultVoiceID: cfg.ElevenLabs.DefaultVoiceID,
		CallTimeout:    cfg.Pipeline.CallTimeout,
		MaxFrameBytes:  cfg.Pipeline.MaxFrameBytes,
	})

	router := handler.NewRouter(voiceHandler, lister, usercontext.NewStore(), verifier)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger := logging.WithComponent("main")
	logger.Info().Str("addr", serverCfg.Addr).Msg("restwise backend listening")
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
