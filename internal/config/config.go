package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every configuration section for the service.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	OpenAI     OpenAIConfig
	ElevenLabs ElevenLabsConfig
	Auth       AuthConfig
	Data       DataConfig
	Pipeline   PipelineConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	openAI, err := loadOpenAIConfig()
	if err != nil {
		return nil, err
	}

	elevenLabs, err := loadElevenLabsConfig()
	if err != nil {
		return nil, err
	}

	pipeline, err := loadPipelineConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:     server,
		Log:        loadLogConfig(),
		OpenAI:     openAI,
		ElevenLabs: elevenLabs,
		Auth:       loadAuthConfig(),
		Data:       loadDataConfig(),
		Pipeline:   pipeline,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level  string
	Format string // json or console
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

// OpenAIConfig covers both transcription (Whisper) and chat generation.
type OpenAIConfig struct {
	APIKey       string
	BaseURL      string
	ChatModel    string
	WhisperModel string
	Timeout      time.Duration
}

// Enabled reports whether OpenAI-backed capabilities can be constructed.
func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

// NewChatModel builds the eino chat model used for response generation.
func (c OpenAIConfig) NewChatModel(ctx context.Context) (model.BaseChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("OPENAI_API_KEY is not configured")
	}

	cfg := &openai.ChatModelConfig{
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
		Model:   c.ChatModel,
		Timeout: c.Timeout,
	}

	cm, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return cm, nil
}

func loadOpenAIConfig() (OpenAIConfig, error) {
	timeout, err := parseOptionalIntEnv("OPENAI_TIMEOUT")
	if err != nil {
		return OpenAIConfig{}, err
	}
	timeoutSeconds := 30
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	return OpenAIConfig{
		APIKey:       strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		BaseURL:      getEnvOrDefault("OPENAI_BASE_URL", ""),
		ChatModel:    getEnvOrDefault("OPENAI_CHAT_MODEL", "gpt-3.5-turbo"),
		WhisperModel: getEnvOrDefault("OPENAI_WHISPER_MODEL", "whisper-1"),
		Timeout:      time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// ElevenLabsConfig covers speech synthesis and voice listing.
type ElevenLabsConfig struct {
	APIKey         string
	OutputFormat   string
	DefaultVoiceID string
	Timeout        time.Duration
	MaxRetries     uint64
}

// Enabled reports whether the synthesis capability can be constructed.
func (c ElevenLabsConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadElevenLabsConfig() (ElevenLabsConfig, error) {
	timeout, err := parseOptionalIntEnv("ELEVENLABS_TIMEOUT")
	if err != nil {
		return ElevenLabsConfig{}, err
	}
	timeoutSeconds := 30
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	retries, err := parseOptionalIntEnv("ELEVENLABS_MAX_RETRIES")
	if err != nil {
		return ElevenLabsConfig{}, err
	}
	maxRetries := uint64(2)
	if retries != nil && *retries >= 0 {
		maxRetries = uint64(*retries)
	}

	return ElevenLabsConfig{
		APIKey:         strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY")),
		OutputFormat:   getEnvOrDefault("ELEVENLABS_OUTPUT_FORMAT", "mp3_44100_128"),
		DefaultVoiceID: getEnvOrDefault("ELEVENLABS_DEFAULT_VOICE", "EXAVITQu4vr4xnSDxMaL"),
		Timeout:        time.Duration(timeoutSeconds) * time.Second,
		MaxRetries:     maxRetries,
	}, nil
}

// AuthConfig holds token verification settings for the HTTP surface.
type AuthConfig struct {
	JWTSecret string
}

// Enabled reports whether bearer-token verification is configured.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")),
	}
}

// DataConfig points at the coaching context files loaded once at startup.
type DataConfig struct {
	DiaryPath     string
	MetricsPath   string
	DialoguesPath string
}

func loadDataConfig() DataConfig {
	return DataConfig{
		DiaryPath:     getEnvOrDefault("DATA_DIARY_PATH", "data/sleep_diary.csv"),
		MetricsPath:   getEnvOrDefault("DATA_METRICS_PATH", "data/sleep_metrics.json"),
		DialoguesPath: getEnvOrDefault("DATA_DIALOGUES_PATH", "data/coaching_dialogues.json"),
	}
}

// PipelineConfig bounds per-connection resource use in the voice pipeline.
type PipelineConfig struct {
	CallTimeout   time.Duration // applied to every external capability call
	MaxFrameBytes int64         // inbound audio frame size cap
}

func loadPipelineConfig() (PipelineConfig, error) {
	timeout, err := parseOptionalIntEnv("PIPELINE_CALL_TIMEOUT")
	if err != nil {
		return PipelineConfig{}, err
	}
	timeoutSeconds := 30
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	maxFrame, err := parseOptionalIntEnv("PIPELINE_MAX_FRAME_BYTES")
	if err != nil {
		return PipelineConfig{}, err
	}
	maxFrameBytes := int64(10 << 20)
	if maxFrame != nil && *maxFrame > 0 {
		maxFrameBytes = int64(*maxFrame)
	}

	return PipelineConfig{
		CallTimeout:   time.Duration(timeoutSeconds) * time.Second,
		MaxFrameBytes: maxFrameBytes,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
