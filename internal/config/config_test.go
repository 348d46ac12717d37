package config

import "testing"

func TestLoadServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %s", cfg.Addr)
	}
}

func TestLoadServerConfigExplicitAddr(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
}

func TestLoadServerConfigRejectsWhitespace(t *testing.T) {
	t.Setenv("PORT", "80 80")

	if _, err := loadServerConfig(); err == nil {
		t.Fatal("expected error for whitespace in PORT")
	}
}

func TestOpenAIConfigEnabled(t *testing.T) {
	if (OpenAIConfig{}).Enabled() {
		t.Fatal("expected disabled without API key")
	}
	if !(OpenAIConfig{APIKey: "sk-test"}).Enabled() {
		t.Fatal("expected enabled with API key")
	}
}

func TestLoadElevenLabsConfigDefaults(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "el-test")
	t.Setenv("ELEVENLABS_TIMEOUT", "")
	t.Setenv("ELEVENLABS_OUTPUT_FORMAT", "")
	t.Setenv("ELEVENLABS_DEFAULT_VOICE", "")
	t.Setenv("ELEVENLABS_MAX_RETRIES", "")

	cfg, err := loadElevenLabsConfig()
	if err != nil {
		t.Fatalf("loadElevenLabsConfig err: %v", err)
	}
	if cfg.OutputFormat != "mp3_44100_128" {
		t.Fatalf("unexpected output format: %s", cfg.OutputFormat)
	}
	if cfg.DefaultVoiceID != "EXAVITQu4vr4xnSDxMaL" {
		t.Fatalf("unexpected default voice: %s", cfg.DefaultVoiceID)
	}
	if cfg.MaxRetries != 2 {
		t.Fatalf("unexpected max retries: %d", cfg.MaxRetries)
	}
}

func TestParseOptionalIntEnvInvalid(t *testing.T) {
	t.Setenv("OPENAI_TIMEOUT", "not-a-number")

	if _, err := loadOpenAIConfig(); err == nil {
		t.Fatal("expected error for invalid OPENAI_TIMEOUT")
	}
}
