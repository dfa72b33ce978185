package config

import (
	"strings"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("SESSION_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("expected default model, got %q", cfg.Gemini.Model)
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("expected default redis port, got %d", cfg.Redis.Port)
	}
	if cfg.Session.Dir != "data/sessions" {
		t.Errorf("expected default session dir, got %q", cfg.Session.Dir)
	}
	if !cfg.OpenAI.EnableFallback {
		t.Error("expected OpenAI fallback enabled by default")
	}
}

func TestLoadFailsWithoutGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when GEMINI_API_KEY is missing")
	} else if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("expected error to name the missing key, got %v", err)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("OPENAI_ENABLE_FALLBACK", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr override, got %q", cfg.Server.Addr)
	}
	if cfg.Redis.Port != 6380 {
		t.Errorf("expected redis port override, got %d", cfg.Redis.Port)
	}
	if cfg.OpenAI.EnableFallback {
		t.Error("expected OpenAI fallback disabled")
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Server.AllowedOrigins) != len(want) {
		t.Fatalf("expected %d origins, got %v", len(want), cfg.Server.AllowedOrigins)
	}
	for i, origin := range want {
		if cfg.Server.AllowedOrigins[i] != origin {
			t.Errorf("expected origin %q at %d, got %q", origin, i, cfg.Server.AllowedOrigins[i])
		}
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("REDIS_PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("expected default port for unparseable value, got %d", cfg.Redis.Port)
	}
}
