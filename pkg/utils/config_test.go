package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("POKEDEX_CONFIG", "")
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PokeAPI.BaseURL != "https://pokeapi.co/api/v2" {
		t.Fatalf("unexpected base url %q", cfg.PokeAPI.BaseURL)
	}
	if cfg.Auth.JWTDuration != time.Hour {
		t.Fatalf("unexpected jwt duration %s", cfg.Auth.JWTDuration)
	}
	if cfg.Auth.DemoEmail != "nubi@email.it" {
		t.Fatalf("unexpected demo email %q", cfg.Auth.DemoEmail)
	}
	if cfg.Server.ToastAddr != ":7070" {
		t.Fatalf("unexpected toast addr %q", cfg.Server.ToastAddr)
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokedex.yaml")
	content := `
server:
  addr: ":7000"
pokeapi:
  base_url: "http://mirror.local/api/v2/"
  timeout: 3s
  headers:
    X-Client: pokedex
auth:
  jwt_issuer: from-file
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("POKEDEX_JWT_ISSUER", "from-env")
	t.Setenv("POKEDEX_JWT_TTL_HOURS", "6")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Fatalf("addr not read from file: %q", cfg.Server.Addr)
	}
	if cfg.PokeAPI.BaseURL != "http://mirror.local/api/v2" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.PokeAPI.BaseURL)
	}
	if cfg.PokeAPI.Timeout != 3*time.Second {
		t.Fatalf("timeout not read from file: %s", cfg.PokeAPI.Timeout)
	}
	if cfg.PokeAPI.Headers["X-Client"] != "pokedex" {
		t.Fatalf("headers not read from file: %v", cfg.PokeAPI.Headers)
	}
	if cfg.Auth.JWTIssuer != "from-env" {
		t.Fatalf("env should override file, got %q", cfg.Auth.JWTIssuer)
	}
	if cfg.Auth.JWTDuration != 6*time.Hour {
		t.Fatalf("ttl hours not applied: %s", cfg.Auth.JWTDuration)
	}
}

func TestLoadConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("POKEDEX_HTTP_TIMEOUT", "soon")
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for bad duration")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(LogConfig{Level: "warn"}, &buf)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected log output: %s", out)
	}
}
