package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	PokeAPI PokeAPIConfig `yaml:"pokeapi"`
	Auth    AuthConfig    `yaml:"auth"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	GRPCAddr  string `yaml:"grpc_addr"`
	ToastAddr string `yaml:"toast_addr"` // TCP toast stream; empty disables it
}

type PokeAPIConfig struct {
	BaseURL  string            `yaml:"base_url"`
	Timeout  time.Duration     `yaml:"timeout"`
	CacheTTL time.Duration     `yaml:"cache_ttl"` // 0 keeps entries forever
	Headers  map[string]string `yaml:"headers"`
}

type AuthConfig struct {
	JWTSecret    string        `yaml:"jwt_secret"`
	JWTIssuer    string        `yaml:"jwt_issuer"`
	JWTDuration  time.Duration `yaml:"jwt_duration"`
	DemoUsername string        `yaml:"demo_username"`
	DemoEmail    string        `yaml:"demo_email"`
	DemoPassword string        `yaml:"demo_password"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:      ":8080",
			GRPCAddr:  ":9090",
			ToastAddr: ":7070",
		},
		PokeAPI: PokeAPIConfig{
			BaseURL: "https://pokeapi.co/api/v2",
			Timeout: 12 * time.Second,
		},
		Auth: AuthConfig{
			// dev default (change for demo / production)
			JWTSecret:    "dev-secret-change-me",
			JWTIssuer:    "pokedex",
			JWTDuration:  time.Hour,
			DemoUsername: "nubi",
			DemoEmail:    "nubi@email.it",
			DemoPassword: "123",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig starts from DefaultConfig, overlays the YAML file at path (or
// POKEDEX_CONFIG when path is empty) and finally applies POKEDEX_* env vars.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("POKEDEX_CONFIG")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.PokeAPI.BaseURL = strings.TrimRight(cfg.PokeAPI.BaseURL, "/")
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Addr, "POKEDEX_ADDR")
	setString(&cfg.Server.GRPCAddr, "POKEDEX_GRPC_ADDR")
	setString(&cfg.Server.ToastAddr, "POKEDEX_TOAST_ADDR")
	setString(&cfg.PokeAPI.BaseURL, "POKEDEX_API_BASE")
	setString(&cfg.Auth.JWTSecret, "POKEDEX_JWT_SECRET")
	setString(&cfg.Auth.JWTIssuer, "POKEDEX_JWT_ISSUER")
	setString(&cfg.Auth.DemoEmail, "POKEDEX_DEMO_EMAIL")
	setString(&cfg.Auth.DemoPassword, "POKEDEX_DEMO_PASSWORD")
	setString(&cfg.Log.Level, "POKEDEX_LOG_LEVEL")

	if err := setDuration(&cfg.PokeAPI.Timeout, "POKEDEX_HTTP_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.PokeAPI.CacheTTL, "POKEDEX_CACHE_TTL"); err != nil {
		return err
	}

	if v := strings.TrimSpace(os.Getenv("POKEDEX_JWT_TTL_HOURS")); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return fmt.Errorf("POKEDEX_JWT_TTL_HOURS: invalid value %q", v)
		}
		cfg.Auth.JWTDuration = time.Duration(hours) * time.Hour
	}

	if v := strings.TrimSpace(os.Getenv("POKEDEX_LOG_PRETTY")); v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("POKEDEX_LOG_PRETTY: %w", err)
		}
		cfg.Log.Pretty = pretty
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
