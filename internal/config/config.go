// Package config loads DamageSnap settings from config.yml, .env and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"damagesnap/internal/observability"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Token store backends.
const (
	TokenBackendFile   = "file"
	TokenBackendRedis  = "redis"
	TokenBackendMemory = "memory"
)

// Geocoding providers.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGenAI      = "genai"
)

// Config holds the settings shared by the CLI and the geocoding proxy.
type Config struct {
	Env      string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	APIBaseURL string `mapstructure:"API_BASE_URL"`
	GeocodeURL string `mapstructure:"GEOCODE_URL"`

	TokenBackend string `mapstructure:"TOKEN_BACKEND"`
	TokenFile    string `mapstructure:"TOKEN_FILE"`
	RedisURL     string `mapstructure:"REDIS_URL"`

	Port              string        `mapstructure:"PORT"`
	AllowedOrigins    string        `mapstructure:"ALLOWED_ORIGINS"`
	GeocodeProvider   string        `mapstructure:"GEOCODE_PROVIDER"`
	OpenRouterAPIKey  string        `mapstructure:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string        `mapstructure:"OPENROUTER_BASE_URL"`
	OpenRouterModel   string        `mapstructure:"OPENROUTER_MODEL"`
	GenAIAPIKey       string        `mapstructure:"GENAI_API_KEY"`
	GenAIModel        string        `mapstructure:"GENAI_MODEL"`
	GeocodeCacheTTL   time.Duration `mapstructure:"GEOCODE_CACHE_TTL"`
	GeocodeRateLimit  int           `mapstructure:"GEOCODE_RATE_LIMIT"`

	AIStatusInterval time.Duration `mapstructure:"AI_STATUS_INTERVAL"`

	TracingEnabled  bool   `mapstructure:"TRACING_ENABLED"`
	TracingExporter string `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string `mapstructure:"OTLP_ENDPOINT"`
}

var defaults = map[string]any{
	"APP_ENV":             "development",
	"LOG_LEVEL":           "warn",
	"API_BASE_URL":        "https://db.xoperr.dev",
	"GEOCODE_URL":         "",
	"TOKEN_BACKEND":       TokenBackendFile,
	"TOKEN_FILE":          "",
	"REDIS_URL":           "",
	"PORT":                "8390",
	"ALLOWED_ORIGINS":     "http://localhost:3000,http://127.0.0.1:3000",
	"GEOCODE_PROVIDER":    ProviderOpenRouter,
	"OPENROUTER_API_KEY":  "",
	"OPENROUTER_BASE_URL": "https://openrouter.ai/api/v1",
	"OPENROUTER_MODEL":    "openrouter/horizon-alpha",
	"GENAI_API_KEY":       "",
	"GENAI_MODEL":         "gemini-2.5-flash",
	"GEOCODE_CACHE_TTL":   "24h",
	"GEOCODE_RATE_LIMIT":  30,
	"AI_STATUS_INTERVAL":  "10s",
	"TRACING_ENABLED":     false,
	"TRACING_EXPORTER":    "stdout",
	"OTLP_ENDPOINT":       "localhost:4318",
}

// LoadConfig reads .env (if present), config.yml (if present) and the
// environment, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.TokenBackend = strings.ToLower(strings.TrimSpace(c.TokenBackend))
	c.GeocodeProvider = strings.ToLower(strings.TrimSpace(c.GeocodeProvider))
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	c.GeocodeURL = strings.TrimRight(strings.TrimSpace(c.GeocodeURL), "/")
}

// IsProduction reports whether the production rules apply.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate checks the settings both binaries depend on.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	switch c.TokenBackend {
	case TokenBackendFile, TokenBackendMemory:
	case TokenBackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when TOKEN_BACKEND is redis")
		}
	default:
		return fmt.Errorf("unknown TOKEN_BACKEND %q", c.TokenBackend)
	}
	switch c.GeocodeProvider {
	case ProviderOpenRouter, ProviderGenAI:
	default:
		return fmt.Errorf("unknown GEOCODE_PROVIDER %q", c.GeocodeProvider)
	}
	if c.AIStatusInterval <= 0 {
		return errors.New("AI_STATUS_INTERVAL must be positive")
	}
	if c.GeocodeRateLimit < 0 {
		return errors.New("GEOCODE_RATE_LIMIT must not be negative")
	}
	return nil
}

// ValidateServer adds the rules that only the geocoding proxy needs.
func (c *Config) ValidateServer() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.IsProduction() {
		switch c.GeocodeProvider {
		case ProviderOpenRouter:
			if c.OpenRouterAPIKey == "" {
				return errors.New("OPENROUTER_API_KEY is required in production")
			}
		case ProviderGenAI:
			if c.GenAIAPIKey == "" {
				return errors.New("GENAI_API_KEY is required in production")
			}
		}
		if c.AllowedOrigins == "*" {
			observability.Logger.Warn("ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}
	return nil
}

// GeocodeEndpoint is the base URL geocoding requests go to.
func (c *Config) GeocodeEndpoint() string {
	if c.GeocodeURL != "" {
		return c.GeocodeURL
	}
	return c.APIBaseURL
}

// LogValue hides secrets when the config is logged.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("env", c.Env),
		slog.String("api_base_url", c.APIBaseURL),
		slog.String("token_backend", c.TokenBackend),
		slog.String("geocode_provider", c.GeocodeProvider),
		slog.Bool("openrouter_key_set", c.OpenRouterAPIKey != ""),
		slog.Bool("genai_key_set", c.GenAIAPIKey != ""),
	)
}
