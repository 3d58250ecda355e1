// Package bootstrap builds the runtime dependencies of both binaries from
// the loaded configuration.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"damagesnap/internal/api"
	"damagesnap/internal/auth"
	"damagesnap/internal/cache"
	"damagesnap/internal/config"
	"damagesnap/internal/geocode"
	"damagesnap/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Client is everything a CLI command needs.
type Client struct {
	Config *config.Config
	Logger *slog.Logger
	Tokens auth.Store
	API    *api.Client
	redis  *redis.Client
}

// Close releases the Redis connection, if any.
func (c *Client) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

// ClientOptions override parts of the runtime, mainly for tests.
type ClientOptions struct {
	LogOutput  io.Writer
	HTTPClient api.Doer
}

// InitClient sets up logging, the token store and the API client.
func InitClient(ctx context.Context, cfg *config.Config, opts ClientOptions) (*Client, error) {
	logger := observability.Init(observability.LogConfig{Env: cfg.Env, Level: cfg.LogLevel, Out: opts.LogOutput})

	rt := &Client{Config: cfg, Logger: logger}

	store, rdb, err := NewTokenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rt.Tokens, rt.redis = store, rdb

	httpClient := opts.HTTPClient
	if httpClient == nil {
		// Analysis can run for minutes. The per-command --timeout bounds it.
		httpClient = &http.Client{}
	}
	rt.API = api.New(cfg.APIBaseURL, store,
		api.WithHTTPClient(httpClient),
		api.WithLogger(logger),
		api.WithGeocodeURL(cfg.GeocodeEndpoint()),
	)
	return rt, nil
}

// NewTokenStore opens the configured token backend. The Redis client is
// returned so the caller can close it.
func NewTokenStore(ctx context.Context, cfg *config.Config) (auth.Store, *redis.Client, error) {
	switch cfg.TokenBackend {
	case config.TokenBackendMemory:
		return auth.NewMemoryStore(), nil, nil
	case config.TokenBackendRedis:
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("token store: %w", err)
		}
		return auth.NewRedisStore(rdb, cfg.Env), rdb, nil
	default:
		path := cfg.TokenFile
		if path == "" {
			p, err := auth.DefaultTokenPath()
			if err != nil {
				return nil, nil, fmt.Errorf("token store: %w", err)
			}
			path = p
		}
		return auth.NewFileStore(path), nil, nil
	}
}

// NewCompleter returns the language model client for the configured provider.
func NewCompleter(ctx context.Context, cfg *config.Config) (geocode.Completer, error) {
	switch cfg.GeocodeProvider {
	case config.ProviderGenAI:
		return geocode.NewGenAICompleter(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
	default:
		return geocode.NewOpenRouterCompleter(geocode.OpenRouterConfig{
			APIKey:  cfg.OpenRouterAPIKey,
			BaseURL: cfg.OpenRouterBaseURL,
			Model:   cfg.OpenRouterModel,
		}), nil
	}
}

// Geocoder is the runtime of the geocoding proxy.
type Geocoder struct {
	Service       *geocode.Service
	Redis         *redis.Client
	ShutdownTrace func(context.Context) error
}

// TracingConfig maps the proxy's tracing settings. Stdout spans go to out.
func TracingConfig(cfg *config.Config, out io.Writer) observability.TracingConfig {
	return observability.TracingConfig{
		ServiceName:  "damagesnap-geocoder",
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		Out:          out,
	}
}

// InitGeocoder sets up logging, tracing, Redis and the geocoding service.
// Redis is optional: without it answers are not cached.
func InitGeocoder(ctx context.Context, cfg *config.Config) (*Geocoder, error) {
	logger := observability.Init(observability.LogConfig{Env: cfg.Env, Level: cfg.LogLevel})

	shutdown, err := observability.InitTracing(ctx, TracingConfig(cfg, nil))
	if err != nil {
		return nil, err
	}

	completer, err := NewCompleter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rdb := cache.InitRedis(ctx, cfg.RedisURL)
	svc := geocode.NewService(completer,
		geocode.WithCache(cache.Cmdable(rdb), cfg.GeocodeCacheTTL),
		geocode.WithLogger(logger),
	)
	return &Geocoder{Service: svc, Redis: rdb, ShutdownTrace: shutdown}, nil
}
