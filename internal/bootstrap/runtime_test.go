package bootstrap

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"damagesnap/internal/auth"
	"damagesnap/internal/config"
	"damagesnap/internal/geocode"
	"damagesnap/internal/observability"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *config.Config {
	return &config.Config{
		Env:              "test",
		APIBaseURL:       "http://api.local",
		TokenBackend:     config.TokenBackendMemory,
		GeocodeProvider:  config.ProviderOpenRouter,
		AIStatusInterval: time.Second,
	}
}

func TestNewTokenStore(t *testing.T) {
	ctx := context.Background()

	cfg := baseConfig()
	store, rdb, err := NewTokenStore(ctx, cfg)
	require.NoError(t, err)
	assert.Nil(t, rdb)
	assert.IsType(t, &auth.MemoryStore{}, store)

	cfg.TokenBackend = config.TokenBackendFile
	cfg.TokenFile = filepath.Join(t.TempDir(), "storage.json")
	store, _, err = NewTokenStore(ctx, cfg)
	require.NoError(t, err)
	fs, ok := store.(*auth.FileStore)
	require.True(t, ok)
	assert.Equal(t, cfg.TokenFile, fs.Path())

	mr := miniredis.RunT(t)
	cfg.TokenBackend = config.TokenBackendRedis
	cfg.RedisURL = mr.Addr()
	store, rdb, err = NewTokenStore(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, rdb)
	defer rdb.Close()
	require.NoError(t, store.SetToken(ctx, "tok"))
	assert.True(t, mr.Exists("damagesnap:test:damage_snap_auth_token"))
}

func TestNewTokenStore_RedisDown(t *testing.T) {
	cfg := baseConfig()
	cfg.TokenBackend = config.TokenBackendRedis
	cfg.RedisURL = "127.0.0.1:1"
	_, _, err := NewTokenStore(context.Background(), cfg)
	assert.Error(t, err)
}

func TestInitClient(t *testing.T) {
	cfg := baseConfig()
	cfg.GeocodeURL = "http://geo.local"
	rt, err := InitClient(context.Background(), cfg, ClientOptions{LogOutput: io.Discard})
	require.NoError(t, err)
	defer rt.Close()

	assert.Equal(t, "http://api.local", rt.API.BaseURL())
	assert.Same(t, rt.Tokens, rt.API.Tokens())
}

func TestNewCompleter(t *testing.T) {
	c, err := NewCompleter(context.Background(), baseConfig())
	require.NoError(t, err)
	assert.IsType(t, &geocode.OpenRouterCompleter{}, c)

	cfg := baseConfig()
	cfg.GeocodeProvider = config.ProviderGenAI
	_, err = NewCompleter(context.Background(), cfg)
	assert.ErrorContains(t, err, "API key is required")
}

func TestInitGeocoder_WithoutRedis(t *testing.T) {
	g, err := InitGeocoder(context.Background(), baseConfig())
	require.NoError(t, err)
	assert.Nil(t, g.Redis)
	assert.NotNil(t, g.Service)
	assert.NoError(t, g.ShutdownTrace(context.Background()))
}

func TestTracingConfig_ExportsGeocodeSpans(t *testing.T) {
	ctx := context.Background()
	cfg := baseConfig()
	cfg.TracingEnabled = true
	cfg.TracingExporter = observability.ExporterStdout

	var out bytes.Buffer
	tc := TracingConfig(cfg, &out)
	assert.Equal(t, "damagesnap-geocoder", tc.ServiceName)
	assert.Equal(t, "test", tc.Environment)

	shutdown, err := observability.InitTracing(ctx, tc)
	require.NoError(t, err)

	svc := geocode.NewService(geocode.CompleterFunc(func(context.Context, string) (string, error) {
		return `{"latitude": 39.7596, "longitude": -121.6219}`, nil
	}))
	_, err = svc.Geocode(ctx, "Paradise, CA")
	require.NoError(t, err)
	require.NoError(t, shutdown(ctx))

	assert.Contains(t, out.String(), "geocode.resolve")
	assert.Contains(t, out.String(), "damagesnap-geocoder")
	assert.Contains(t, out.String(), "Paradise, CA")
}

func TestTracingConfig_UnknownExporter(t *testing.T) {
	cfg := baseConfig()
	cfg.TracingEnabled = true
	cfg.TracingExporter = "zipkin"
	_, err := observability.InitTracing(context.Background(), TracingConfig(cfg, io.Discard))
	assert.ErrorContains(t, err, "unknown tracing exporter")
}
