package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"damagesnap/internal/config"
	"damagesnap/internal/geocode"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:              "test",
		Port:             "0",
		AllowedOrigins:   "http://localhost:3000",
		GeocodeRateLimit: 1,
		GeocodeCacheTTL:  time.Hour,
	}
}

func paradise(context.Context, string) (string, error) {
	return `{"latitude": 39.7596, "longitude": -121.6219}`, nil
}

func newTestServer(t *testing.T, cfg *config.Config, rdb *redis.Client) *Server {
	t.Helper()
	svc := geocode.NewService(geocode.CompleterFunc(paradise))
	return NewServer(cfg, rdb, svc)
}

func do(t *testing.T, s *Server, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func geocodeRequest(loc string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/geocode", strings.NewReader(`{"locationString":"`+loc+`"}`))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "ok", got["status"])
	assert.Equal(t, "disabled", got["redis"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestHealth_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := newTestServer(t, testConfig(), rdb)

	_, body := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Contains(t, string(body), `"redis":"ok"`)
}

func TestGeocodeRoute(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	resp, body := do(t, s, geocodeRequest("Paradise, CA"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"latitude":39.7596,"longitude":-121.6219}`, string(body))
}

func TestGeocodeRoute_RateLimitedInProduction(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := testConfig()
	cfg.Env = "production"
	s := newTestServer(t, cfg, rdb)

	resp, _ := do(t, s, geocodeRequest("a"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, s, geocodeRequest("b"))
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/geocode", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, _ := do(t, s, req)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	do(t, s, geocodeRequest("Paradise"))

	resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "damagesnap_geocode_requests_total")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), `"error"`)
}
