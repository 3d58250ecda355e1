package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"damagesnap/internal/config"
	"damagesnap/internal/forms"
	"damagesnap/internal/toast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves a small slice of the DamageSnap API.
type fakeAPI struct {
	hits      atomic.Int64
	damageHit atomic.Int64
	failHelp  bool
	failAll   bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.hits.Add(1)
	w.Header().Set("Content-Type", "application/json")
	if f.failAll {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"detail":"database unavailable"}`)
		return
	}
	switch r.URL.Path {
	case "/api/auth/login":
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123", "token_type": "bearer"})
	case "/api/auth/me":
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Could not validate credentials"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 42, "name": "Rosa", "email": "rosa@example.com"})
	case "/api/posts":
		_, _ = io.WriteString(w, `[{"id":1,"content":"Shelter open at the high school","author_name":"Rosa","created_at":"2025-08-02T10:00:00Z"}]`)
	case "/api/damage-reports":
		_, _ = io.WriteString(w, `[]`)
	case "/api/damage-report":
		f.damageHit.Add(1)
		_, _ = io.WriteString(w, `{"id":9}`)
	case "/api/help-requests":
		if f.failHelp {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"detail":"help service down"}`)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	case "/api/volunteer-events":
		_, _ = io.WriteString(w, `[{"id":3,"title":"Debris cleanup","location":"Altadena","created_at":"2025-08-01T09:00:00Z"}]`)
	case "/api/analyze-damage":
		_, _ = io.WriteString(w, `{"success":true,"request_id":"req-7"}`)
	case "/api/community/leaderboard":
		_, _ = io.WriteString(w, `{"leaderboard":[{"id":1,"name":"Rosa","activity_score":12,"rank":1}],"total_users":1}`)
	case "/api/ai-server-status":
		_, _ = io.WriteString(w, `{"status":"error","error":"connection refused"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not Found"}`)
	}
}

// setup points the CLI at api and captures its output.
func setup(t *testing.T, api http.Handler) (*bytes.Buffer, *toast.Recorder) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	tokenFile := filepath.Join(t.TempDir(), "token.json")
	var out bytes.Buffer
	rec := &toast.Recorder{}

	prevOut, prevNotifier, prevLoad, prevOpts := stdout, notifier, loadConfig, clientOptions
	stdout, notifier = &out, rec
	clientOptions.LogOutput = io.Discard
	loadConfig = func() (*config.Config, error) {
		return &config.Config{
			Env:              "test",
			LogLevel:         "error",
			APIBaseURL:       srv.URL,
			TokenBackend:     config.TokenBackendFile,
			TokenFile:        tokenFile,
			GeocodeProvider:  config.ProviderOpenRouter,
			AIStatusInterval: time.Second,
		}, nil
	}
	t.Cleanup(func() {
		stdout, notifier, loadConfig, clientOptions = prevOut, prevNotifier, prevLoad, prevOpts
		rt = nil
	})
	return &out, rec
}

func execute(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func lastToast(t *testing.T, rec *toast.Recorder) toast.Toast {
	t.Helper()
	last, ok := rec.Last()
	require.True(t, ok, "expected a toast")
	return last
}

func TestSafetyNeedsNoConfig(t *testing.T) {
	out, _ := setup(t, http.NotFoundHandler())
	loadConfig = func() (*config.Config, error) { return nil, errors.New("no config") }

	require.NoError(t, execute("safety", "--width", "200"))
	assert.Contains(t, out.String(), "General Safety Precautions")
	assert.Contains(t, out.String(), "Reporting and Communication")
}

func TestAuthGatedCommandFailsLocally(t *testing.T) {
	api := &fakeAPI{}
	_, rec := setup(t, api)

	err := execute("posts", "create", "hello")
	require.Error(t, err)
	var rep *reportedError
	assert.ErrorAs(t, err, &rep)
	assert.Equal(t, int64(0), api.hits.Load())

	last := lastToast(t, rec)
	assert.Equal(t, toast.Destructive, last.Variant)
	assert.Equal(t, "Authentication token not found.", last.Description)
}

func TestLoginWhoamiLogout(t *testing.T) {
	api := &fakeAPI{}
	out, rec := setup(t, api)

	require.NoError(t, execute("login", "--email", "rosa@example.com", "--password", "pw"))
	assert.Equal(t, "Login Successful", lastToast(t, rec).Title)

	require.NoError(t, execute("whoami"))
	assert.Contains(t, out.String(), "Rosa")

	require.NoError(t, execute("logout"))
	hits := api.hits.Load()

	require.Error(t, execute("whoami"))
	assert.Equal(t, hits, api.hits.Load(), "whoami after logout must not reach the server")
}

func TestWhoamiLocalOpaqueToken(t *testing.T) {
	api := &fakeAPI{}
	out, _ := setup(t, api)

	require.NoError(t, execute("login", "--email", "rosa@example.com", "--password", "pw"))
	hits := api.hits.Load()
	require.NoError(t, execute("whoami", "--local"))
	whoamiLocal = false

	assert.Contains(t, out.String(), "opaque")
	assert.Equal(t, hits, api.hits.Load())
}

func TestFeedToleratesFailingSource(t *testing.T) {
	api := &fakeAPI{failHelp: true}
	out, rec := setup(t, api)

	require.NoError(t, execute("feed"))
	s := out.String()
	assert.Contains(t, s, "Shelter open at the high school")
	assert.Contains(t, s, "Debris cleanup")
	assert.Contains(t, s, "Could not load Help Request items: help service down")
	assert.Empty(t, rec.Toasts())
}

func TestRecentAllSourcesFail(t *testing.T) {
	_, rec := setup(t, &fakeAPI{failAll: true})

	require.NoError(t, execute("recent"))
	last := lastToast(t, rec)
	assert.Equal(t, "Error", last.Title)
	assert.Equal(t, "Failed to load recent activities.", last.Description)
}

func TestDamageReportRejectsBadCoordinates(t *testing.T) {
	api := &fakeAPI{}
	_, rec := setup(t, api)

	require.NoError(t, execute("login", "--email", "rosa@example.com", "--password", "pw"))
	err := execute("damage", "report", "--lat", "north", "--lon=-118.1")
	damageForm = forms.DamageReportForm{}

	require.Error(t, err)
	assert.Equal(t, int64(0), api.damageHit.Load())
	assert.Equal(t, "Latitude and Longitude must be valid numbers.", lastToast(t, rec).Description)
}

func TestLeaderboard(t *testing.T) {
	out, _ := setup(t, &fakeAPI{})

	require.NoError(t, execute("leaderboard"))
	assert.Contains(t, out.String(), "Rosa")
	assert.Contains(t, out.String(), "1 contributors")
}

func TestAIStatusOffline(t *testing.T) {
	out, _ := setup(t, &fakeAPI{})

	require.NoError(t, execute("ai", "status"))
	assert.Contains(t, out.String(), "Offline: connection refused")
}

func TestInvalidIDIsAnArgumentError(t *testing.T) {
	api := &fakeAPI{}
	setup(t, api)

	err := execute("events", "join", "abc")
	require.Error(t, err)
	var rep *reportedError
	assert.False(t, errors.As(err, &rep))
	assert.Equal(t, int64(0), api.hits.Load())
}

func writePNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "house.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return path
}

func TestDamageAnalyzeReportWithoutDetails(t *testing.T) {
	api := &fakeAPI{}
	_, rec := setup(t, api)
	t.Cleanup(func() { analyzeReport = false })

	require.NoError(t, execute("login", "--email", "rosa@example.com", "--password", "pw"))
	require.NoError(t, execute("damage", "analyze", writePNG(t), "--report"))

	last := lastToast(t, rec)
	assert.Equal(t, "No Report Filed", last.Title)
	assert.Equal(t, toast.Destructive, last.Variant)
	assert.Equal(t, int64(0), api.damageHit.Load())
}

func TestDefaultTimeoutIsUnbounded(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("timeout")
	require.NotNil(t, flag)
	assert.Equal(t, "0s", flag.DefValue)

	ctx, cancel := commandContext(rootCmd)
	defer cancel()
	_, ok := ctx.Deadline()
	assert.False(t, ok)
}
