package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRouterCompleter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}
		assert.Equal(t, DefaultOpenRouterModel, req.Model)
		assert.Zero(t, req.Temperature)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "user", req.Messages[0].Role)
			assert.Equal(t, "where?", req.Messages[0].Content)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"latitude\":1,\"longitude\":2}"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenRouterCompleter(OpenRouterConfig{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	text, err := c.Complete(context.Background(), "where?")
	require.NoError(t, err)
	assert.Equal(t, `{"latitude":1,"longitude":2}`, text)
}

func TestOpenRouterCompleter_Errors(t *testing.T) {
	_, err := NewOpenRouterCompleter(OpenRouterConfig{}).Complete(context.Background(), "x")
	assert.ErrorContains(t, err, "API key not configured")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	_, err = NewOpenRouterCompleter(OpenRouterConfig{APIKey: "k", BaseURL: srv.URL}).Complete(context.Background(), "x")
	assert.ErrorContains(t, err, "status 401")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer empty.Close()
	_, err = NewOpenRouterCompleter(OpenRouterConfig{APIKey: "k", BaseURL: empty.URL}).Complete(context.Background(), "x")
	assert.ErrorContains(t, err, "no completion returned")
}
