package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"damagesnap/internal/auth"
	"damagesnap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingDoer records whether the transport was used.
type countingDoer struct {
	calls atomic.Int32
	next  Doer
	err   error
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls.Add(1)
	if d.err != nil {
		return nil, d.err
	}
	return d.next.Do(req)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *auth.MemoryStore, *countingDoer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := auth.NewMemoryStore()
	doer := &countingDoer{next: srv.Client()}
	return New(srv.URL, store, WithHTTPClient(doer)), store, doer
}

func TestAuthRequired_NoTokenFailsLocally(t *testing.T) {
	c, _, doer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})
	ctx := context.Background()

	checks := map[string]func() error{
		"me":          func() error { return c.CurrentUser(ctx).Err() },
		"create post": func() error { return c.CreatePost(ctx, models.PostCreate{Content: "hi"}).Err() },
		"like":        func() error { return c.LikePost(ctx, 1).Err() },
		"comment":     func() error { return c.AddComment(ctx, 1, models.CommentCreate{Content: "x"}).Err() },
		"help":        func() error { return c.CreateHelpRequest(ctx, models.HelpRequestCreate{}).Err() },
		"event":       func() error { return c.CreateEvent(ctx, models.VolunteerEventCreate{}).Err() },
		"join":        func() error { return c.JoinEvent(ctx, 3).Err() },
		"chat send":   func() error { return c.SendMessage(ctx, models.ChatMessage{Content: "x"}).Err() },
		"chat list":   func() error { return c.ListMessages(ctx, DefaultChatLimit).Err() },
	}
	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			err := check()
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
			assert.Equal(t, "Authentication token not found.", apiErr.Message)
			assert.True(t, apiErr.Unauthorized())
		})
	}
	assert.Zero(t, doer.calls.Load(), "no request may reach the transport")
}

func TestAuthRequired_SendsBearerToken(t *testing.T) {
	c, store, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = io.WriteString(w, `{"id": 7, "name": "Ada", "email": "ada@example.com"}`)
	})
	require.NoError(t, store.SetToken(context.Background(), "tok-1"))

	res := c.CurrentUser(context.Background())
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, models.Ref("7"), res.Data.ID)
	assert.Equal(t, "Ada", res.Data.Name)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestLogout_RestoresLocalFailure(t *testing.T) {
	c, store, doer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"message":"liked"}`)
	})
	ctx := context.Background()

	require.NoError(t, store.SetToken(ctx, "tok"))
	require.True(t, c.LikePost(ctx, 1).OK())
	assert.EqualValues(t, 1, doer.calls.Load())

	require.NoError(t, store.ClearToken(ctx))
	res := c.LikePost(ctx, 1)
	assert.False(t, res.OK())
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.EqualValues(t, 1, doer.calls.Load())
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "validation list",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":[{"loc":["body","email"],"msg":"field required","type":"value_error.missing"},{"loc":["body","password"],"msg":"too short","type":"value_error"}]}`,
			want:   "field required; too short",
		},
		{
			name:   "detail string",
			status: http.StatusBadRequest,
			body:   `{"detail":"Email already registered"}`,
			want:   "Email already registered",
		},
		{
			name:   "message",
			status: http.StatusInternalServerError,
			body:   `{"message":"database down"}`,
			want:   "database down",
		},
		{
			name:   "error field",
			status: http.StatusNotFound,
			body:   `{"error":"Location not found"}`,
			want:   "Location not found",
		},
		{
			name:   "empty detail list falls through",
			status: http.StatusBadRequest,
			body:   `{"detail":[],"message":"bad"}`,
			want:   "bad",
		},
		{
			name:   "not json",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			want:   "An unknown error occurred.",
		},
		{
			name:   "empty",
			status: http.StatusServiceUnavailable,
			body:   ``,
			want:   "An unknown error occurred.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			res := c.Register(context.Background(), models.UserCreate{Email: "a@b.c"})
			assert.False(t, res.OK())
			assert.Nil(t, res.Data)
			assert.Equal(t, tt.want, res.Error)
			assert.Equal(t, tt.status, res.StatusCode)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	doer := &countingDoer{err: errors.New("dial tcp: connection refused")}
	c := New("http://api.invalid", nil, WithHTTPClient(doer))

	res := c.ListHelpRequests(context.Background())
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Contains(t, res.Error, "connection refused")
}

func TestEmptySuccessBody(t *testing.T) {
	c, store, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, store.SetToken(context.Background(), "tok"))

	res := c.JoinEvent(context.Background(), 9)
	require.True(t, res.OK())
	require.NotNil(t, res.Data)
	assert.Equal(t, models.StatusMessage{}, *res.Data)
}

func TestListPosts_QueryAndDecode(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/posts", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[{"id":1,"content":"hello","author_id":"u-1","author_name":"Sam","created_at":"2025-08-01T10:00:00","likes_count":3}]`)
	})

	res := c.ListPosts(context.Background(), DefaultPostsLimit, DefaultPostsOffset)
	require.True(t, res.OK())
	posts := res.Value()
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Content)
	assert.Equal(t, 2025, posts[0].CreatedAt.Year())
	assert.Equal(t, 3, posts[0].LikesCount)
}

func TestCreateDamageReport_Multipart(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "/api/damage-report", r.URL.Path)
		assert.Equal(t, "u-9", r.FormValue("user_id"))
		assert.Equal(t, "34.05", r.FormValue("latitude"))
		assert.Equal(t, "-118.25", r.FormValue("longitude"))
		assert.Equal(t, "7", r.FormValue("damage_score"))
		assert.Equal(t, "12500.5", r.FormValue("cost_estimate"))
		assert.Equal(t, "roof gone", r.FormValue("description"))

		file, header, err := r.FormFile("photo")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		b, _ := io.ReadAll(file)
		assert.Equal(t, "house.jpg", header.Filename)
		assert.Equal(t, []byte("jpeg-bytes"), b)

		_, _ = io.WriteString(w, `{"id":11,"latitude":34.05,"longitude":-118.25,"damage_score":7}`)
	})

	score := 7
	cost := 12500.5
	res := c.CreateDamageReport(context.Background(), models.DamageReportCreate{
		UserID:       "u-9",
		Latitude:     34.05,
		Longitude:    -118.25,
		DamageScore:  &score,
		Description:  "roof gone",
		CostEstimate: &cost,
		Photo:        &models.Upload{Filename: "house.jpg", Data: []byte("jpeg-bytes")},
	})
	require.True(t, res.OK(), res.Error)
	assert.EqualValues(t, 11, res.Data.ID)
}

func TestCreateDamageReport_OmitsOptionalFields(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		_, hasScore := r.MultipartForm.Value["damage_score"]
		_, hasCost := r.MultipartForm.Value["cost_estimate"]
		_, hasDesc := r.MultipartForm.Value["description"]
		assert.False(t, hasScore)
		assert.False(t, hasCost)
		assert.False(t, hasDesc)
		assert.Empty(t, r.MultipartForm.File["photo"])
		_, _ = io.WriteString(w, `{"id":12}`)
	})

	res := c.CreateDamageReport(context.Background(), models.DamageReportCreate{UserID: "u", Latitude: 1, Longitude: 2})
	assert.True(t, res.OK(), res.Error)
}

func TestGeocode_UsesGeocodeURL(t *testing.T) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/geocode", r.URL.Path)
		_, _ = io.WriteString(w, `{"latitude":39.76,"longitude":-121.62}`)
	}))
	defer geo.Close()

	c := New("http://api.invalid", nil, WithGeocodeURL(geo.URL+"/"))
	res := c.Geocode(context.Background(), "Paradise, CA")
	require.True(t, res.OK(), res.Error)
	assert.InDelta(t, 39.76, res.Data.Latitude, 1e-9)
	assert.InDelta(t, -121.62, res.Data.Longitude, 1e-9)
}

func TestListDamageReports_Query(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0", r.URL.Query().Get("lat"))
		assert.Equal(t, "-1.5", r.URL.Query().Get("lon"))
		assert.Equal(t, "20000", r.URL.Query().Get("radius"))
		_, _ = io.WriteString(w, `[]`)
	})
	res := c.ListDamageReports(context.Background(), 0, -1.5, 20000)
	require.True(t, res.OK())
	assert.Empty(t, res.Value())
}
