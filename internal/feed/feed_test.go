package feed

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"damagesnap/internal/api"
	"damagesnap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)

// randomTime draws from a narrow window so that collisions happen.
func randomTime(f *gofakeit.Faker) models.Timestamp {
	return models.At(epoch.Add(time.Duration(f.IntRange(0, 40)) * time.Hour))
}

func randomCollections(f *gofakeit.Faker) ([]models.Post, []models.DamageReport, []models.HelpRequest, []models.VolunteerEvent) {
	posts := make([]models.Post, f.IntRange(0, 25))
	for i := range posts {
		posts[i] = models.Post{ID: int64(i + 1), Content: f.Sentence(8), CreatedAt: randomTime(f)}
	}
	damage := make([]models.DamageReport, f.IntRange(0, 25))
	for i := range damage {
		damage[i] = models.DamageReport{ID: int64(i + 1), Latitude: f.Latitude(), Longitude: f.Longitude(), CreatedAt: randomTime(f)}
	}
	help := make([]models.HelpRequest, f.IntRange(0, 25))
	for i := range help {
		help[i] = models.HelpRequest{ID: int64(i + 1), Title: f.Sentence(3), Location: f.City(), CreatedAt: randomTime(f)}
	}
	events := make([]models.VolunteerEvent, f.IntRange(0, 25))
	for i := range events {
		events[i] = models.VolunteerEvent{ID: int64(i + 1), Title: f.Sentence(3), Location: f.City(), CreatedAt: randomTime(f)}
	}
	return posts, damage, help, events
}

func TestMerge_KeepsEveryItemAndOrdersNewestFirst(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		f := gofakeit.New(seed)
		posts, damage, help, events := randomCollections(f)

		items := Merge(posts, damage, help, events)

		require.Len(t, items, len(posts)+len(damage)+len(help)+len(events), "seed %d", seed)
		seen := make(map[Kind]map[int64]bool)
		for _, it := range items {
			if seen[it.Kind] == nil {
				seen[it.Kind] = make(map[int64]bool)
			}
			assert.False(t, seen[it.Kind][it.ID], "duplicate %s/%d", it.Kind, it.ID)
			seen[it.Kind][it.ID] = true
		}
		assert.Len(t, seen[KindPost], len(posts))
		assert.Len(t, seen[KindDamageReport], len(damage))
		assert.Len(t, seen[KindHelpRequest], len(help))
		assert.Len(t, seen[KindVolunteerEvent], len(events))

		for i := 1; i < len(items); i++ {
			assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt), "seed %d: order broken at %d", seed, i)
		}
	}
}

func TestMerge_TieBreak(t *testing.T) {
	ts := models.At(epoch)
	items := Merge(
		[]models.Post{{ID: 1, CreatedAt: ts}, {ID: 2, CreatedAt: ts}},
		[]models.DamageReport{{ID: 7, CreatedAt: ts}},
		nil,
		[]models.VolunteerEvent{{ID: 3, CreatedAt: ts}, {ID: 4, CreatedAt: models.At(epoch.Add(time.Minute))}},
	)

	got := make([]string, len(items))
	for i, it := range items {
		got[i] = fmt.Sprintf("%s:%d", it.Kind, it.ID)
	}
	assert.Equal(t, []string{
		"volunteer-event:4",
		"post:2",
		"post:1",
		"damage-report:7",
		"volunteer-event:3",
	}, got)
}

func TestMerge_ZeroTimestampSortsLast(t *testing.T) {
	items := Merge(
		[]models.Post{{ID: 1}},
		nil,
		[]models.HelpRequest{{ID: 2, CreatedAt: models.At(epoch)}},
		nil,
	)
	require.Len(t, items, 2)
	assert.Equal(t, KindHelpRequest, items[0].Kind)
	assert.Equal(t, KindPost, items[1].Kind)
}

type stubSource struct {
	calls atomic.Int32

	posts  api.Result[[]models.Post]
	damage api.Result[[]models.DamageReport]
	help   api.Result[[]models.HelpRequest]
	events api.Result[[]models.VolunteerEvent]

	gotQuery Query
}

func (s *stubSource) ListPosts(_ context.Context, limit, offset int) api.Result[[]models.Post] {
	s.calls.Add(1)
	s.gotQuery.PostsLimit, s.gotQuery.PostsOffset = limit, offset
	return s.posts
}

func (s *stubSource) ListDamageReports(_ context.Context, lat, lon, radius float64) api.Result[[]models.DamageReport] {
	s.calls.Add(1)
	s.gotQuery.Latitude, s.gotQuery.Longitude, s.gotQuery.Radius = lat, lon, radius
	return s.damage
}

func (s *stubSource) ListHelpRequests(context.Context) api.Result[[]models.HelpRequest] {
	s.calls.Add(1)
	return s.help
}

func (s *stubSource) ListEvents(context.Context) api.Result[[]models.VolunteerEvent] {
	s.calls.Add(1)
	return s.events
}

func data[T any](v T) api.Result[T] {
	return api.Result[T]{Data: &v, StatusCode: http.StatusOK}
}

func TestFetch_PartialFailure(t *testing.T) {
	src := &stubSource{
		posts:  data([]models.Post{{ID: 1, CreatedAt: models.At(epoch)}}),
		damage: api.Result[[]models.DamageReport]{Error: "boom", StatusCode: http.StatusInternalServerError},
		help:   data([]models.HelpRequest{{ID: 2, CreatedAt: models.At(epoch.Add(time.Hour))}}),
		events: data([]models.VolunteerEvent{}),
	}

	res := Fetch(context.Background(), src, DefaultQuery())

	assert.EqualValues(t, 4, src.calls.Load())
	assert.Equal(t, DefaultQuery(), src.gotQuery)
	assert.Equal(t, map[Kind]string{KindDamageReport: "boom"}, res.Errors)
	assert.False(t, res.AllFailed())
	require.Len(t, res.Items, 2)
	assert.Equal(t, KindHelpRequest, res.Items[0].Kind)
}

func TestFetch_AllFailed(t *testing.T) {
	src := &stubSource{
		posts:  api.Result[[]models.Post]{Error: "a", StatusCode: 500},
		damage: api.Result[[]models.DamageReport]{Error: "b", StatusCode: 500},
		help:   api.Result[[]models.HelpRequest]{Error: "c", StatusCode: 500},
		events: api.Result[[]models.VolunteerEvent]{Error: "d", StatusCode: 500},
	}
	res := Fetch(context.Background(), src, DefaultQuery())
	assert.True(t, res.AllFailed())
	assert.Empty(t, res.Items)
}

func TestRecent(t *testing.T) {
	long := "Smoke is clearing over the ridge and the road crews are back at work today"
	var posts []models.Post
	for i := 0; i < 7; i++ {
		posts = append(posts, models.Post{ID: int64(i + 1), Content: long, CreatedAt: models.At(epoch.Add(time.Duration(i) * time.Hour))})
	}
	damage := []models.DamageReport{{ID: 1, Latitude: 39.76, Longitude: -121.62, CreatedAt: models.At(epoch.Add(100 * time.Hour))}}

	rows := Recent(Merge(posts, damage, nil, nil), 0)

	require.Len(t, rows, DefaultRecentLimit)
	assert.Equal(t, "Damage Report", rows[0].Label)
	assert.Equal(t, "Damage at 39.76, -121.62", rows[0].Title)
	assert.Equal(t, "39.76, -121.62", rows[0].Location)

	assert.Equal(t, "Post", rows[1].Label)
	assert.Equal(t, []rune(long)[:50], []rune(rows[1].Title)[:50])
	assert.Equal(t, "...", rows[1].Title[len(rows[1].Title)-3:])
	assert.True(t, rows[1].Date.Equal(posts[4].CreatedAt.Time))
}

func TestRecent_CapsInResponseOrder(t *testing.T) {
	// The API returns these oldest first; only the first five count.
	var posts []models.Post
	for i := 0; i < 7; i++ {
		posts = append(posts, models.Post{ID: int64(i + 1), Content: "update", CreatedAt: models.At(epoch.Add(time.Duration(i) * time.Hour))})
	}

	rows := Recent(Merge(posts, nil, nil, nil), 0)

	require.Len(t, rows, DefaultRecentLimit)
	assert.True(t, rows[0].Date.Equal(posts[4].CreatedAt.Time))
	assert.True(t, rows[4].Date.Equal(posts[0].CreatedAt.Time))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 50))
	assert.Equal(t, "ééé...", truncate("éééé", 3))
}
