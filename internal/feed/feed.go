// Package feed aggregates the four community collections into one
// timestamp-ordered stream.
package feed

import (
	"context"
	"sort"
	"time"

	"damagesnap/internal/api"
	"damagesnap/internal/models"

	"golang.org/x/sync/errgroup"
)

// Kind tags an item with the collection it came from.
type Kind string

const (
	KindPost           Kind = "post"
	KindDamageReport   Kind = "damage-report"
	KindHelpRequest    Kind = "help-request"
	KindVolunteerEvent Kind = "volunteer-event"
)

// Kinds lists every kind in tie-break order.
var Kinds = []Kind{KindPost, KindDamageReport, KindHelpRequest, KindVolunteerEvent}

func (k Kind) order() int {
	for i, kind := range Kinds {
		if kind == k {
			return i
		}
	}
	return len(Kinds)
}

// Label is the human-readable name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindPost:
		return "Post"
	case KindDamageReport:
		return "Damage Report"
	case KindHelpRequest:
		return "Help Request"
	case KindVolunteerEvent:
		return "Volunteer Event"
	}
	return string(k)
}

// Item is one tagged feed entry. Exactly one of the entity pointers is set,
// matching Kind.
type Item struct {
	Kind      Kind
	ID        int64
	CreatedAt time.Time
	// Seq is the position of the entity in its collection's response.
	Seq int

	Post           *models.Post
	DamageReport   *models.DamageReport
	HelpRequest    *models.HelpRequest
	VolunteerEvent *models.VolunteerEvent
}

// Source is the part of the API client the feed reads from.
type Source interface {
	ListPosts(ctx context.Context, limit, offset int) api.Result[[]models.Post]
	ListDamageReports(ctx context.Context, lat, lon, radius float64) api.Result[[]models.DamageReport]
	ListHelpRequests(ctx context.Context) api.Result[[]models.HelpRequest]
	ListEvents(ctx context.Context) api.Result[[]models.VolunteerEvent]
}

// Query selects the slice of each collection to fetch.
type Query struct {
	PostsLimit  int
	PostsOffset int
	Latitude    float64
	Longitude   float64
	Radius      float64
}

// DefaultQuery fetches the first page of posts and every damage report
// within a radius wide enough to cover the globe from (0, 0).
func DefaultQuery() Query {
	return Query{
		PostsLimit:  api.DefaultPostsLimit,
		PostsOffset: api.DefaultPostsOffset,
		Radius:      20000,
	}
}

// Result is a fetched feed. Errors holds the message of every source that
// failed; items from the other sources are still present.
type Result struct {
	Items  []Item
	Errors map[Kind]string
}

// AllFailed reports whether no source returned data.
func (r Result) AllFailed() bool {
	return len(r.Errors) == len(Kinds)
}

// Fetch queries the four collections concurrently and merges whatever
// arrived. A failing source never cancels the others.
func Fetch(ctx context.Context, src Source, q Query) Result {
	var (
		posts  api.Result[[]models.Post]
		damage api.Result[[]models.DamageReport]
		help   api.Result[[]models.HelpRequest]
		events api.Result[[]models.VolunteerEvent]
	)

	var g errgroup.Group
	g.Go(func() error {
		posts = src.ListPosts(ctx, q.PostsLimit, q.PostsOffset)
		return nil
	})
	g.Go(func() error {
		damage = src.ListDamageReports(ctx, q.Latitude, q.Longitude, q.Radius)
		return nil
	})
	g.Go(func() error {
		help = src.ListHelpRequests(ctx)
		return nil
	})
	g.Go(func() error {
		events = src.ListEvents(ctx)
		return nil
	})
	_ = g.Wait()

	errs := make(map[Kind]string)
	record := func(k Kind, msg string) {
		if msg != "" {
			errs[k] = msg
		}
	}
	record(KindPost, posts.Error)
	record(KindDamageReport, damage.Error)
	record(KindHelpRequest, help.Error)
	record(KindVolunteerEvent, events.Error)

	return Result{
		Items:  Merge(posts.Value(), damage.Value(), help.Value(), events.Value()),
		Errors: errs,
	}
}

// Merge tags every entity with its kind and sorts the union newest first.
// Equal timestamps are ordered by kind, then by ID descending.
func Merge(posts []models.Post, damage []models.DamageReport, help []models.HelpRequest, events []models.VolunteerEvent) []Item {
	items := make([]Item, 0, len(posts)+len(damage)+len(help)+len(events))
	for i := range posts {
		p := &posts[i]
		items = append(items, Item{Kind: KindPost, ID: p.ID, CreatedAt: p.CreatedAt.Time, Seq: i, Post: p})
	}
	for i := range damage {
		d := &damage[i]
		items = append(items, Item{Kind: KindDamageReport, ID: d.ID, CreatedAt: d.CreatedAt.Time, Seq: i, DamageReport: d})
	}
	for i := range help {
		h := &help[i]
		items = append(items, Item{Kind: KindHelpRequest, ID: h.ID, CreatedAt: h.CreatedAt.Time, Seq: i, HelpRequest: h})
	}
	for i := range events {
		e := &events[i]
		items = append(items, Item{Kind: KindVolunteerEvent, ID: e.ID, CreatedAt: e.CreatedAt.Time, Seq: i, VolunteerEvent: e})
	}
	Sort(items)
	return items
}

// Sort orders items newest first with the deterministic tie-break.
func Sort(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return before(items[i], items[j])
	})
}

func before(a, b Item) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	if a.Kind != b.Kind {
		return a.Kind.order() < b.Kind.order()
	}
	return a.ID > b.ID
}
