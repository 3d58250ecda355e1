package feed

import (
	"time"
	"unicode/utf8"
)

// DefaultRecentLimit is how many entries the recent-activity digest shows.
const DefaultRecentLimit = 5

const titleLimit = 50

// Activity is one row of the recent-activity digest.
type Activity struct {
	Kind     Kind
	Label    string
	Title    string
	Location string
	Date     time.Time
}

// Recent builds the "what you might have missed" digest: the first n
// entities of each collection as the API returned them, then the newest n
// overall.
func Recent(items []Item, n int) []Activity {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	picked := make([]Item, 0, n*len(Kinds))
	for _, it := range items {
		if it.Seq < n {
			picked = append(picked, it)
		}
	}
	Sort(picked)
	if len(picked) > n {
		picked = picked[:n]
	}

	out := make([]Activity, 0, len(picked))
	for _, it := range picked {
		title := it.Title()
		if it.Kind == KindPost {
			title = truncate(title, titleLimit)
		}
		out = append(out, Activity{
			Kind:     it.Kind,
			Label:    it.Kind.Label(),
			Title:    title,
			Location: it.Location(),
			Date:     it.CreatedAt,
		})
	}
	return out
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
