package ui

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"damagesnap/internal/feed"
)

// Feed writes the combined community feed.
func Feed(w io.Writer, res feed.Result) {
	Title(w, "Community Feed", "Latest updates from the community")
	for _, k := range sortedKinds(res.Errors) {
		fmt.Fprintln(w, Muted(fmt.Sprintf("Could not load %s items: %s", k.Label(), res.Errors[k])))
	}
	if len(res.Items) == 0 {
		Empty(w, "No activity yet.")
		return
	}
	for _, it := range res.Items {
		FeedItem(w, it)
	}
}

func sortedKinds(errs map[feed.Kind]string) []feed.Kind {
	kinds := make([]feed.Kind, 0, len(errs))
	for k := range errs {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// FeedItem writes one feed entry as a card.
func FeedItem(w io.Writer, it feed.Item) {
	heading := fmt.Sprintf("#%d %s", it.ID, DateTime(it.CreatedAt))
	switch {
	case it.Post != nil:
		p := it.Post
		Card(w, it.Kind.Label(), heading,
			p.Content,
			Field("By", p.AuthorName),
			Field("Location", it.Location()),
			Field("Tags", strings.Join(p.Tags, ", ")),
			Field("Likes", strconv.Itoa(p.LikesCount)),
		)
	case it.DamageReport != nil:
		d := it.DamageReport
		Card(w, it.Kind.Label(), heading,
			it.Title(),
			Field("Location", it.Location()),
			Field("Damage score", strconv.FormatFloat(d.DamageScore, 'f', -1, 64)),
			Field("Estimated cost", fmt.Sprintf("$%.2f", d.CostEstimate)),
		)
	case it.HelpRequest != nil:
		h := it.HelpRequest
		Card(w, it.Kind.Label(), heading,
			labelStyle.Render(h.Title),
			h.Description,
			Field("Location", h.Location),
			Field("Funding", fmt.Sprintf("$%.2f of $%.2f", h.CurrentFunding, h.FundingGoal)),
			Field("Urgency", h.Urgency),
		)
	case it.VolunteerEvent != nil:
		e := it.VolunteerEvent
		Card(w, it.Kind.Label(), heading,
			labelStyle.Render(e.Title),
			e.Description,
			Field("Location", e.Location),
			Field("When", fmt.Sprintf("%s %s-%s", e.Date, e.StartTime, e.EndTime)),
			Field("Volunteers", fmt.Sprintf("%d/%d", e.CurrentVolunteers, e.MaxVolunteers)),
		)
	}
}

// Recent writes the recent-activity digest.
func Recent(w io.Writer, rows []feed.Activity) {
	Title(w, "What You Might Have Missed", "Recent activities from the community")
	if len(rows) == 0 {
		Empty(w, "No recent activities to display.")
		return
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		loc := r.Location
		if loc == "" {
			loc = "N/A"
		}
		cells = append(cells, []string{r.Label, r.Title, loc, Date(r.Date)})
	}
	Table(w, []string{"Type", "Description", "Location", "Date"}, cells)
}
