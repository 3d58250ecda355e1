package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"damagesnap/internal/models"

	"gopkg.in/yaml.v3"
)

func Posts(w io.Writer, posts []models.Post) {
	Title(w, "Community Posts", "")
	if len(posts) == 0 {
		Empty(w, "No posts yet. Be the first to share an update!")
		return
	}
	for _, p := range posts {
		loc := ""
		if p.Location != nil {
			loc = *p.Location
		}
		Card(w, "", fmt.Sprintf("#%d %s", p.ID, p.AuthorName),
			p.Content,
			Field("Location", loc),
			Field("Tags", strings.Join(p.Tags, ", ")),
			Muted(fmt.Sprintf("%d likes · %s", p.LikesCount, DateTime(p.CreatedAt.Time))),
		)
	}
}

func Comments(w io.Writer, postID int64, comments []models.Comment) {
	Title(w, fmt.Sprintf("Comments on post #%d", postID), "")
	if len(comments) == 0 {
		Empty(w, "No comments yet.")
		return
	}
	for _, c := range comments {
		fmt.Fprintf(w, "%s %s\n  %s\n", labelStyle.Render(c.AuthorName), Muted(DateTime(c.CreatedAt.Time)), c.Content)
	}
}

func HelpRequests(w io.Writer, reqs []models.HelpRequest) {
	Title(w, "Help Requests", "Community members who need assistance")
	if len(reqs) == 0 {
		Empty(w, "No help requests found.")
		return
	}
	rows := make([][]string, 0, len(reqs))
	for _, r := range reqs {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10), r.Title, r.Location, r.Category, r.Urgency,
			fmt.Sprintf("$%.2f / $%.2f", r.CurrentFunding, r.FundingGoal),
		})
	}
	Table(w, []string{"ID", "Title", "Location", "Category", "Urgency", "Funding"}, rows)
}

func Events(w io.Writer, events []models.VolunteerEvent) {
	Title(w, "Volunteer Events", "Join an organized recovery effort")
	if len(events) == 0 {
		Empty(w, "No volunteer events scheduled.")
		return
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10), e.Title, e.Location,
			fmt.Sprintf("%s %s-%s", e.Date, e.StartTime, e.EndTime),
			fmt.Sprintf("%d/%d", e.CurrentVolunteers, e.MaxVolunteers),
			e.Difficulty,
		})
	}
	Table(w, []string{"ID", "Title", "Location", "When", "Volunteers", "Difficulty"}, rows)
}

func DamageReports(w io.Writer, reports []models.DamageReport) {
	Title(w, "Damage Reports", "")
	if len(reports) == 0 {
		Empty(w, "No damage reports found in this area.")
		return
	}
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		desc := r.Description
		if desc == "" {
			desc = "N/A"
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			fmt.Sprintf("%g, %g", r.Latitude, r.Longitude),
			strconv.FormatFloat(r.DamageScore, 'f', -1, 64),
			fmt.Sprintf("$%.2f", r.CostEstimate),
			desc,
			Date(r.CreatedAt.Time),
		})
	}
	Table(w, []string{"ID", "Location", "Score", "Cost", "Description", "Reported"}, rows)
}

func RecoveryLocations(w io.Writer, locs []models.RecoveryLocation) {
	Title(w, "Recovery Locations", "Sites that need volunteers")
	if len(locs) == 0 {
		Empty(w, "No recovery locations found in this area.")
		return
	}
	for _, l := range locs {
		Card(w, "", fmt.Sprintf("#%d %s", l.ID, l.Title),
			l.Description,
			Field("Location", fmt.Sprintf("%g, %g", l.Latitude, l.Longitude)),
			Field("Volunteers needed", strconv.Itoa(l.VolunteersNeeded)),
		)
	}
}

func Volunteers(w io.Writer, locationID int64, vols []models.Volunteer) {
	Title(w, fmt.Sprintf("Volunteers for location #%d", locationID), "")
	if len(vols) == 0 {
		Empty(w, "No volunteers registered yet.")
		return
	}
	for _, v := range vols {
		line := fmt.Sprintf("%s %s", labelStyle.Render(v.UserID.String()), Muted(Date(v.CreatedAt.Time)))
		if v.Message != "" {
			line += "\n  " + v.Message
		}
		fmt.Fprintln(w, line)
	}
}

func Chat(w io.Writer, msgs []models.ChatEntry) {
	Title(w, "Community Chat", "")
	if len(msgs) == 0 {
		Empty(w, "No messages yet.")
		return
	}
	for _, m := range msgs {
		who := m.AuthorName
		if who == "" {
			who = m.UserID.String()
		}
		fmt.Fprintf(w, "%s %s %s\n", Muted(DateTime(m.CreatedAt.Time)), labelStyle.Render(who+":"), m.Content)
	}
}

func User(w io.Writer, u models.User) {
	Card(w, "", u.Name,
		Field("Email", u.Email),
		Field("ID", u.ID.String()),
		Field("Member since", Date(u.CreatedAt.Time)),
	)
}

// Analysis writes the result of an AI photo analysis.
func Analysis(w io.Writer, res *models.AnalysisResult, lat, lon *float64, description string) {
	if res == nil {
		Empty(w, "No analysis result.")
		return
	}
	Title(w, "AI Damage Analysis", "Request "+res.RequestID)
	if res.Error != nil && *res.Error != "" {
		Empty(w, "Error: "+*res.Error)
		return
	}
	d := res.Details()
	if d == nil {
		Empty(w, "No detailed analysis results returned.")
		return
	}
	lines := []string{
		Field("Damage score", strconv.FormatFloat(d.DamageScore, 'f', -1, 64)),
		Field("Severity", d.Severity),
		Field("Primary damage", d.PrimaryDamage),
		Field("Confidence", strconv.FormatFloat(d.Confidence, 'f', -1, 64)),
		Field("Estimated cost", d.EstimatedCost),
		Field("Report description", description),
	}
	if lat != nil && lon != nil {
		lines = append(lines, Field("Geocoded coordinates", fmt.Sprintf("Lat: %g, Lon: %g", *lat, *lon)))
	}
	if len(d.Recommendations) > 0 {
		lines = append(lines, labelStyle.Render("Recommendations:"))
		for _, r := range d.Recommendations {
			lines = append(lines, "  • "+r)
		}
	}
	Card(w, "Analysis Complete", fmt.Sprintf("processed in %.2fs", res.ProcessingTime), lines...)
}

// YAML writes an untyped JSON payload as YAML.
func YAML(w io.Writer, raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		_, werr := fmt.Fprintln(w, string(raw))
		return werr
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// JSON pretty-prints an untyped payload.
func JSON(w io.Writer, raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		_, werr := fmt.Fprintln(w, string(raw))
		return werr
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
