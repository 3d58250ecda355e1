// Package leaderboard orders and renders the community leaderboard.
package leaderboard

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"damagesnap/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Sort orders entries by activity score, highest first, then by rank.
func Sort(entries []models.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ActivityScore != entries[j].ActivityScore {
			return entries[i].ActivityScore > entries[j].ActivityScore
		}
		return entries[i].Rank < entries[j].Rank
	})
}

var headers = []string{"Rank", "User", "Posts", "Damage Reports", "Events Joined", "Locations", "Donated", "Score"}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f97316")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Rows returns the table cells in display order.
func Rows(entries []models.LeaderboardEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "N/A"
		}
		rows = append(rows, []string{
			strconv.Itoa(e.Rank),
			name,
			strconv.Itoa(e.PostsCount),
			strconv.Itoa(e.DamageReportsCount),
			strconv.Itoa(e.EventsJoinedCount),
			strconv.Itoa(e.RecoveryLocationsCount),
			fmt.Sprintf("$%.2f", e.TotalDonated),
			strconv.FormatFloat(e.ActivityScore, 'f', -1, 64),
		})
	}
	return rows
}

// Render sorts the leaderboard and writes it as a table.
func Render(w io.Writer, resp models.LeaderboardResponse) error {
	if len(resp.Leaderboard) == 0 {
		_, err := fmt.Fprintln(w, "No leaderboard data available yet.")
		return err
	}
	entries := append([]models.LeaderboardEntry(nil), resp.Leaderboard...)
	Sort(entries)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(Rows(entries)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintf(w, "%s\n%d contributors\n", t.Render(), resp.TotalUsers)
	return err
}
