// Package ui renders DamageSnap screens for a terminal.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f97316"))
	labelStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	badgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#ea580c")).Padding(0, 1)
	cardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#fdba74")).Padding(0, 1)

	headerCell = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f97316")).Padding(0, 1)
	bodyCell   = lipgloss.NewStyle().Padding(0, 1)
)

// Title writes a screen heading.
func Title(w io.Writer, title, subtitle string) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if subtitle != "" {
		fmt.Fprintln(w, mutedStyle.Render(subtitle))
	}
	fmt.Fprintln(w)
}

// Empty writes the placeholder for an empty list.
func Empty(w io.Writer, msg string) {
	fmt.Fprintln(w, mutedStyle.Render(msg))
}

// Card writes a bordered block of lines.
func Card(w io.Writer, badge, heading string, lines ...string) {
	var b strings.Builder
	if badge != "" {
		b.WriteString(badgeStyle.Render(badge))
		b.WriteString(" ")
	}
	b.WriteString(labelStyle.Render(heading))
	for _, l := range lines {
		if l == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(l)
	}
	fmt.Fprintln(w, cardStyle.Render(b.String()))
}

// Field formats a "Label: value" line, or "" when value is empty.
func Field(label, value string) string {
	if value == "" {
		return ""
	}
	return labelStyle.Render(label+":") + " " + value
}

// Muted renders secondary text.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// Table writes rows under headers.
func Table(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
	fmt.Fprintln(w, t.Render())
}

// Date formats a timestamp as a calendar date, or "Unknown date".
func Date(t time.Time) string {
	if t.IsZero() {
		return "Unknown date"
	}
	return t.Local().Format("Jan 2, 2006")
}

// DateTime formats a timestamp with its time of day.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "Unknown date"
	}
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}
