// Package toast carries user-facing notifications: every outcome a screen
// reports, success or failure, is a Toast.
package toast

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Variant selects how a toast is presented.
type Variant int

const (
	Default Variant = iota
	Destructive
)

// Toast is one notification.
type Toast struct {
	Title       string
	Description string
	Variant     Variant
}

// Success builds a default toast.
func Success(title, description string) Toast {
	return Toast{Title: title, Description: description}
}

// Failure builds a destructive toast. An empty description becomes the
// generic fallback message.
func Failure(title, description string) Toast {
	if description == "" {
		description = "An unknown error occurred."
	}
	return Toast{Title: title, Description: description, Variant: Destructive}
}

// Notifier shows toasts.
type Notifier interface {
	Notify(t Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Toast)

func (f NotifierFunc) Notify(t Toast) { f(t) }

// Discard drops every toast.
var Discard Notifier = NotifierFunc(func(Toast) {})

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10b981")).
			Bold(true)
	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef4444")).
			Bold(true)
	descriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#d1d5db"))
)

// Terminal writes toasts as styled lines.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminal returns a Terminal writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (n *Terminal) Notify(t Toast) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintln(n.w, Render(t))
}

// Render formats a toast for a terminal.
func Render(t Toast) string {
	mark, style := "✔", successStyle
	if t.Variant == Destructive {
		mark, style = "✖", failureStyle
	}
	line := style.Render(mark + " " + t.Title)
	if t.Description != "" {
		line += " " + descriptionStyle.Render(t.Description)
	}
	return line
}

// Recorder keeps every toast it receives.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(t Toast) {
	r.mu.Lock()
	r.toasts = append(r.toasts, t)
	r.mu.Unlock()
}

// Toasts returns a copy of the recorded toasts.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Last returns the most recent toast.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}
