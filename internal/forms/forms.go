// Package forms implements the input forms of the DamageSnap screens. A form
// holds raw user input, validates it minimally, submits it through the API
// client, reports the outcome as a toast and resets itself on success.
package forms

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"damagesnap/internal/toast"
)

// ErrValidation is matched by every client-side validation failure.
var ErrValidation = errors.New("validation failed")

// InputError is a validation failure shown to the user before any network
// call is made.
type InputError struct {
	Title   string
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Is(target error) bool {
	return target == ErrValidation
}

// Toast returns the notification for the failure.
func (e *InputError) Toast() toast.Toast {
	return toast.Failure(e.Title, e.Message)
}

func invalid(title, msg string) *InputError {
	return &InputError{Title: title, Message: msg}
}

func notify(n toast.Notifier, t toast.Toast) {
	if n != nil {
		n.Notify(t)
	}
}

// reject reports a validation failure to the user and returns it.
func reject(n toast.Notifier, err error) error {
	var inErr *InputError
	if errors.As(err, &inErr) {
		notify(n, inErr.Toast())
	} else {
		notify(n, toast.Failure("Error", err.Error()))
	}
	return err
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// parseCoordinate parses a latitude or longitude typed by the user.
func parseCoordinate(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseOptionalInt parses an optional whole number. Blank input yields def.
func parseOptionalInt(s string, def int) (int, bool) {
	if blank(s) {
		return def, true
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseOptionalFloat parses an optional number. Blank input yields def.
func parseOptionalFloat(s string, def float64) (float64, bool) {
	if blank(s) {
		return def, true
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
