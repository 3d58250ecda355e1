// Package analysis runs the AI photo-analysis flow: an optional best-effort
// geocode of a free-text location, the photo analysis itself, and the
// conversion of the result into a pre-filled damage report.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"damagesnap/internal/api"
	"damagesnap/internal/forms"
	"damagesnap/internal/models"
	"damagesnap/internal/observability"
	"damagesnap/internal/toast"
)

// Geocoder resolves a free-text location.
type Geocoder interface {
	Geocode(ctx context.Context, location string) api.Result[models.Coordinates]
}

// Analyzer submits a photo for AI damage analysis.
type Analyzer interface {
	AnalyzeDamage(ctx context.Context, photo models.Upload) api.Result[models.AnalysisResult]
}

// Flow wires the analysis steps together.
type Flow struct {
	Geocoder Geocoder
	Analyzer Analyzer
	Notifier toast.Notifier
	Logger   *slog.Logger
}

// Request is the user's input to the flow.
type Request struct {
	Photo    *models.Upload
	Location string
}

// Outcome is a completed analysis. Latitude and Longitude are nil when no
// location was given or it could not be geocoded.
type Outcome struct {
	Result      models.AnalysisResult
	Latitude    *float64
	Longitude   *float64
	Description string
}

func (f *Flow) notify(t toast.Toast) {
	if f.Notifier != nil {
		f.Notifier.Notify(t)
	}
}

func (f *Flow) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return observability.Logger
}

// Run executes the flow. A location that cannot be geocoded never blocks
// the analysis.
func (f *Flow) Run(ctx context.Context, req Request) (*Outcome, error) {
	if req.Photo == nil {
		msg := "Please select a photo to analyze."
		f.notify(toast.Failure("Error", msg))
		return nil, &forms.InputError{Title: "Error", Message: msg}
	}

	out := &Outcome{}
	var suffix string
	if loc := strings.TrimSpace(req.Location); loc != "" && f.Geocoder != nil {
		geo := f.Geocoder.Geocode(ctx, loc)
		if geo.OK() && geo.Data != nil {
			lat, lon := geo.Data.Latitude, geo.Data.Longitude
			out.Latitude, out.Longitude = &lat, &lon
			suffix = fmt.Sprintf(" (Location: %s)", loc)
			f.notify(toast.Success("Location Geocoded", fmt.Sprintf("Found coordinates for %q.", loc)))
		} else {
			f.logger().DebugContext(ctx, "geocoding failed, continuing without location",
				slog.String("location", loc),
				slog.String("error", geo.Error),
				slog.Int("status", geo.StatusCode))
		}
	}

	res := f.Analyzer.AnalyzeDamage(ctx, *req.Photo)
	if !res.OK() {
		msg := res.Error
		if msg == "" {
			msg = "An unknown error occurred while queuing analysis."
		}
		f.notify(toast.Failure("Analysis Failed", msg))
		return nil, res.Err()
	}

	out.Result = res.Value()
	var primary string
	if d := out.Result.Details(); d != nil {
		primary = d.PrimaryDamage
	}
	out.Description = primary + suffix
	f.notify(toast.Success("Analysis Complete",
		fmt.Sprintf("AI analysis for request ID %s is ready.", out.Result.RequestID)))
	return out, nil
}

// ReportForm pre-fills a damage report from the analysis.
func (o *Outcome) ReportForm(userID string) *forms.DamageReportForm {
	draft := forms.DamageReportDraft{
		Latitude:    o.Latitude,
		Longitude:   o.Longitude,
		Description: o.Description,
	}
	if d := o.Result.Details(); d != nil {
		draft.DamageScore = int(math.Round(d.DamageScore))
		draft.CostEstimate = ParseCostEstimate(d.EstimatedCost)
	}
	return forms.NewDamageReportForm(userID, draft)
}

var costPattern = regexp.MustCompile(`\d[\d,]*`)

// ParseCostEstimate extracts the first amount of a free-text estimate such as
// "$5,000 - $10,000". It returns 0 when the text has no digits.
func ParseCostEstimate(s string) float64 {
	m := costPattern.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}
