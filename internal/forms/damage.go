package forms

import (
	"context"
	"strconv"

	"damagesnap/internal/api"
	"damagesnap/internal/media"
	"damagesnap/internal/models"
	"damagesnap/internal/toast"
)

// DamageReporter is the part of the API client the damage form uses.
type DamageReporter interface {
	CreateDamageReport(ctx context.Context, in models.DamageReportCreate) api.Result[models.DamageReport]
}

// DamageReportForm files a damage report. Fields hold raw user input;
// Validate turns them into the typed multipart payload.
type DamageReportForm struct {
	UserID       string
	Latitude     string
	Longitude    string
	DamageScore  string
	Description  string
	CostEstimate string
	Photo        *models.Upload
}

// DamageReportDraft pre-fills a DamageReportForm, e.g. from an AI analysis.
type DamageReportDraft struct {
	Latitude     *float64
	Longitude    *float64
	DamageScore  int
	Description  string
	CostEstimate float64
}

// NewDamageReportForm returns a form pre-filled from d. Missing coordinates
// stay blank and must be typed in before submitting.
func NewDamageReportForm(userID string, d DamageReportDraft) *DamageReportForm {
	f := &DamageReportForm{
		UserID:       userID,
		DamageScore:  strconv.Itoa(d.DamageScore),
		Description:  d.Description,
		CostEstimate: strconv.FormatFloat(d.CostEstimate, 'f', -1, 64),
	}
	if d.Latitude != nil {
		f.Latitude = strconv.FormatFloat(*d.Latitude, 'f', -1, 64)
	}
	if d.Longitude != nil {
		f.Longitude = strconv.FormatFloat(*d.Longitude, 'f', -1, 64)
	}
	return f
}

// Validate checks the input without touching the network.
func (f *DamageReportForm) Validate() (models.DamageReportCreate, error) {
	if blank(f.UserID) {
		return models.DamageReportCreate{}, invalid("Error", "You must be logged in to create a damage report.")
	}
	lat, okLat := parseCoordinate(f.Latitude)
	lon, okLon := parseCoordinate(f.Longitude)
	if !okLat || !okLon {
		return models.DamageReportCreate{}, invalid("Error", "Latitude and Longitude must be valid numbers.")
	}
	score, ok := parseOptionalInt(f.DamageScore, 0)
	if !ok {
		return models.DamageReportCreate{}, invalid("Error", "Damage score must be a whole number.")
	}
	cost, ok := parseOptionalFloat(f.CostEstimate, 0)
	if !ok {
		return models.DamageReportCreate{}, invalid("Error", "Cost estimate must be a number.")
	}
	if f.Photo != nil {
		if _, err := media.Validate(*f.Photo); err != nil {
			return models.DamageReportCreate{}, invalid("Error", err.Error())
		}
	}

	return models.DamageReportCreate{
		UserID:       f.UserID,
		Latitude:     lat,
		Longitude:    lon,
		DamageScore:  &score,
		Description:  f.Description,
		CostEstimate: &cost,
		Photo:        f.Photo,
	}, nil
}

// Submit validates and files the report.
func (f *DamageReportForm) Submit(ctx context.Context, c DamageReporter, n toast.Notifier) (*models.DamageReport, error) {
	in, err := f.Validate()
	if err != nil {
		return nil, reject(n, err)
	}
	res := c.CreateDamageReport(ctx, in)
	if !res.OK() {
		notify(n, toast.Failure("Damage Report Failed", res.Error))
		return nil, res.Err()
	}
	notify(n, toast.Success("Damage Report Created", "Your damage report has been submitted successfully!"))
	f.Reset()
	return res.Data, nil
}

// Reset clears every field except the signed-in user.
func (f *DamageReportForm) Reset() {
	*f = DamageReportForm{UserID: f.UserID, DamageScore: "0", CostEstimate: "0"}
}
