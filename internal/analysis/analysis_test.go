package analysis

import (
	"context"
	"net/http"
	"testing"

	"damagesnap/internal/api"
	"damagesnap/internal/forms"
	"damagesnap/internal/models"
	"damagesnap/internal/toast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	calls int
	res   api.Result[models.Coordinates]
}

func (s *stubGeocoder) Geocode(context.Context, string) api.Result[models.Coordinates] {
	s.calls++
	return s.res
}

type stubAnalyzer struct {
	calls int
	res   api.Result[models.AnalysisResult]
}

func (s *stubAnalyzer) AnalyzeDamage(context.Context, models.Upload) api.Result[models.AnalysisResult] {
	s.calls++
	return s.res
}

func analyzed(primary, cost string, score float64) api.Result[models.AnalysisResult] {
	return api.Result[models.AnalysisResult]{
		StatusCode: http.StatusOK,
		Data: &models.AnalysisResult{
			Success:   true,
			RequestID: "req-42",
			AIAnalysis: &models.AIAnalysisResponse{Analysis: models.AIAnalysisDetails{
				PrimaryDamage: primary,
				EstimatedCost: cost,
				DamageScore:   score,
			}},
		},
	}
}

var photo = &models.Upload{Filename: "house.jpg", Data: []byte{0xff, 0xd8}}

func TestRun_GeocodedLocation(t *testing.T) {
	geo := &stubGeocoder{res: api.Result[models.Coordinates]{
		StatusCode: http.StatusOK,
		Data:       &models.Coordinates{Latitude: 39.7596, Longitude: -121.6219},
	}}
	an := &stubAnalyzer{res: analyzed("Roof collapse", "$5,000 - $10,000", 7.6)}
	rec := &toast.Recorder{}
	flow := &Flow{Geocoder: geo, Analyzer: an, Notifier: rec}

	out, err := flow.Run(context.Background(), Request{Photo: photo, Location: " Paradise, CA "})
	require.NoError(t, err)

	require.NotNil(t, out.Latitude)
	assert.InDelta(t, 39.7596, *out.Latitude, 1e-9)
	assert.Equal(t, "Roof collapse (Location: Paradise, CA)", out.Description)

	toasts := rec.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, "Location Geocoded", toasts[0].Title)
	assert.Equal(t, toast.Success("Analysis Complete", "AI analysis for request ID req-42 is ready."), toasts[1])

	form := out.ReportForm("u1")
	assert.Equal(t, "u1", form.UserID)
	assert.Equal(t, "39.7596", form.Latitude)
	assert.Equal(t, "-121.6219", form.Longitude)
	assert.Equal(t, "8", form.DamageScore)
	assert.Equal(t, "5000", form.CostEstimate)
	assert.Equal(t, "Roof collapse (Location: Paradise, CA)", form.Description)
}

func TestRun_UnknownLocationDoesNotBlockAnalysis(t *testing.T) {
	geo := &stubGeocoder{res: api.Result[models.Coordinates]{StatusCode: http.StatusNotFound, Error: "Location not found"}}
	an := &stubAnalyzer{res: analyzed("Scorched siding", "unknown", 3)}
	rec := &toast.Recorder{}
	flow := &Flow{Geocoder: geo, Analyzer: an, Notifier: rec}

	out, err := flow.Run(context.Background(), Request{Photo: photo, Location: "Atlantis"})
	require.NoError(t, err)

	assert.Equal(t, 1, geo.calls)
	assert.Equal(t, 1, an.calls)
	assert.Nil(t, out.Latitude)
	assert.Nil(t, out.Longitude)
	assert.Equal(t, "Scorched siding", out.Description)
	require.Len(t, rec.Toasts(), 1)
	assert.Equal(t, "Analysis Complete", rec.Toasts()[0].Title)

	form := out.ReportForm("u1")
	assert.Empty(t, form.Latitude)
	assert.Equal(t, "0", form.CostEstimate)
}

func TestRun_NoPhoto(t *testing.T) {
	an := &stubAnalyzer{}
	rec := &toast.Recorder{}
	_, err := (&Flow{Analyzer: an, Notifier: rec}).Run(context.Background(), Request{Location: "x"})
	assert.ErrorIs(t, err, forms.ErrValidation)
	assert.Zero(t, an.calls)
	last, _ := rec.Last()
	assert.Equal(t, "Please select a photo to analyze.", last.Description)
}

func TestRun_AnalysisFailure(t *testing.T) {
	an := &stubAnalyzer{res: api.Result[models.AnalysisResult]{StatusCode: http.StatusBadGateway, Error: "AI server offline"}}
	rec := &toast.Recorder{}
	_, err := (&Flow{Analyzer: an, Notifier: rec}).Run(context.Background(), Request{Photo: photo})

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	last, _ := rec.Last()
	assert.Equal(t, toast.Failure("Analysis Failed", "AI server offline"), last)
}

func TestRun_BlankLocationSkipsGeocode(t *testing.T) {
	geo := &stubGeocoder{}
	an := &stubAnalyzer{res: analyzed("Smoke damage", "", 1)}
	_, err := (&Flow{Geocoder: geo, Analyzer: an}).Run(context.Background(), Request{Photo: photo, Location: "   "})
	require.NoError(t, err)
	assert.Zero(t, geo.calls)
}

func TestParseCostEstimate(t *testing.T) {
	tests := map[string]float64{
		"$5,000 - $10,000": 5000,
		"about 1200 USD":   1200,
		"$750":             750,
		"unknown":          0,
		"":                 0,
		"1,234,567":        1234567,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseCostEstimate(in), in)
	}
}
