package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"damagesnap/internal/models"
)

// Default search radii.
const (
	DefaultDamageRadius   = 10
	DefaultRecoveryRadius = 50
)

// AnalyzeDamage submits a photo for AI analysis and waits for the result.
func (c *Client) AnalyzeDamage(ctx context.Context, photo models.Upload) Result[models.AnalysisResult] {
	f := &form{}
	f.file("photo", photo.Filename, photo.Data)
	return do[models.AnalysisResult](ctx, c, call{op: "damage.analyze", method: http.MethodPost, endpoint: "/api/analyze-damage", body: f})
}

// CreateDamageReport files a damage report as multipart form data.
func (c *Client) CreateDamageReport(ctx context.Context, in models.DamageReportCreate) Result[models.DamageReport] {
	f := &form{}
	f.set("user_id", in.UserID)
	f.setFloat("latitude", in.Latitude)
	f.setFloat("longitude", in.Longitude)
	if in.DamageScore != nil {
		f.setInt("damage_score", *in.DamageScore)
	}
	if in.Description != "" {
		f.set("description", in.Description)
	}
	if in.CostEstimate != nil {
		f.setFloat("cost_estimate", *in.CostEstimate)
	}
	if in.Photo != nil {
		f.file("photo", in.Photo.Filename, in.Photo.Data)
	}
	return do[models.DamageReport](ctx, c, call{op: "damage.create", method: http.MethodPost, endpoint: "/api/damage-report", body: f})
}

// ListDamageReports returns reports within radius of (lat, lon).
func (c *Client) ListDamageReports(ctx context.Context, lat, lon, radius float64) Result[[]models.DamageReport] {
	return do[[]models.DamageReport](ctx, c, call{op: "damage.list", method: http.MethodGet, endpoint: "/api/damage-reports?" + geoQuery(lat, lon, radius)})
}

// CreateRecoveryLocation registers a site that needs volunteers.
func (c *Client) CreateRecoveryLocation(ctx context.Context, in models.RecoveryLocationCreate) Result[models.RecoveryLocation] {
	f := &form{}
	f.set("user_id", in.UserID)
	f.setFloat("latitude", in.Latitude)
	f.setFloat("longitude", in.Longitude)
	f.set("title", in.Title)
	if in.Description != "" {
		f.set("description", in.Description)
	}
	if in.VolunteersNeeded != nil {
		f.setInt("volunteers_needed", *in.VolunteersNeeded)
	}
	if in.Photo != nil {
		f.file("photo", in.Photo.Filename, in.Photo.Data)
	}
	return do[models.RecoveryLocation](ctx, c, call{op: "recovery.create", method: http.MethodPost, endpoint: "/api/recovery-location", body: f})
}

// ListRecoveryLocations returns sites within radius of (lat, lon).
func (c *Client) ListRecoveryLocations(ctx context.Context, lat, lon, radius float64) Result[[]models.RecoveryLocation] {
	return do[[]models.RecoveryLocation](ctx, c, call{op: "recovery.list", method: http.MethodGet, endpoint: "/api/recovery-locations?" + geoQuery(lat, lon, radius)})
}

// RegisterVolunteer signs a user up at a recovery location.
func (c *Client) RegisterVolunteer(ctx context.Context, in models.VolunteerRequest) Result[models.Volunteer] {
	return do[models.Volunteer](ctx, c, call{op: "recovery.volunteer", method: http.MethodPost, endpoint: "/api/volunteer", body: jsonBody{in}})
}

// ListVolunteers returns the volunteers registered at a location.
func (c *Client) ListVolunteers(ctx context.Context, locationID int64) Result[[]models.Volunteer] {
	return do[[]models.Volunteer](ctx, c, call{op: "recovery.volunteers", method: http.MethodGet, endpoint: fmt.Sprintf("/api/volunteers/%d", locationID)})
}

// Geocode resolves free text to coordinates through the geocoding proxy.
func (c *Client) Geocode(ctx context.Context, location string) Result[models.Coordinates] {
	return do[models.Coordinates](ctx, c, call{
		op:       "geocode",
		method:   http.MethodPost,
		base:     c.geocodeURL,
		endpoint: "/api/geocode",
		body:     jsonBody{models.GeocodeRequest{LocationString: location}},
	})
}

func geoQuery(lat, lon, radius float64) string {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))
	return q.Encode()
}
