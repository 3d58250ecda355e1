package forms

import (
	"context"

	"damagesnap/internal/api"
	"damagesnap/internal/media"
	"damagesnap/internal/models"
	"damagesnap/internal/toast"
)

// RecoveryClient is the part of the API client the recovery forms use.
type RecoveryClient interface {
	CreateRecoveryLocation(ctx context.Context, in models.RecoveryLocationCreate) api.Result[models.RecoveryLocation]
	RegisterVolunteer(ctx context.Context, in models.VolunteerRequest) api.Result[models.Volunteer]
}

// RecoveryLocationForm registers a site that needs volunteers.
type RecoveryLocationForm struct {
	UserID           string
	Latitude         string
	Longitude        string
	Title            string
	Description      string
	VolunteersNeeded string
	Photo            *models.Upload
}

func (f *RecoveryLocationForm) Validate() (models.RecoveryLocationCreate, error) {
	if blank(f.UserID) {
		return models.RecoveryLocationCreate{}, invalid("Error", "You must be logged in to create a recovery location.")
	}
	lat, okLat := parseCoordinate(f.Latitude)
	lon, okLon := parseCoordinate(f.Longitude)
	if !okLat || !okLon {
		return models.RecoveryLocationCreate{}, invalid("Input Error", "Latitude and Longitude must be valid numbers.")
	}
	if blank(f.Title) {
		return models.RecoveryLocationCreate{}, invalid("Input Error", "Title is required.")
	}

	in := models.RecoveryLocationCreate{
		UserID:      f.UserID,
		Latitude:    lat,
		Longitude:   lon,
		Title:       f.Title,
		Description: f.Description,
		Photo:       f.Photo,
	}
	if !blank(f.VolunteersNeeded) {
		v, ok := parseOptionalInt(f.VolunteersNeeded, 0)
		if !ok {
			return models.RecoveryLocationCreate{}, invalid("Input Error", "Volunteers needed must be a whole number.")
		}
		in.VolunteersNeeded = &v
	}
	if f.Photo != nil {
		if _, err := media.Validate(*f.Photo); err != nil {
			return models.RecoveryLocationCreate{}, invalid("Input Error", err.Error())
		}
	}
	return in, nil
}

func (f *RecoveryLocationForm) Submit(ctx context.Context, c RecoveryClient, n toast.Notifier) (*models.RecoveryLocation, error) {
	in, err := f.Validate()
	if err != nil {
		return nil, reject(n, err)
	}
	res := c.CreateRecoveryLocation(ctx, in)
	if !res.OK() {
		notify(n, toast.Failure("Creation Failed", res.Error))
		return nil, res.Err()
	}
	notify(n, toast.Success("Recovery Location Created", "The recovery location has been added."))
	f.Reset()
	return res.Data, nil
}

func (f *RecoveryLocationForm) Reset() {
	*f = RecoveryLocationForm{UserID: f.UserID}
}

// VolunteerForm signs the current user up at a recovery location.
type VolunteerForm struct {
	UserID     string
	LocationID int64
	Message    string
}

func (f *VolunteerForm) Submit(ctx context.Context, c RecoveryClient, n toast.Notifier) (*models.Volunteer, error) {
	if blank(f.UserID) {
		return nil, reject(n, invalid("Error", "You must be logged in to register as a volunteer."))
	}
	res := c.RegisterVolunteer(ctx, models.VolunteerRequest{LocationID: f.LocationID, UserID: f.UserID, Message: f.Message})
	if !res.OK() {
		notify(n, toast.Failure("Registration Failed", res.Error))
		return nil, res.Err()
	}
	notify(n, toast.Success("Volunteer Registered", "You have successfully registered for this location!"))
	f.Message = ""
	return res.Data, nil
}
