package models

// RecoveryLocation is a site requesting volunteer restoration effort.
type RecoveryLocation struct {
	ID               int64     `json:"id"`
	UserID           Ref       `json:"user_id"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	VolunteersNeeded int       `json:"volunteers_needed"`
	PhotoURL         *string   `json:"photo_url,omitempty"`
	CreatedAt        Timestamp `json:"created_at"`
}

// RecoveryLocationCreate carries the multipart fields of a new recovery
// location.
type RecoveryLocationCreate struct {
	UserID           string
	Latitude         float64
	Longitude        float64
	Title            string
	Description      string
	VolunteersNeeded *int
	Photo            *Upload
}

// VolunteerRequest registers a user for a recovery location.
type VolunteerRequest struct {
	LocationID int64  `json:"location_id"`
	UserID     string `json:"user_id"`
	Message    string `json:"message,omitempty"`
}

// Volunteer is a registration at a recovery location.
type Volunteer struct {
	ID         int64     `json:"id"`
	LocationID int64     `json:"location_id"`
	UserID     Ref       `json:"user_id"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  Timestamp `json:"created_at"`
}
