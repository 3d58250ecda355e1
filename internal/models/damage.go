package models

// DamageReport is a user-submitted record of wildfire damage.
type DamageReport struct {
	ID           int64     `json:"id"`
	UserID       Ref       `json:"user_id"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	DamageScore  float64   `json:"damage_score"`
	Description  string    `json:"description"`
	CostEstimate float64   `json:"cost_estimate"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
}

// DamageReportCreate carries the multipart fields of a new damage report.
// Optional numeric fields are omitted from the form when nil.
type DamageReportCreate struct {
	UserID       string
	Latitude     float64
	Longitude    float64
	DamageScore  *int
	Description  string
	CostEstimate *float64
	Photo        *Upload
}

// Upload is a file attached to a multipart request.
type Upload struct {
	Filename string
	Data     []byte
}

// Coordinates is a WGS 84 position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodeRequest is the body accepted by the geocoding proxy.
type GeocodeRequest struct {
	LocationString string `json:"locationString"`
}
