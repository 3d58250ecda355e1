package models

// VolunteerEvent is an organized community activity.
type VolunteerEvent struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Location          string    `json:"location"`
	Description       string    `json:"description"`
	Date              string    `json:"date"`
	StartTime         string    `json:"startTime"`
	EndTime           string    `json:"endTime"`
	MaxVolunteers     int       `json:"maxVolunteers"`
	CurrentVolunteers int       `json:"currentVolunteers"`
	Category          string    `json:"category"`
	Difficulty        string    `json:"difficulty"`
	CreatedAt         Timestamp `json:"created_at"`
}

// VolunteerEventCreate is the payload for a new volunteer event.
type VolunteerEventCreate struct {
	Title         string `json:"title"`
	Location      string `json:"location"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	MaxVolunteers int    `json:"maxVolunteers"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
}
