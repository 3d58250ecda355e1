package models

// LeaderboardEntry is one user's aggregate contribution.
type LeaderboardEntry struct {
	ID                     int64   `json:"id"`
	Name                   string  `json:"name"`
	AvatarURL              *string `json:"avatar_url"`
	JoinDate               string  `json:"join_date"`
	PostsCount             int     `json:"posts_count"`
	DamageReportsCount     int     `json:"damage_reports_count"`
	EventsJoinedCount      int     `json:"events_joined_count"`
	RecoveryLocationsCount int     `json:"recovery_locations_count"`
	TotalDonated           float64 `json:"total_donated"`
	DonationsCount         int     `json:"donations_count"`
	ActivityScore          float64 `json:"activity_score"`
	Rank                   int     `json:"rank"`
	JoinDateFormatted      string  `json:"join_date_formatted"`
}

// ScoringSystem lists the weight of each contribution kind.
type ScoringSystem struct {
	Posts             float64 `json:"posts"`
	DamageReports     float64 `json:"damage_reports"`
	EventsJoined      float64 `json:"events_joined"`
	RecoveryLocations float64 `json:"recovery_locations"`
	Donations         float64 `json:"donations"`
}

// LeaderboardResponse is the body of the community leaderboard endpoint.
type LeaderboardResponse struct {
	Leaderboard   []LeaderboardEntry `json:"leaderboard"`
	TotalUsers    int                `json:"total_users"`
	ScoringSystem ScoringSystem      `json:"scoring_system"`
}
