package models

// HelpRequest asks the community for funding or assistance.
type HelpRequest struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	FundingGoal    float64   `json:"fundingGoal"`
	CurrentFunding float64   `json:"currentFunding"`
	Category       string    `json:"category"`
	Urgency        string    `json:"urgency"`
	CreatedAt      Timestamp `json:"created_at"`
}

// HelpRequestCreate is the payload for a new help request.
type HelpRequestCreate struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
	FundingGoal int    `json:"fundingGoal"`
	Category    string `json:"category"`
	Urgency     string `json:"urgency"`
}

// DonationCreate is the payload for a donation to a help request.
type DonationCreate struct {
	Amount    float64 `json:"amount"`
	DonorName string  `json:"donorName"`
	Email     string  `json:"email"`
}

// Donation is the stored donation.
type Donation struct {
	ID            int64     `json:"id"`
	HelpRequestID int64     `json:"help_request_id"`
	Amount        float64   `json:"amount"`
	DonorName     string    `json:"donorName"`
	CreatedAt     Timestamp `json:"created_at"`
}
