package models

// AIAnalysisDetails is the model's assessment of a photo.
type AIAnalysisDetails struct {
	DamageScore     float64  `json:"damage_score"`
	Severity        string   `json:"severity"`
	PrimaryDamage   string   `json:"primary_damage"`
	Confidence      float64  `json:"confidence"`
	EstimatedCost   string   `json:"estimated_cost"`
	Recommendations []string `json:"recommendations"`
	ModelType       string   `json:"model_type"`
}

// AIAnalysisResponse wraps the analysis details.
type AIAnalysisResponse struct {
	Analysis AIAnalysisDetails `json:"analysis"`
}

// AnalysisResult is the response of the photo analysis endpoint.
type AnalysisResult struct {
	Success        bool                `json:"success"`
	AIAnalysis     *AIAnalysisResponse `json:"ai_analysis,omitempty"`
	RequestID      string              `json:"request_id"`
	ProcessingTime float64             `json:"processing_time"`
	Error          *string             `json:"error,omitempty"`
}

// Details returns the analysis details, or nil when the server sent none.
func (r *AnalysisResult) Details() *AIAnalysisDetails {
	if r == nil || r.AIAnalysis == nil {
		return nil
	}
	return &r.AIAnalysis.Analysis
}

// ServerURL is the payload to point the API at an AI analysis server.
type ServerURL struct {
	ServerURL string `json:"server_url"`
}

// AIServerStatus is the health payload of the AI analysis server.
type AIServerStatus struct {
	Status    string `json:"status"`
	ServerURL string `json:"server_url,omitempty"`
	Error     string `json:"error,omitempty"`
}
