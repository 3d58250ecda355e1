package forms

import (
	"context"
	"strings"

	"damagesnap/internal/api"
	"damagesnap/internal/models"
	"damagesnap/internal/toast"
)

// AIServerClient is the part of the API client the AI server form uses.
type AIServerClient interface {
	SetAIServer(ctx context.Context, in models.ServerURL) api.Result[models.StatusMessage]
}

// AIServerForm points the API at an AI analysis server.
type AIServerForm struct {
	ServerURL string
}

func (f *AIServerForm) Validate() (models.ServerURL, error) {
	raw := strings.TrimSpace(f.ServerURL)
	if raw == "" {
		return models.ServerURL{}, invalid("Input Error", "Server URL cannot be empty.")
	}
	return models.ServerURL{ServerURL: raw}, nil
}

func (f *AIServerForm) Submit(ctx context.Context, c AIServerClient, n toast.Notifier) error {
	in, err := f.Validate()
	if err != nil {
		return reject(n, err)
	}
	res := c.SetAIServer(ctx, in)
	if !res.OK() {
		notify(n, toast.Failure("Update Failed", res.Error))
		return res.Err()
	}
	notify(n, toast.Success("AI Server URL Updated", "The AI server URL has been set."))
	f.ServerURL = ""
	return nil
}
