package geocode

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGenAIModel is the Gemini model used when none is configured.
const DefaultGenAIModel = "gemini-2.5-flash"

// GenAICompleter answers prompts with Google Gemini.
type GenAICompleter struct {
	client *genai.Client
	model  string
}

// NewGenAICompleter creates a Gemini API client.
func NewGenAICompleter(ctx context.Context, apiKey, model string) (*GenAICompleter, error) {
	if apiKey == "" {
		return nil, errors.New("GenAI API key is required")
	}
	if model == "" {
		model = DefaultGenAIModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAICompleter{client: client, model: model}, nil
}

func (c *GenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
