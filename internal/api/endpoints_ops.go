package api

import (
	"context"
	"encoding/json"
	"net/http"

	"damagesnap/internal/models"
)

// SetAIServer points the API at an AI analysis server.
func (c *Client) SetAIServer(ctx context.Context, in models.ServerURL) Result[models.StatusMessage] {
	return do[models.StatusMessage](ctx, c, call{op: "ai.set_server", method: http.MethodPost, endpoint: "/api/set-ai-server", body: jsonBody{in}})
}

// AIServerStatus reports the health of the AI analysis server.
func (c *Client) AIServerStatus(ctx context.Context) Result[models.AIServerStatus] {
	return do[models.AIServerStatus](ctx, c, call{op: "ai.status", method: http.MethodGet, endpoint: "/api/ai-server-status"})
}

// The queue and debug endpoints return free-form documents, so they are kept
// as raw JSON for display.

// PendingAnalysis lists analysis jobs waiting for the AI server.
func (c *Client) PendingAnalysis(ctx context.Context) Result[json.RawMessage] {
	return do[json.RawMessage](ctx, c, call{op: "queue.pending", method: http.MethodGet, endpoint: "/api/queue/pending"})
}

// CompleteAnalysis posts a finished analysis back to the queue.
func (c *Client) CompleteAnalysis(ctx context.Context, in models.AnalysisResult) Result[json.RawMessage] {
	return do[json.RawMessage](ctx, c, call{op: "queue.complete", method: http.MethodPost, endpoint: "/api/queue/complete", body: jsonBody{in}})
}

// QueueStatus summarizes the analysis queue.
func (c *Client) QueueStatus(ctx context.Context) Result[json.RawMessage] {
	return do[json.RawMessage](ctx, c, call{op: "queue.status", method: http.MethodGet, endpoint: "/api/queue/status"})
}

// Endpoints lists the routes the API exposes.
func (c *Client) Endpoints(ctx context.Context) Result[json.RawMessage] {
	return do[json.RawMessage](ctx, c, call{op: "debug.endpoints", method: http.MethodGet, endpoint: "/api/endpoints"})
}

// DebugInfo returns the API's debug document.
func (c *Client) DebugInfo(ctx context.Context) Result[json.RawMessage] {
	return do[json.RawMessage](ctx, c, call{op: "debug.info", method: http.MethodGet, endpoint: "/api/debug"})
}
