package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"damagesnap/internal/models"
)

// DefaultChatLimit is the page size of ListMessages.
const DefaultChatLimit = 50

// ListHelpRequests returns every open help request.
func (c *Client) ListHelpRequests(ctx context.Context) Result[[]models.HelpRequest] {
	return do[[]models.HelpRequest](ctx, c, call{op: "help.list", method: http.MethodGet, endpoint: "/api/help-requests"})
}

// CreateHelpRequest files a help request.
func (c *Client) CreateHelpRequest(ctx context.Context, in models.HelpRequestCreate) Result[models.HelpRequest] {
	return do[models.HelpRequest](ctx, c, call{op: "help.create", method: http.MethodPost, endpoint: "/api/help-requests", body: jsonBody{in}, auth: true})
}

// MakeDonation donates to a help request. Donations do not require an account.
func (c *Client) MakeDonation(ctx context.Context, helpRequestID int64, in models.DonationCreate) Result[models.Donation] {
	return do[models.Donation](ctx, c, call{op: "donations.create", method: http.MethodPost, endpoint: fmt.Sprintf("/api/donations/%d", helpRequestID), body: jsonBody{in}})
}

// ListEvents returns the volunteer events.
func (c *Client) ListEvents(ctx context.Context) Result[[]models.VolunteerEvent] {
	return do[[]models.VolunteerEvent](ctx, c, call{op: "events.list", method: http.MethodGet, endpoint: "/api/volunteer-events"})
}

// CreateEvent schedules a volunteer event.
func (c *Client) CreateEvent(ctx context.Context, in models.VolunteerEventCreate) Result[models.VolunteerEvent] {
	return do[models.VolunteerEvent](ctx, c, call{op: "events.create", method: http.MethodPost, endpoint: "/api/volunteer-events", body: jsonBody{in}, auth: true})
}

// JoinEvent signs the authenticated user up for an event.
func (c *Client) JoinEvent(ctx context.Context, eventID int64) Result[models.StatusMessage] {
	return do[models.StatusMessage](ctx, c, call{op: "events.join", method: http.MethodPost, endpoint: fmt.Sprintf("/api/volunteer-events/%d/join", eventID), auth: true})
}

// SendMessage posts to the community chat.
func (c *Client) SendMessage(ctx context.Context, in models.ChatMessage) Result[models.ChatEntry] {
	return do[models.ChatEntry](ctx, c, call{op: "chat.send", method: http.MethodPost, endpoint: "/api/chat", body: jsonBody{in}, auth: true})
}

// ListMessages returns the latest chat messages.
func (c *Client) ListMessages(ctx context.Context, limit int) Result[[]models.ChatEntry] {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return do[[]models.ChatEntry](ctx, c, call{op: "chat.list", method: http.MethodGet, endpoint: "/api/chat?" + q.Encode(), auth: true})
}

// Leaderboard returns the community leaderboard.
func (c *Client) Leaderboard(ctx context.Context) Result[models.LeaderboardResponse] {
	return do[models.LeaderboardResponse](ctx, c, call{op: "community.leaderboard", method: http.MethodGet, endpoint: "/api/community/leaderboard"})
}
