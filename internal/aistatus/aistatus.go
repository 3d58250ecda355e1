// Package aistatus polls the health of the AI analysis server.
package aistatus

import (
	"context"
	"time"

	"damagesnap/internal/api"
	"damagesnap/internal/models"
)

// DefaultInterval is the polling period.
const DefaultInterval = 10 * time.Second

// Checker reads the AI server status.
type Checker interface {
	AIServerStatus(ctx context.Context) api.Result[models.AIServerStatus]
}

// Status is one observation of the AI server.
type Status struct {
	Online    bool
	Error     string
	CheckedAt time.Time
}

// String renders the status the way the settings screen shows it.
func (s Status) String() string {
	if s.Online {
		return "Online"
	}
	return "Offline: " + s.Error
}

// Check queries the server once. It is online only when the payload reports
// status "ok".
func Check(ctx context.Context, c Checker) Status {
	res := c.AIServerStatus(ctx)
	st := Status{CheckedAt: time.Now()}
	if res.OK() && res.Data != nil && res.Data.Status == "ok" {
		st.Online = true
		return st
	}
	st.Error = res.Error
	if st.Error == "" && res.Data != nil {
		st.Error = res.Data.Error
	}
	if st.Error == "" {
		st.Error = "Unknown error"
	}
	return st
}

// Poller checks the server immediately and then on every tick.
type Poller struct {
	Checker  Checker
	Interval time.Duration
}

// Run reports every observation to fn until ctx is done. The ticker is
// stopped on return.
func (p *Poller) Run(ctx context.Context, fn func(Status)) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	fn(Check(ctx, p.Checker))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn(Check(ctx, p.Checker))
		}
	}
}
