package concierge

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

var stockReplies = []string{
	"Of course. Our team has taken note and your personal concierge will follow up with the arrangements shortly.",
	"It would be our pleasure. May I suggest sunset drinks on the cliff terrace before dinner? I can reserve it for you.",
	"Certainly. The estate's private chef can prepare that for any evening of your stay; just let us know the occasion.",
	"A wonderful choice. I will coordinate with the house manager and confirm the details to your suite.",
}

const greetingReply = "Welcome to the estate. I am your personal concierge; how may I make your stay exceptional?"

// CannedResponder serves stock concierge replies with a short artificial
// delay so the exchange feels attended.
type CannedResponder struct {
	delay time.Duration
	pick  func(n int) int
}

// CannedOption adjusts a CannedResponder.
type CannedOption func(*CannedResponder)

// WithCannedDelay overrides the artificial reply delay.
func WithCannedDelay(d time.Duration) CannedOption {
	return func(r *CannedResponder) { r.delay = d }
}

// WithCannedPicker overrides reply selection, for deterministic tests.
func WithCannedPicker(pick func(n int) int) CannedOption {
	return func(r *CannedResponder) { r.pick = pick }
}

// NewCannedResponder builds a responder with a 1.2 second delay and random
// reply selection.
func NewCannedResponder(opts ...CannedOption) *CannedResponder {
	r := &CannedResponder{delay: 1200 * time.Millisecond, pick: rand.Intn}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond returns a stock reply. The first guest turn of a conversation gets
// the greeting.
func (r *CannedResponder) Respond(ctx context.Context, history []Turn) (string, error) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	guestTurns := 0
	for _, turn := range history {
		if turn.Role == RoleGuest && strings.TrimSpace(turn.Text) != "" {
			guestTurns++
		}
	}
	if guestTurns <= 1 {
		return greetingReply, nil
	}
	return stockReplies[r.pick(len(stockReplies))], nil
}
