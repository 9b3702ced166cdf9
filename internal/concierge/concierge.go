// Package concierge answers guest questions, delegating to a hosted language
// model when one is configured and falling back to stock replies when not.
package concierge

import (
	"context"
	"log/slog"

	"github.com/example/villays/internal/logging"
)

// Role identifies who spoke a turn in the conversation.
type Role string

const (
	RoleGuest     Role = "user"
	RoleConcierge Role = "model"
)

// Turn is one utterance in the conversation history.
type Turn struct {
	Role Role
	Text string
}

// Responder produces the concierge's next reply given the conversation so far.
type Responder interface {
	Respond(ctx context.Context, history []Turn) (string, error)
}

// Service fronts the concierge. When the live responder fails or is absent
// the canned responder answers instead, so a reply always comes back.
type Service struct {
	live     Responder
	fallback Responder
	logger   *slog.Logger
}

// NewService wires the service. live may be nil; fallback must not be.
func NewService(live, fallback Responder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{live: live, fallback: fallback, logger: logger}
}

// Reply returns the concierge's answer to the latest guest turn. It never
// fails: a live responder error is logged and the fallback answers.
func (s *Service) Reply(ctx context.Context, history []Turn) (string, error) {
	logger := logging.Default(ctx, s.logger).With("service", "Concierge", "operation", "Reply")

	if s.live != nil {
		reply, err := s.live.Respond(ctx, history)
		if err == nil {
			return reply, nil
		}
		logger.WarnContext(ctx, "live concierge unavailable, using stock reply", "error", err)
	}
	return s.fallback.Respond(ctx, history)
}
