package http

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/villays/internal/funnel"
	"github.com/example/villays/internal/promo"
)

// Visitor bundles the per-session collaborators resolved for one guest.
type Visitor struct {
	Token      string
	Controller *funnel.Controller
	Planner    *promo.Planner
}

// VisitorFactory builds the session-scoped collaborators for a new visitor.
type VisitorFactory func(ctx context.Context, token string, start time.Time) *Visitor

type visitorEntry struct {
	visitor  *Visitor
	lastSeen time.Time
}

// VisitorManager keeps one funnel session per visitor token and evicts
// sessions that have been idle longer than the TTL.
type VisitorManager struct {
	factory VisitorFactory
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*visitorEntry
}

// NewVisitorManager builds a manager. A non-positive TTL defaults to 24
// hours; a nil now function defaults to time.Now.
func NewVisitorManager(factory VisitorFactory, ttl time.Duration, now func() time.Time) *VisitorManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &VisitorManager{
		factory: factory,
		ttl:     ttl,
		now:     now,
		entries: make(map[string]*visitorEntry),
	}
}

// Acquire resolves the visitor for a token, creating a fresh session when the
// token is empty, unknown or expired. It returns the visitor and the token
// the client should carry forward.
func (m *VisitorManager) Acquire(ctx context.Context, token string) *Visitor {
	now := m.now()

	m.mu.Lock()
	m.evictLocked(now)
	if token != "" {
		if entry, ok := m.entries[token]; ok {
			entry.lastSeen = now
			visitor := entry.visitor
			m.mu.Unlock()
			return visitor
		}
	}
	m.mu.Unlock()

	// Build outside the lock; construction may hit the durable store.
	fresh := m.factory(ctx, uuid.NewString(), now)

	m.mu.Lock()
	m.entries[fresh.Token] = &visitorEntry{visitor: fresh, lastSeen: now}
	m.mu.Unlock()
	return fresh
}

// Len reports the number of live sessions.
func (m *VisitorManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *VisitorManager) evictLocked(now time.Time) {
	for token, entry := range m.entries {
		if now.Sub(entry.lastSeen) > m.ttl {
			delete(m.entries, token)
		}
	}
}
