package identity

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

const defaultAvatar = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?auto=format&fit=crop&q=80&w=200"

// MockProvider fabricates a guest profile for any submitted credentials. It
// stands in for a real identity backend during demos and local development,
// including the short artificial delay the real backend would exhibit.
type MockProvider struct {
	delay   time.Duration
	newID   func() string
	sleeper func(ctx context.Context, d time.Duration) error
}

// MockOption adjusts a MockProvider.
type MockOption func(*MockProvider)

// WithMockDelay overrides the simulated backend latency.
func WithMockDelay(d time.Duration) MockOption {
	return func(p *MockProvider) { p.delay = d }
}

// WithMockIDGenerator overrides how fabricated user IDs are produced.
func WithMockIDGenerator(gen func() string) MockOption {
	return func(p *MockProvider) { p.newID = gen }
}

// NewMockProvider builds a provider with a 1.2 second simulated latency and
// random base36 user IDs.
func NewMockProvider(opts ...MockOption) *MockProvider {
	p := &MockProvider{
		delay:   1200 * time.Millisecond,
		newID:   randomID,
		sleeper: sleepCtx,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Authenticate accepts any non-empty email and password and returns a
// returning-guest profile with an established loyalty balance.
func (p *MockProvider) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return User{}, ErrInvalidCredentials
	}
	if err := p.sleeper(ctx, p.delay); err != nil {
		return User{}, err
	}
	return User{
		ID:        p.newID(),
		FirstName: "Eugene",
		LastName:  "Mendes",
		Email:     strings.TrimSpace(creds.Email),
		Avatar:    defaultAvatar,
		Points:    350,
	}, nil
}

// Register fabricates a fresh member profile with zero loyalty points,
// keeping any names submitted on the form.
func (p *MockProvider) Register(ctx context.Context, creds Credentials) (User, error) {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return User{}, ErrInvalidCredentials
	}
	if err := p.sleeper(ctx, p.delay); err != nil {
		return User{}, err
	}
	user := User{
		ID:        p.newID(),
		FirstName: strings.TrimSpace(creds.FirstName),
		LastName:  strings.TrimSpace(creds.LastName),
		Email:     strings.TrimSpace(creds.Email),
		Avatar:    defaultAvatar,
		Points:    0,
	}
	if user.FirstName == "" {
		user.FirstName = "New"
	}
	if user.LastName == "" {
		user.LastName = "Member"
	}
	return user, nil
}

func randomID() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	buf := make([]byte, 9)
	for i := range buf {
		buf[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(buf)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
