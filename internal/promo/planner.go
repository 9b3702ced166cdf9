// Package promo schedules the promotional surfaces shown during a visit: the
// one-time welcome offer, the seasonal banner and the recurring rate card.
package promo

import (
	"context"
	"time"
)

// Entry is one promotional surface. It becomes due once Delay has elapsed
// since the visit started, provided Condition still holds. Dismiss records
// the guest closing it.
type Entry struct {
	Name      string
	Delay     time.Duration
	Condition func(ctx context.Context) bool
	Dismiss   func(ctx context.Context)
}

// Planner evaluates which promotional surfaces are due for one visitor.
type Planner struct {
	start   time.Time
	now     func() time.Time
	entries []Entry
}

// NewPlanner builds a planner whose delays count from the given visit start.
// A nil now function defaults to time.Now.
func NewPlanner(start time.Time, now func() time.Time, entries ...Entry) *Planner {
	if now == nil {
		now = time.Now
	}
	return &Planner{start: start, now: now, entries: entries}
}

// Due returns the names of every surface whose delay has elapsed and whose
// condition holds, in registration order.
func (p *Planner) Due(ctx context.Context) []string {
	elapsed := p.now().Sub(p.start)
	due := make([]string, 0, len(p.entries))
	for _, entry := range p.entries {
		if elapsed < entry.Delay {
			continue
		}
		if entry.Condition != nil && !entry.Condition(ctx) {
			continue
		}
		due = append(due, entry.Name)
	}
	return due
}

// Dismiss records the guest closing a surface and reports whether the name
// was known.
func (p *Planner) Dismiss(ctx context.Context, name string) bool {
	for _, entry := range p.entries {
		if entry.Name != name {
			continue
		}
		if entry.Dismiss != nil {
			entry.Dismiss(ctx)
		}
		return true
	}
	return false
}

// Flags is the slice of guest state the stock entries read and write. The
// persistence gateway satisfies it.
type Flags interface {
	WelcomeSeen(ctx context.Context) bool
	MarkWelcomeSeen(ctx context.Context)
	BannerClosed(ctx context.Context) bool
	MarkBannerClosed(ctx context.Context)
	RatePopupDismissedAt(ctx context.Context) (time.Time, bool)
	DismissRatePopup(ctx context.Context, at time.Time)
}

// WelcomeOffer shows once per guest, ever.
func WelcomeOffer(flags Flags, delay time.Duration) Entry {
	return Entry{
		Name:      "welcome-offer",
		Delay:     delay,
		Condition: func(ctx context.Context) bool { return !flags.WelcomeSeen(ctx) },
		Dismiss:   flags.MarkWelcomeSeen,
	}
}

// Banner shows until closed, then stays closed for the rest of the session.
func Banner(flags Flags, delay time.Duration) Entry {
	return Entry{
		Name:      "promo-banner",
		Delay:     delay,
		Condition: func(ctx context.Context) bool { return !flags.BannerClosed(ctx) },
		Dismiss:   flags.MarkBannerClosed,
	}
}

// RateCard reappears after a cooldown each time it is dismissed.
func RateCard(flags Flags, delay, cooldown time.Duration, now func() time.Time) Entry {
	if now == nil {
		now = time.Now
	}
	return Entry{
		Name:  "rate-card",
		Delay: delay,
		Condition: func(ctx context.Context) bool {
			dismissedAt, ok := flags.RatePopupDismissedAt(ctx)
			if !ok {
				return true
			}
			return now().Sub(dismissedAt) >= cooldown
		},
		Dismiss: func(ctx context.Context) {
			flags.DismissRatePopup(ctx, now())
		},
	}
}
