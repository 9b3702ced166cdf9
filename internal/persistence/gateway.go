package persistence

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/example/villays/internal/identity"
	"github.com/example/villays/internal/reservation"
)

// Gateway is the guest-state facade over two key-value stores: a durable one
// for the profile, bookings and favorites, and a session-scoped one for
// ephemeral popup flags.
//
// Reads degrade gracefully: a malformed stored value is logged and treated as
// absent. Write failures on ephemeral flags are logged and swallowed; write
// failures on durable guest state are returned to the caller.
type Gateway struct {
	durable Store
	session Store
	logger  *slog.Logger
}

// NewGateway wires a gateway over the two stores. A nil logger defaults to
// slog.Default().
func NewGateway(durable, session Store, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{durable: durable, session: session, logger: logger}
}

// Durable exposes the underlying durable store for collaborators that keep
// their own records, such as the local credential provider.
func (g *Gateway) Durable() Store {
	return g.durable
}

// LoadUser returns the persisted profile, if any.
func (g *Gateway) LoadUser(ctx context.Context) (identity.User, bool) {
	var record userRecord
	if !g.read(ctx, g.durable, KeyUser, &record) {
		return identity.User{}, false
	}
	return record.user(), true
}

// SaveUser persists the signed-in profile.
func (g *Gateway) SaveUser(ctx context.Context, user identity.User) error {
	return g.write(ctx, g.durable, KeyUser, newUserRecord(user))
}

// ClearUser removes the persisted profile.
func (g *Gateway) ClearUser(ctx context.Context) error {
	return g.durable.Delete(ctx, KeyUser)
}

// LoadBookings returns every persisted booking in insertion order. Records
// that no longer parse are skipped.
func (g *Gateway) LoadBookings(ctx context.Context) []reservation.Booking {
	var records []bookingRecord
	if !g.read(ctx, g.durable, KeyBookings, &records) {
		return nil
	}
	bookings := make([]reservation.Booking, 0, len(records))
	for _, record := range records {
		booking, err := record.booking()
		if err != nil {
			g.logger.WarnContext(ctx, "skipping unparsable booking record",
				slog.String("booking_id", record.ID), slog.String("error", err.Error()))
			continue
		}
		bookings = append(bookings, booking)
	}
	return bookings
}

// AppendBooking adds a booking to the persisted history.
func (g *Gateway) AppendBooking(ctx context.Context, booking reservation.Booking) error {
	var records []bookingRecord
	g.read(ctx, g.durable, KeyBookings, &records)
	records = append(records, newBookingRecord(booking))
	return g.write(ctx, g.durable, KeyBookings, records)
}

// ActiveBookings returns the persisted bookings still active on the given day.
func (g *Gateway) ActiveBookings(ctx context.Context, today time.Time) []reservation.Booking {
	return reservation.ActiveBookings(g.LoadBookings(ctx), today)
}

// LoadFavorites returns the persisted favorite suite IDs in insertion order.
func (g *Gateway) LoadFavorites(ctx context.Context) []string {
	var favorites []string
	if !g.read(ctx, g.durable, KeyFavoriteRooms, &favorites) {
		return nil
	}
	return favorites
}

// IsFavorite reports whether the suite is currently favorited.
func (g *Gateway) IsFavorite(ctx context.Context, suiteID string) bool {
	for _, id := range g.LoadFavorites(ctx) {
		if id == suiteID {
			return true
		}
	}
	return false
}

// ToggleFavorite flips a suite in or out of the favorites list and reports
// whether it is a favorite afterwards.
func (g *Gateway) ToggleFavorite(ctx context.Context, suiteID string) (bool, error) {
	favorites := g.LoadFavorites(ctx)
	next := make([]string, 0, len(favorites)+1)
	removed := false
	for _, id := range favorites {
		if id == suiteID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, suiteID)
	}
	if err := g.write(ctx, g.durable, KeyFavoriteRooms, next); err != nil {
		return false, err
	}
	return !removed, nil
}

// WelcomeSeen reports whether the welcome offer has already been shown.
func (g *Gateway) WelcomeSeen(ctx context.Context) bool {
	return g.flag(ctx, g.durable, KeyWelcomeSeen)
}

// MarkWelcomeSeen records that the welcome offer was shown. The mark is
// durable so the offer appears at most once per guest.
func (g *Gateway) MarkWelcomeSeen(ctx context.Context) {
	g.setFlag(ctx, g.durable, KeyWelcomeSeen)
}

// BannerClosed reports whether the promo banner was dismissed this session.
func (g *Gateway) BannerClosed(ctx context.Context) bool {
	return g.flag(ctx, g.session, KeyBannerClosed)
}

// MarkBannerClosed dismisses the promo banner for the rest of the session.
func (g *Gateway) MarkBannerClosed(ctx context.Context) {
	g.setFlag(ctx, g.session, KeyBannerClosed)
}

// RatePopupDismissedAt returns when the rate card popup was last dismissed
// this session.
func (g *Gateway) RatePopupDismissedAt(ctx context.Context) (time.Time, bool) {
	raw, ok, err := g.session.Get(ctx, KeyRatePopupDismissed)
	if err != nil {
		g.logger.WarnContext(ctx, "session store read failed",
			slog.String("key", KeyRatePopupDismissed), slog.String("error", err.Error()))
		return time.Time{}, false
	}
	if !ok {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis).UTC(), true
}

// DismissRatePopup records the dismissal instant for the cooldown window.
func (g *Gateway) DismissRatePopup(ctx context.Context, at time.Time) {
	value := strconv.FormatInt(at.UnixMilli(), 10)
	if err := g.session.Set(ctx, KeyRatePopupDismissed, value); err != nil {
		g.logger.WarnContext(ctx, "session store write failed",
			slog.String("key", KeyRatePopupDismissed), slog.String("error", err.Error()))
	}
}

func (g *Gateway) read(ctx context.Context, store Store, key string, out any) bool {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		g.logger.WarnContext(ctx, "store read failed",
			slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		g.logger.WarnContext(ctx, "discarding malformed stored value",
			slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (g *Gateway) write(ctx context.Context, store Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, string(raw))
}

func (g *Gateway) flag(ctx context.Context, store Store, key string) bool {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		g.logger.WarnContext(ctx, "store read failed",
			slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return ok && raw == "true"
}

func (g *Gateway) setFlag(ctx context.Context, store Store, key string) {
	if err := store.Set(ctx, key, "true"); err != nil {
		g.logger.WarnContext(ctx, "store write failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}
