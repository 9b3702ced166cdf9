package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/example/villays/internal/identity"
	"github.com/example/villays/internal/persistence/memory"
	"github.com/example/villays/internal/reservation"
	"github.com/example/villays/internal/testfixtures"
)

func newTestGateway() (*Gateway, *memory.Store, *memory.Store) {
	durable := memory.NewStore()
	session := memory.NewStore()
	return NewGateway(durable, session, nil), durable, session
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGateway_UserRoundTrip(t *testing.T) {
	t.Parallel()

	gateway, _, _ := newTestGateway()
	ctx := context.Background()

	if _, ok := gateway.LoadUser(ctx); ok {
		t.Fatal("expected no user before save")
	}

	user := testfixtures.NewUserFixture(func(u *identity.User) { u.ID = "u1" })
	if err := gateway.SaveUser(ctx, user); err != nil {
		t.Fatalf("save user: %v", err)
	}

	loaded, ok := gateway.LoadUser(ctx)
	if !ok {
		t.Fatal("expected user after save")
	}
	if loaded != user {
		t.Errorf("loaded user %+v, want %+v", loaded, user)
	}

	if err := gateway.ClearUser(ctx); err != nil {
		t.Fatalf("clear user: %v", err)
	}
	if _, ok := gateway.LoadUser(ctx); ok {
		t.Error("expected no user after clear")
	}
}

func TestGateway_MalformedUserTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	gateway, durable, _ := newTestGateway()
	ctx := context.Background()

	if err := durable.Set(ctx, KeyUser, "{not json"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	if _, ok := gateway.LoadUser(ctx); ok {
		t.Error("expected malformed record to read as absent")
	}
}

func TestGateway_BookingsRoundTrip(t *testing.T) {
	t.Parallel()

	gateway, _, _ := newTestGateway()
	ctx := context.Background()

	first := testfixtures.NewBookingFixture(func(b *reservation.Booking) {
		b.ID = "b1"
		b.Code = "OT-LZ3K9F2-QX7A"
		b.ArrivalDate = date(2026, time.September, 10)
		b.DepartureDate = date(2026, time.September, 17)
	})
	second := first
	second.ID = "b2"
	second.Status = reservation.StatusCancelled

	if err := gateway.AppendBooking(ctx, first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := gateway.AppendBooking(ctx, second); err != nil {
		t.Fatalf("append: %v", err)
	}

	bookings := gateway.LoadBookings(ctx)
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	if bookings[0].ID != "b1" || bookings[1].ID != "b2" {
		t.Errorf("unexpected order: %s, %s", bookings[0].ID, bookings[1].ID)
	}
	if !bookings[0].ArrivalDate.Equal(first.ArrivalDate) {
		t.Errorf("arrival date did not round-trip: %s", bookings[0].ArrivalDate)
	}

	active := gateway.ActiveBookings(ctx, date(2026, time.September, 12))
	if len(active) != 1 || active[0].ID != "b1" {
		t.Errorf("expected only the confirmed booking to be active, got %+v", active)
	}
}

func TestGateway_FavoritesToggle(t *testing.T) {
	t.Parallel()

	gateway, _, _ := newTestGateway()
	ctx := context.Background()

	on, err := gateway.ToggleFavorite(ctx, "suite-pool")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !on {
		t.Error("expected first toggle to favorite the suite")
	}
	if !gateway.IsFavorite(ctx, "suite-pool") {
		t.Error("expected suite to be a favorite")
	}

	if _, err := gateway.ToggleFavorite(ctx, "suite-garden"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	favorites := gateway.LoadFavorites(ctx)
	if len(favorites) != 2 || favorites[0] != "suite-pool" || favorites[1] != "suite-garden" {
		t.Errorf("unexpected favorites %v", favorites)
	}

	off, err := gateway.ToggleFavorite(ctx, "suite-pool")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if off {
		t.Error("expected second toggle to unfavorite the suite")
	}
	if gateway.IsFavorite(ctx, "suite-pool") {
		t.Error("expected suite to no longer be a favorite")
	}
}

func TestGateway_SessionFlags(t *testing.T) {
	t.Parallel()

	gateway, durable, session := newTestGateway()
	ctx := context.Background()

	if gateway.WelcomeSeen(ctx) {
		t.Error("welcome should start unseen")
	}
	gateway.MarkWelcomeSeen(ctx)
	if !gateway.WelcomeSeen(ctx) {
		t.Error("expected welcome to be marked seen")
	}
	if _, ok, _ := durable.Get(ctx, KeyWelcomeSeen); !ok {
		t.Error("welcome mark should live in the durable store")
	}

	if gateway.BannerClosed(ctx) {
		t.Error("banner should start open")
	}
	gateway.MarkBannerClosed(ctx)
	if !gateway.BannerClosed(ctx) {
		t.Error("expected banner to be closed")
	}
	if _, ok, _ := session.Get(ctx, KeyBannerClosed); !ok {
		t.Error("banner mark should live in the session store")
	}
}

func TestGateway_RatePopupDismissal(t *testing.T) {
	t.Parallel()

	gateway, _, _ := newTestGateway()
	ctx := context.Background()

	if _, ok := gateway.RatePopupDismissedAt(ctx); ok {
		t.Error("expected no dismissal recorded initially")
	}

	at := time.Date(2026, time.March, 3, 14, 22, 5, 0, time.UTC)
	gateway.DismissRatePopup(ctx, at)

	got, ok := gateway.RatePopupDismissedAt(ctx)
	if !ok {
		t.Fatal("expected dismissal to be recorded")
	}
	if !got.Equal(at) {
		t.Errorf("dismissal instant %s, want %s", got, at)
	}
}
