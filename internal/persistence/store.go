package persistence

import "context"

// Storage keys for guest state. Durable keys survive restarts; session keys
// live only as long as the visitor session.
const (
	KeyUser          = "villays_user"
	KeyBookings      = "villays_bookings"
	KeyFavoriteRooms = "villays_favorite_rooms"
	KeyWelcomeSeen   = "villays_welcome_seen"

	KeyBannerClosed       = "villays_promo_banner_closed"
	KeyRatePopupDismissed = "villays_rate_popup_dismissed_at"
)

// Store is a string key-value store. Get reports presence separately from
// errors so a missing key is not an error condition.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
