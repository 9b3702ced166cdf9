package reservation

import "time"

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

// Booking is a completed reservation for a suite.
type Booking struct {
	ID            string
	Code          string
	VillaID       string
	VillaName     string
	SuiteID       string
	SuiteName     string
	ArrivalDate   time.Time
	DepartureDate time.Time
	Total         int64
	Status        Status
	CreatedAt     time.Time
}

// ActiveAt reports whether the booking counts as an upcoming or in-progress
// stay on the given day. Confirmed bookings stay active through their
// departure day inclusive.
func (b Booking) ActiveAt(today time.Time) bool {
	if b.Status != StatusConfirmed {
		return false
	}
	return !Normalize(b.DepartureDate).Before(Normalize(today))
}

// ActiveBookings filters the list down to bookings active on the given day,
// preserving order.
func ActiveBookings(bookings []Booking, today time.Time) []Booking {
	active := make([]Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.ActiveAt(today) {
			active = append(active, booking)
		}
	}
	return active
}
