package funnel

import (
	"time"

	"github.com/example/villays/internal/identity"
	"github.com/example/villays/internal/reservation"
)

// DateRange is the stay window a guest searched for.
type DateRange struct {
	Arrival   time.Time
	Departure time.Time
}

// GuestDetails is what the checkout form collects before payment.
type GuestDetails struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Requests  string
}

// Session is the in-memory funnel state for one visitor: where they are, what
// they picked and who they are. Durable pieces live behind the gateway; this
// struct is what Resolve renders from.
type Session struct {
	CurrentPage    Page
	SelectedVilla  string
	SelectedSuite  string
	Dates          DateRange
	Guest          GuestDetails
	User           *identity.User
	CurrentBooking *reservation.Booking
}
