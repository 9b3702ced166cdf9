// Package testfixtures provides deterministic clocks, identifier sequences and
// canonical domain fixtures shared by tests across the module.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/villays/internal/identity"
	"github.com/example/villays/internal/reservation"
)

var bookingCounter uint64

var referenceTime = time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// UserOption configures a generated user fixture.
type UserOption func(*identity.User)

// NewUserFixture returns a deterministic returning-guest profile with optional overrides.
func NewUserFixture(opts ...UserOption) identity.User {
	user := identity.User{
		ID:        "user-001",
		FirstName: "Eugene",
		LastName:  "Mendes",
		Email:     "eugene@example.com",
		Points:    350,
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// BookingOption configures a generated booking fixture.
type BookingOption func(*reservation.Booking)

// NewBookingFixture returns a deterministic confirmed booking a week out from
// the reference time, with optional overrides.
func NewBookingFixture(opts ...BookingOption) reservation.Booking {
	idx := atomic.AddUint64(&bookingCounter, 1)
	arrival := reservation.Normalize(referenceTime).AddDate(0, 0, int(idx))
	booking := reservation.Booking{
		ID:            fmt.Sprintf("booking-%03d", idx),
		Code:          fmt.Sprintf("OT-FIXTURE-%04d", idx),
		VillaID:       "villays-flagship",
		VillaName:     "Villays Estate Amalfi",
		SuiteID:       "suite-garden",
		SuiteName:     "Garden Suite",
		ArrivalDate:   arrival,
		DepartureDate: arrival.AddDate(0, 0, 7),
		Total:         1650*7 + 480,
		Status:        reservation.StatusConfirmed,
		CreatedAt:     referenceTime,
	}
	for _, opt := range opts {
		opt(&booking)
	}
	return booking
}
