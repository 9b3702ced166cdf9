package persistence

import (
	"time"

	"github.com/example/villays/internal/identity"
	"github.com/example/villays/internal/reservation"
)

// The stored JSON shapes. Timestamps are serialized as RFC 3339 strings and
// parsed back leniently; a record that fails to parse is treated as absent
// rather than surfaced as an error.

type userRecord struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	Points    int    `json:"points"`
}

func newUserRecord(user identity.User) userRecord {
	return userRecord{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Points:    user.Points,
	}
}

func (r userRecord) user() identity.User {
	return identity.User{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Avatar:    r.Avatar,
		Points:    r.Points,
	}
}

type bookingRecord struct {
	ID            string `json:"id"`
	BookingCode   string `json:"bookingCode"`
	VillaID       string `json:"villaId"`
	VillaName     string `json:"villaName"`
	SuiteID       string `json:"suiteId"`
	SuiteName     string `json:"suiteName"`
	ArrivalDate   string `json:"arrivalDate"`
	DepartureDate string `json:"departureDate"`
	Total         int64  `json:"total"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

func newBookingRecord(booking reservation.Booking) bookingRecord {
	return bookingRecord{
		ID:            booking.ID,
		BookingCode:   booking.Code,
		VillaID:       booking.VillaID,
		VillaName:     booking.VillaName,
		SuiteID:       booking.SuiteID,
		SuiteName:     booking.SuiteName,
		ArrivalDate:   booking.ArrivalDate.Format(time.RFC3339Nano),
		DepartureDate: booking.DepartureDate.Format(time.RFC3339Nano),
		Total:         booking.Total,
		Status:        string(booking.Status),
		CreatedAt:     booking.CreatedAt.Format(time.RFC3339Nano),
	}
}

func (r bookingRecord) booking() (reservation.Booking, error) {
	arrival, err := time.Parse(time.RFC3339, r.ArrivalDate)
	if err != nil {
		return reservation.Booking{}, err
	}
	departure, err := time.Parse(time.RFC3339, r.DepartureDate)
	if err != nil {
		return reservation.Booking{}, err
	}
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return reservation.Booking{}, err
	}
	return reservation.Booking{
		ID:            r.ID,
		Code:          r.BookingCode,
		VillaID:       r.VillaID,
		VillaName:     r.VillaName,
		SuiteID:       r.SuiteID,
		SuiteName:     r.SuiteName,
		ArrivalDate:   arrival,
		DepartureDate: departure,
		Total:         r.Total,
		Status:        reservation.Status(r.Status),
		CreatedAt:     createdAt,
	}, nil
}
