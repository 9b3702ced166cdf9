package http

import (
	"time"

	"github.com/example/villays/internal/catalog"
	"github.com/example/villays/internal/funnel"
	"github.com/example/villays/internal/identity"
	"github.com/example/villays/internal/reservation"
)

// Bank transfer details shown on the payment page. Transfers are accepted
// for 24 hours after checkout begins.
const (
	virtualAccountNumber = "8001234567890123"
	paymentWindow        = 24 * time.Hour
)

type userResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	Points    int    `json:"points"`
}

func newUserResponse(user identity.User) userResponse {
	return userResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Points:    user.Points,
	}
}

type bookingResponse struct {
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
	CheckInState  string `json:"checkInState,omitempty"`
	Highlighted   bool   `json:"highlighted,omitempty"`
}

func newBookingResponse(booking reservation.Booking) bookingResponse {
	return bookingResponse{
		ID:            booking.ID,
		BookingCode:   booking.Code,
		VillaID:       booking.VillaID,
		VillaName:     booking.VillaName,
		SuiteID:       booking.SuiteID,
		SuiteName:     booking.SuiteName,
		ArrivalDate:   booking.ArrivalDate.Format(dateLayout),
		DepartureDate: booking.DepartureDate.Format(dateLayout),
		Total:         booking.Total,
		Status:        string(booking.Status),
		CreatedAt:     booking.CreatedAt.Format(time.RFC3339),
	}
}

func newActiveBookingResponse(booking reservation.Booking, today time.Time) bookingResponse {
	resp := newBookingResponse(booking)
	state := reservation.ClassifyCheckIn(today, booking.ArrivalDate, booking.DepartureDate)
	resp.CheckInState = string(state)
	resp.Highlighted = state.Highlighted()
	return resp
}

type suiteResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Size        string   `json:"size"`
	View        string   `json:"view"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	NightlyRate int64    `json:"nightlyRate"`
	Inclusions  []string `json:"inclusions"`
}

func newSuiteResponse(suite catalog.Suite) suiteResponse {
	return suiteResponse{
		ID:          suite.ID,
		Name:        suite.Name,
		Size:        suite.Size,
		View:        suite.View,
		Location:    suite.Location,
		Description: suite.Description,
		Image:       suite.Image,
		NightlyRate: suite.NightlyRate,
		Inclusions:  suite.Inclusions,
	}
}

type villaResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	NightlyRate int64           `json:"nightlyRate"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
	LivingArea  int             `json:"livingArea"`
	Bedrooms    int             `json:"bedrooms"`
	Tags        []string        `json:"tags"`
	Amenities   []string        `json:"amenities"`
	Suites      []suiteResponse `json:"suites"`
}

func newVillaResponse(villa catalog.Villa) villaResponse {
	suites := make([]suiteResponse, len(villa.Suites))
	for i, suite := range villa.Suites {
		suites[i] = newSuiteResponse(suite)
	}
	return villaResponse{
		ID:          villa.ID,
		Name:        villa.Name,
		Location:    villa.Location,
		Description: villa.Description,
		Image:       villa.Image,
		NightlyRate: villa.NightlyRate,
		Rating:      villa.Rating,
		Reviews:     villa.Reviews,
		LivingArea:  villa.LivingArea,
		Bedrooms:    villa.Bedrooms,
		Tags:        villa.Tags,
		Amenities:   villa.Amenities,
		Suites:      suites,
	}
}

type dateRangeResponse struct {
	ArrivalDate   string `json:"arrivalDate"`
	DepartureDate string `json:"departureDate"`
}

type stateResponse struct {
	Page            string            `json:"page"`
	Dates           dateRangeResponse `json:"dates"`
	SelectedVillaID string            `json:"selectedVillaId,omitempty"`
	SelectedSuiteID string            `json:"selectedSuiteId,omitempty"`
	User            *userResponse     `json:"user,omitempty"`
	CurrentBooking  *bookingResponse  `json:"currentBooking,omitempty"`
}

func newStateResponse(session funnel.Session, resolved funnel.Page) stateResponse {
	resp := stateResponse{
		Page: resolved.String(),
		Dates: dateRangeResponse{
			ArrivalDate:   session.Dates.Arrival.Format(dateLayout),
			DepartureDate: session.Dates.Departure.Format(dateLayout),
		},
		SelectedVillaID: session.SelectedVilla,
		SelectedSuiteID: session.SelectedSuite,
	}
	if session.User != nil {
		user := newUserResponse(*session.User)
		resp.User = &user
	}
	if session.CurrentBooking != nil {
		booking := newBookingResponse(*session.CurrentBooking)
		resp.CurrentBooking = &booking
	}
	return resp
}

type paymentInstructions struct {
	Method               string `json:"method"`
	VirtualAccountNumber string `json:"virtualAccountNumber"`
	DueBy                string `json:"dueBy"`
}

type quoteResponse struct {
	NightlyRate int64               `json:"nightlyRate"`
	Nights      int                 `json:"nights"`
	ServiceFee  int64               `json:"serviceFee"`
	Total       int64               `json:"total"`
	Currency    string              `json:"currency"`
	Payment     paymentInstructions `json:"payment"`
}

func newQuoteResponse(quote reservation.Quote, currency string, now time.Time) quoteResponse {
	return quoteResponse{
		NightlyRate: quote.NightlyRate,
		Nights:      quote.Nights,
		ServiceFee:  quote.ServiceFee,
		Total:       quote.Total,
		Currency:    currency,
		Payment: paymentInstructions{
			Method:               "bank_transfer",
			VirtualAccountNumber: virtualAccountNumber,
			DueBy:                now.Add(paymentWindow).Format(time.RFC3339),
		},
	}
}

type favoriteResponse struct {
	Favorite bool `json:"favorite"`
}

type popupsResponse struct {
	Due []string `json:"due"`
}

type conciergeResponse struct {
	Reply string `json:"reply"`
}
