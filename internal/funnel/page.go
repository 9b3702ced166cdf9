package funnel

import "fmt"

// Page identifies a screen in the booking funnel. The set is closed; Resolve
// dispatches over every member.
type Page int

const (
	PageHome Page = iota
	PageRoomSelection
	PageSuiteDetail
	PageCheckoutDetails
	PagePayment
	PageConfirmation
	PageSignIn
	PageSignUp
	PageProfile
	PageBookingHistory
	PageActiveBookings
	PageFavoriteRooms
)

var pageNames = map[Page]string{
	PageHome:            "home",
	PageRoomSelection:   "room-selection",
	PageSuiteDetail:     "suite-detail",
	PageCheckoutDetails: "checkout-details",
	PagePayment:         "payment",
	PageConfirmation:    "confirmation",
	PageSignIn:          "sign-in",
	PageSignUp:          "sign-up",
	PageProfile:         "profile",
	PageBookingHistory:  "booking-history",
	PageActiveBookings:  "active-bookings",
	PageFavoriteRooms:   "favorite-rooms",
}

var pagesByName = func() map[string]Page {
	m := make(map[string]Page, len(pageNames))
	for page, name := range pageNames {
		m[name] = page
	}
	return m
}()

func (p Page) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return fmt.Sprintf("page(%d)", int(p))
}

// ParsePage resolves a page from its wire name.
func ParsePage(name string) (Page, error) {
	if page, ok := pagesByName[name]; ok {
		return page, nil
	}
	return PageHome, fmt.Errorf("%w: unknown page %q", ErrUnknownPage, name)
}

// RequiresSuite reports whether the page cannot render without a selected suite.
func (p Page) RequiresSuite() bool {
	switch p {
	case PageSuiteDetail, PageCheckoutDetails, PagePayment:
		return true
	}
	return false
}

// RequiresUser reports whether the page is only reachable while signed in.
func (p Page) RequiresUser() bool {
	switch p {
	case PageProfile, PageBookingHistory, PageActiveBookings, PageFavoriteRooms:
		return true
	}
	return false
}
