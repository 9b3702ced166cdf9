package funnel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/villays/internal/catalog"
	"github.com/example/villays/internal/identity"
	"github.com/example/villays/internal/logging"
	"github.com/example/villays/internal/persistence"
	"github.com/example/villays/internal/reservation"
)

// ControllerConfig carries the collaborators a Controller needs.
type ControllerConfig struct {
	// VillaID is the property this funnel sells. Defaults to the first
	// catalog entry when empty.
	VillaID     string
	Catalog     catalog.Provider
	Gateway     *persistence.Gateway
	Auth        identity.AuthProvider
	Codes       *reservation.CodeGenerator
	ServiceFee  int64
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// Controller drives one visitor through the booking funnel. It owns the
// in-memory session, persists durable guest state through the gateway and
// resolves which page the visitor should see.
//
// All methods are safe for concurrent use.
type Controller struct {
	catalog     catalog.Provider
	gateway     *persistence.Gateway
	auth        identity.AuthProvider
	codes       *reservation.CodeGenerator
	serviceFee  int64
	villaID     string
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger

	mu      sync.Mutex
	session Session
	pending *Page
}

// NewController builds a controller with a fresh session on the home page and
// the default one-week stay window pre-filled.
func NewController(cfg ControllerConfig) *Controller {
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	c := &Controller{
		catalog:     cfg.Catalog,
		gateway:     cfg.Gateway,
		auth:        cfg.Auth,
		codes:       cfg.Codes,
		serviceFee:  cfg.ServiceFee,
		villaID:     cfg.VillaID,
		idGenerator: cfg.IDGenerator,
		now:         cfg.Now,
		logger:      cfg.Logger,
	}
	arrival, departure := reservation.DefaultStay(c.now())
	c.session = Session{
		CurrentPage: PageHome,
		Dates:       DateRange{Arrival: arrival, Departure: departure},
	}
	return c
}

func (c *Controller) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	logger := logging.Default(ctx, c.logger)
	pairs := []any{"service", "Controller", "operation", operation}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}

// Rehydrate restores durable guest state into the session: the signed-in
// profile if one was persisted. Favorites and bookings stay behind the
// gateway and are read on demand.
func (c *Controller) Rehydrate(ctx context.Context) {
	logger := c.loggerWith(ctx, "Rehydrate")

	user, ok := c.gateway.LoadUser(ctx)
	if !ok {
		return
	}

	c.mu.Lock()
	c.session.User = &user
	c.mu.Unlock()
	logger.InfoContext(ctx, "restored signed-in guest", "user_id", user.ID)
}

// Current returns a snapshot of the session.
func (c *Controller) Current() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Session {
	out := c.session
	if c.session.User != nil {
		user := *c.session.User
		out.User = &user
	}
	if c.session.CurrentBooking != nil {
		booking := *c.session.CurrentBooking
		out.CurrentBooking = &booking
	}
	return out
}

// Resolve returns the page the visitor should actually see. Pages whose
// preconditions no longer hold fall back: suite pages without a selection go
// home, account pages without a signed-in guest go to sign-in.
func (c *Controller) Resolve() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveLocked()
}

func (c *Controller) resolveLocked() Page {
	page := c.session.CurrentPage
	switch page {
	case PageHome, PageRoomSelection, PageSignIn, PageSignUp:
		return page
	case PageSuiteDetail, PageCheckoutDetails, PagePayment:
		if c.session.SelectedSuite == "" {
			return PageHome
		}
		return page
	case PageConfirmation:
		if c.session.CurrentBooking == nil {
			return PageHome
		}
		return page
	case PageProfile, PageBookingHistory, PageActiveBookings, PageFavoriteRooms:
		if c.session.User == nil {
			return PageSignIn
		}
		return page
	}
	return PageHome
}

// SubmitSearch records the requested stay window and moves to room selection.
// Missing dates fall back to the default stay; order does not matter.
func (c *Controller) SubmitSearch(ctx context.Context, arrival, departure time.Time) (err error) {
	logger := c.loggerWith(ctx, "SubmitSearch")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "search rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "search submitted")
	}()

	defaultArrival, defaultDeparture := reservation.DefaultStay(c.now())
	if arrival.IsZero() {
		arrival = defaultArrival
	}
	if departure.IsZero() {
		departure = defaultDeparture
	}

	c.mu.Lock()
	c.session.Dates = DateRange{
		Arrival:   reservation.Normalize(arrival),
		Departure: reservation.Normalize(departure),
	}
	c.session.CurrentPage = PageRoomSelection
	c.mu.Unlock()
	return nil
}

// InspectSuite selects a suite and opens its detail page.
func (c *Controller) InspectSuite(ctx context.Context, suiteID string) (err error) {
	logger := c.loggerWith(ctx, "InspectSuite", "suite_id", suiteID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "suite inspection failed", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	suite, villaID, err := c.findSuite(ctx, suiteID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.session.SelectedVilla = villaID
	c.session.SelectedSuite = suite.ID
	c.session.CurrentPage = PageSuiteDetail
	c.mu.Unlock()
	return nil
}

// ChooseSuite selects a suite and moves straight to checkout, skipping the
// detail page.
func (c *Controller) ChooseSuite(ctx context.Context, suiteID string) (err error) {
	logger := c.loggerWith(ctx, "ChooseSuite", "suite_id", suiteID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "suite selection failed", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	suite, villaID, err := c.findSuite(ctx, suiteID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.session.SelectedVilla = villaID
	c.session.SelectedSuite = suite.ID
	c.session.CurrentPage = PageCheckoutDetails
	c.mu.Unlock()
	return nil
}

// BookSelected advances from the suite detail page to checkout.
func (c *Controller) BookSelected(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.SelectedSuite == "" {
		return ErrNoSelectedSuite
	}
	c.session.CurrentPage = PageCheckoutDetails
	return nil
}

// Back steps one screen towards the start of the funnel.
func (c *Controller) Back() Page {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.session.CurrentPage {
	case PagePayment:
		c.session.CurrentPage = PageCheckoutDetails
	case PageCheckoutDetails:
		if c.session.SelectedSuite != "" {
			c.session.CurrentPage = PageSuiteDetail
		} else {
			c.session.CurrentPage = PageRoomSelection
		}
	case PageSuiteDetail:
		c.session.CurrentPage = PageRoomSelection
	case PageSignUp:
		c.session.CurrentPage = PageSignIn
	case PageHome:
		// Already at the start.
	default:
		c.session.CurrentPage = PageHome
	}
	return c.resolveLocked()
}

// SubmitGuestDetails validates the checkout form and moves to payment.
func (c *Controller) SubmitGuestDetails(ctx context.Context, details GuestDetails) (err error) {
	logger := c.loggerWith(ctx, "SubmitGuestDetails")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "guest details rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "guest details accepted")
	}()

	details.FirstName = strings.TrimSpace(details.FirstName)
	details.LastName = strings.TrimSpace(details.LastName)
	details.Email = strings.TrimSpace(details.Email)
	details.Phone = strings.TrimSpace(details.Phone)

	vErr := &ValidationError{}
	if details.FirstName == "" {
		vErr.add("firstName", "first name is required")
	}
	if details.LastName == "" {
		vErr.add("lastName", "last name is required")
	}
	if details.Email == "" || !strings.Contains(details.Email, "@") {
		vErr.add("email", "a valid email address is required")
	}
	if vErr.HasErrors() {
		return vErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.SelectedSuite == "" {
		return ErrNoSelectedSuite
	}
	c.session.Guest = details
	c.session.CurrentPage = PagePayment
	return nil
}

// Quote prices the currently selected suite over the session's stay window.
func (c *Controller) Quote(ctx context.Context) (reservation.Quote, error) {
	c.mu.Lock()
	villaID := c.session.SelectedVilla
	suiteID := c.session.SelectedSuite
	dates := c.session.Dates
	c.mu.Unlock()

	if suiteID == "" {
		return reservation.Quote{}, ErrNoSelectedSuite
	}
	suite, err := c.catalog.Suite(ctx, villaID, suiteID)
	if err != nil {
		return reservation.Quote{}, fmt.Errorf("%w: suite %s", ErrNotFound, suiteID)
	}
	return reservation.QuoteStay(suite.NightlyRate, dates.Arrival, dates.Departure, c.serviceFee)
}

// ConfirmPayment finalizes the stay: it prices the selection, mints a booking
// with a fresh code, appends it to the history and moves to the confirmation
// page. The suite selection and guest details are cleared so a stale checkout
// cannot be replayed.
func (c *Controller) ConfirmPayment(ctx context.Context) (booking reservation.Booking, err error) {
	logger := c.loggerWith(ctx, "ConfirmPayment")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "payment confirmation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"booking_id", booking.ID,
			"booking_code", booking.Code,
			"total", booking.Total,
		).InfoContext(ctx, "booking confirmed")
	}()

	c.mu.Lock()
	villaID := c.session.SelectedVilla
	suiteID := c.session.SelectedSuite
	dates := c.session.Dates
	c.mu.Unlock()

	if suiteID == "" {
		err = ErrNoSelectedSuite
		return
	}

	villa, err := c.catalog.Villa(ctx, villaID)
	if err != nil {
		err = fmt.Errorf("%w: villa %s", ErrNotFound, villaID)
		return
	}
	suite, err := c.catalog.Suite(ctx, villaID, suiteID)
	if err != nil {
		err = fmt.Errorf("%w: suite %s", ErrNotFound, suiteID)
		return
	}

	quote, err := reservation.QuoteStay(suite.NightlyRate, dates.Arrival, dates.Departure, c.serviceFee)
	if err != nil {
		return
	}
	code, err := c.codes.Next()
	if err != nil {
		return
	}

	booking = reservation.Booking{
		ID:            c.idGenerator(),
		Code:          code,
		VillaID:       villa.ID,
		VillaName:     villa.Name,
		SuiteID:       suite.ID,
		SuiteName:     suite.Name,
		ArrivalDate:   dates.Arrival,
		DepartureDate: dates.Departure,
		Total:         quote.Total,
		Status:        reservation.StatusConfirmed,
		CreatedAt:     c.now().UTC(),
	}
	if err = c.gateway.AppendBooking(ctx, booking); err != nil {
		booking = reservation.Booking{}
		err = fmt.Errorf("persist booking: %w", err)
		return
	}

	c.mu.Lock()
	c.session.CurrentBooking = &booking
	c.session.SelectedVilla = ""
	c.session.SelectedSuite = ""
	c.session.Guest = GuestDetails{}
	c.session.CurrentPage = PageConfirmation
	c.mu.Unlock()
	return booking, nil
}

// ReturnHome leaves the confirmation page and resets the stay window to the
// default for the next search.
func (c *Controller) ReturnHome() {
	arrival, departure := reservation.DefaultStay(c.now())

	c.mu.Lock()
	c.session.CurrentBooking = nil
	c.session.Dates = DateRange{Arrival: arrival, Departure: departure}
	c.session.CurrentPage = PageHome
	c.mu.Unlock()
}

// NavigateTo jumps to a named page. Guarded pages redirect: account pages
// send a signed-out guest to sign-in and remember where they were headed.
func (c *Controller) NavigateTo(ctx context.Context, page Page) Page {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page.RequiresUser() && c.session.User == nil {
		c.pending = &page
		c.session.CurrentPage = PageSignIn
		return PageSignIn
	}
	if page.RequiresSuite() && c.session.SelectedSuite == "" {
		c.session.CurrentPage = PageHome
		return PageHome
	}
	c.session.CurrentPage = page
	return page
}

// SignIn authenticates the guest, persists the profile and lands on whatever
// page originally demanded the sign-in, or home.
func (c *Controller) SignIn(ctx context.Context, creds identity.Credentials) (identity.User, error) {
	return c.establishUser(ctx, "SignIn", func() (identity.User, error) {
		return c.auth.Authenticate(ctx, creds)
	})
}

// SignUp registers the guest and continues like a sign-in.
func (c *Controller) SignUp(ctx context.Context, creds identity.Credentials) (identity.User, error) {
	return c.establishUser(ctx, "SignUp", func() (identity.User, error) {
		return c.auth.Register(ctx, creds)
	})
}

func (c *Controller) establishUser(ctx context.Context, operation string, authenticate func() (identity.User, error)) (user identity.User, err error) {
	logger := c.loggerWith(ctx, operation)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "authentication failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "guest signed in", "user_id", user.ID)
	}()

	user, err = authenticate()
	if err != nil {
		return identity.User{}, err
	}
	if err = c.gateway.SaveUser(ctx, user); err != nil {
		return identity.User{}, fmt.Errorf("persist user: %w", err)
	}

	c.mu.Lock()
	c.session.User = &user
	if c.pending != nil {
		c.session.CurrentPage = *c.pending
		c.pending = nil
	} else {
		c.session.CurrentPage = PageHome
	}
	c.mu.Unlock()
	return user, nil
}

// UpdateProfile applies edits to the signed-in profile and persists them.
func (c *Controller) UpdateProfile(ctx context.Context, firstName, lastName string) (identity.User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	vErr := &ValidationError{}
	if firstName == "" {
		vErr.add("firstName", "first name is required")
	}
	if lastName == "" {
		vErr.add("lastName", "last name is required")
	}
	if vErr.HasErrors() {
		return identity.User{}, vErr
	}

	c.mu.Lock()
	if c.session.User == nil {
		c.mu.Unlock()
		return identity.User{}, ErrNotSignedIn
	}
	updated := *c.session.User
	updated.FirstName = firstName
	updated.LastName = lastName
	c.session.User = &updated
	c.mu.Unlock()

	if err := c.gateway.SaveUser(ctx, updated); err != nil {
		return identity.User{}, fmt.Errorf("persist user: %w", err)
	}
	return updated, nil
}

// Logout clears the signed-in guest from the session and the durable store,
// then returns home. Bookings and favorites are kept.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.gateway.ClearUser(ctx); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}

	c.mu.Lock()
	c.session.User = nil
	c.pending = nil
	c.session.CurrentPage = PageHome
	c.mu.Unlock()
	return nil
}

// ToggleFavorite flips a suite in or out of the favorites list.
func (c *Controller) ToggleFavorite(ctx context.Context, suiteID string) (bool, error) {
	if _, _, err := c.findSuite(ctx, suiteID); err != nil {
		return false, err
	}
	return c.gateway.ToggleFavorite(ctx, suiteID)
}

// Favorites resolves the persisted favorite suite IDs to catalog suites.
// Favorites that left the catalog are skipped.
func (c *Controller) Favorites(ctx context.Context) []catalog.Suite {
	ids := c.gateway.LoadFavorites(ctx)
	suites := make([]catalog.Suite, 0, len(ids))
	for _, id := range ids {
		suite, _, err := c.findSuite(ctx, id)
		if err != nil {
			continue
		}
		suites = append(suites, suite)
	}
	return suites
}

// BookingHistory returns every persisted booking, newest first.
func (c *Controller) BookingHistory(ctx context.Context) []reservation.Booking {
	bookings := c.gateway.LoadBookings(ctx)
	for i, j := 0, len(bookings)-1; i < j; i, j = i+1, j-1 {
		bookings[i], bookings[j] = bookings[j], bookings[i]
	}
	return bookings
}

// ActiveBookings returns the bookings still active today, in insertion order.
func (c *Controller) ActiveBookings(ctx context.Context) []reservation.Booking {
	return c.gateway.ActiveBookings(ctx, c.now())
}

func (c *Controller) findSuite(ctx context.Context, suiteID string) (catalog.Suite, string, error) {
	villaID := c.villaID
	if villaID == "" {
		villas, err := c.catalog.Villas(ctx)
		if err != nil || len(villas) == 0 {
			return catalog.Suite{}, "", fmt.Errorf("%w: no villas in catalog", ErrNotFound)
		}
		villaID = villas[0].ID
	}
	suite, err := c.catalog.Suite(ctx, villaID, suiteID)
	if err != nil {
		return catalog.Suite{}, "", fmt.Errorf("%w: suite %s", ErrNotFound, suiteID)
	}
	return suite, villaID, nil
}
