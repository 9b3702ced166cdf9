package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/villays/internal/catalog"
	"github.com/example/villays/internal/concierge"
	"github.com/example/villays/internal/funnel"
	"github.com/example/villays/internal/identity"
	"github.com/example/villays/internal/persistence"
	"github.com/example/villays/internal/persistence/memory"
	"github.com/example/villays/internal/promo"
	"github.com/example/villays/internal/reservation"
)

func testNow() time.Time {
	return time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	durable := memory.NewStore()
	provider := catalog.NewStaticProvider()
	codes := reservation.NewCodeGenerator("OT", testNow)

	manager := NewVisitorManager(func(ctx context.Context, token string, start time.Time) *Visitor {
		gateway := persistence.NewGateway(durable, memory.NewStore(), nil)
		controller := funnel.NewController(funnel.ControllerConfig{
			Catalog:    provider,
			Gateway:    gateway,
			Auth:       identity.NewMockProvider(identity.WithMockDelay(0)),
			Codes:      codes,
			ServiceFee: 480,
			Now:        testNow,
		})
		controller.Rehydrate(ctx)
		planner := promo.NewPlanner(start, testNow,
			promo.WelcomeOffer(gateway, 0),
			promo.Banner(gateway, 0),
			promo.RateCard(gateway, 0, 5*time.Minute, testNow),
		)
		return &Visitor{Token: token, Controller: controller, Planner: planner}
	}, time.Hour, testNow)

	conciergeService := concierge.NewService(nil, concierge.NewCannedResponder(concierge.WithCannedDelay(0)), nil)

	router := NewRouter(RouterConfig{
		Funnel:    NewFunnelHandler("USD", testNow, nil),
		Account:   NewAccountHandler(nil),
		Bookings:  NewBookingHandler(testNow, nil),
		Catalog:   NewCatalogHandler(provider, nil),
		Concierge: NewConciergeHandler(conciergeService, nil),
		Promos:    NewPromoHandler(nil),
		Middleware: []func(http.Handler) http.Handler{
			VisitorSession(manager),
		},
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

type testClient struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func (c *testClient) do(method, path string, body any) (*http.Response, []byte) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, c.server.URL+path, reader)
	if err != nil {
		c.t.Fatalf("build request: %v", err)
	}
	if c.token != "" {
		req.Header.Set(VisitorTokenHeader, c.token)
	}

	resp, err := c.server.Client().Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if token := resp.Header.Get(VisitorTokenHeader); token != "" {
		c.token = token
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("read response body: %v", err)
	}
	return resp, payload
}

func TestBookingFlowOverHTTP(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	client := &testClient{t: t, server: server}

	resp, payload := client.do(http.MethodGet, "/state", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /state = %d: %s", resp.StatusCode, payload)
	}
	if client.token == "" {
		t.Fatal("expected a visitor token on the first response")
	}
	var state stateResponse
	if err := json.Unmarshal(payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Page != "home" {
		t.Errorf("expected home page, got %q", state.Page)
	}

	resp, payload = client.do(http.MethodPost, "/search", searchRequest{
		ArrivalDate:   "2026-09-10",
		DepartureDate: "2026-09-17",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /search = %d: %s", resp.StatusCode, payload)
	}

	resp, payload = client.do(http.MethodPost, "/suites/suite-garden/select", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select suite = %d: %s", resp.StatusCode, payload)
	}

	resp, payload = client.do(http.MethodGet, "/quote", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /quote = %d: %s", resp.StatusCode, payload)
	}
	var quote quoteResponse
	if err := json.Unmarshal(payload, &quote); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if want := int64(1650*7 + 480); quote.Total != want {
		t.Errorf("quote total = %d, want %d", quote.Total, want)
	}
	if quote.Payment.VirtualAccountNumber == "" {
		t.Error("expected payment instructions with a virtual account number")
	}

	resp, payload = client.do(http.MethodPost, "/details", guestDetailsRequest{
		FirstName: "Eugene",
		LastName:  "Mendes",
		Email:     "eugene@example.com",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /details = %d: %s", resp.StatusCode, payload)
	}

	resp, payload = client.do(http.MethodPost, "/payment", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /payment = %d: %s", resp.StatusCode, payload)
	}
	var booking bookingResponse
	if err := json.Unmarshal(payload, &booking); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if booking.Total != quote.Total {
		t.Errorf("booking total %d, want %d", booking.Total, quote.Total)
	}
	if booking.Status != "confirmed" {
		t.Errorf("booking status %q", booking.Status)
	}

	// The session sticks to the token.
	resp, payload = client.do(http.MethodGet, "/state", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /state = %d: %s", resp.StatusCode, payload)
	}
	if err := json.Unmarshal(payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Page != "confirmation" {
		t.Errorf("expected confirmation page, got %q", state.Page)
	}
	if state.CurrentBooking == nil || state.CurrentBooking.BookingCode != booking.BookingCode {
		t.Errorf("expected the confirmed booking in state, got %+v", state.CurrentBooking)
	}
}

func TestAccountAndBookingsOverHTTP(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	client := &testClient{t: t, server: server}

	resp, payload := client.do(http.MethodGet, "/bookings", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("GET /bookings while signed out = %d: %s", resp.StatusCode, payload)
	}

	resp, payload = client.do(http.MethodPost, "/auth/signin", signInRequest{
		Email:    "guest@example.com",
		Password: "secret12",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /auth/signin = %d: %s", resp.StatusCode, payload)
	}
	var user userResponse
	if err := json.Unmarshal(payload, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.FirstName != "Eugene" || user.Points != 350 {
		t.Errorf("unexpected fabricated profile %+v", user)
	}

	resp, payload = client.do(http.MethodGet, "/bookings", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /bookings = %d: %s", resp.StatusCode, payload)
	}

	resp, payload = client.do(http.MethodPut, "/profile", profileUpdateRequest{FirstName: "Ada", LastName: "Byron"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT /profile = %d: %s", resp.StatusCode, payload)
	}
	if err := json.Unmarshal(payload, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.FirstName != "Ada" {
		t.Errorf("expected updated first name, got %q", user.FirstName)
	}

	resp, _ = client.do(http.MethodPost, "/auth/signout", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("POST /auth/signout = %d", resp.StatusCode)
	}
	resp, _ = client.do(http.MethodGet, "/profile", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("GET /profile after signout = %d", resp.StatusCode)
	}
}

func TestValidationErrorsOverHTTP(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	client := &testClient{t: t, server: server}

	resp, payload := client.do(http.MethodPost, "/auth/signin", signInRequest{Email: "not-an-email"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.StatusCode, payload)
	}
	var errResp errorResponse
	if err := json.Unmarshal(payload, &errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if _, ok := errResp.Errors["email"]; !ok {
		t.Errorf("expected a field error for email, got %v", errResp.Errors)
	}
	if _, ok := errResp.Errors["password"]; !ok {
		t.Errorf("expected a field error for password, got %v", errResp.Errors)
	}
}

func TestGuardsOverHTTP(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	client := &testClient{t: t, server: server}

	resp, payload := client.do(http.MethodPost, "/payment", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("payment without a selection = %d: %s", resp.StatusCode, payload)
	}

	resp, payload = client.do(http.MethodPost, "/suites/no-such-suite/select", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown suite = %d: %s", resp.StatusCode, payload)
	}

	resp, payload = client.do(http.MethodPost, "/navigate", navigateRequest{Page: "booking-history"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /navigate = %d: %s", resp.StatusCode, payload)
	}
	var state stateResponse
	if err := json.Unmarshal(payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Page != "sign-in" {
		t.Errorf("expected redirect to sign-in, got %q", state.Page)
	}
}

func TestFavoritesRequireSignInOverHTTP(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	client := &testClient{t: t, server: server}

	resp, payload := client.do(http.MethodGet, "/favorites", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("GET /favorites while signed out = %d: %s", resp.StatusCode, payload)
	}

	resp, payload = client.do(http.MethodPost, "/navigate", navigateRequest{Page: "favorite-rooms"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /navigate = %d: %s", resp.StatusCode, payload)
	}
	var state stateResponse
	if err := json.Unmarshal(payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Page != "sign-in" {
		t.Errorf("expected favorite-rooms to redirect to sign-in, got %q", state.Page)
	}

	resp, payload = client.do(http.MethodPost, "/auth/signin", signInRequest{
		Email:    "guest@example.com",
		Password: "secret12",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /auth/signin = %d: %s", resp.StatusCode, payload)
	}

	resp, payload = client.do(http.MethodPost, "/suites/suite-pool/favorite", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle favorite = %d: %s", resp.StatusCode, payload)
	}
	resp, payload = client.do(http.MethodGet, "/favorites", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /favorites = %d: %s", resp.StatusCode, payload)
	}
	var suites []suiteResponse
	if err := json.Unmarshal(payload, &suites); err != nil {
		t.Fatalf("decode favorites: %v", err)
	}
	if len(suites) != 1 || suites[0].ID != "suite-pool" {
		t.Errorf("unexpected favorites payload %+v", suites)
	}
}

func TestCatalogAndConciergeOverHTTP(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	client := &testClient{t: t, server: server}

	resp, payload := client.do(http.MethodGet, "/villas", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /villas = %d: %s", resp.StatusCode, payload)
	}
	var villas []villaResponse
	if err := json.Unmarshal(payload, &villas); err != nil {
		t.Fatalf("decode villas: %v", err)
	}
	if len(villas) == 0 || len(villas[0].Suites) != 3 {
		t.Fatalf("unexpected catalog payload %+v", villas)
	}

	resp, payload = client.do(http.MethodGet, "/villas/"+villas[0].ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /villas/{id} = %d: %s", resp.StatusCode, payload)
	}

	resp, payload = client.do(http.MethodPost, "/concierge", conciergeRequest{
		Messages: []conciergeTurn{{Role: "user", Text: "Good evening"}},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /concierge = %d: %s", resp.StatusCode, payload)
	}
	var reply conciergeResponse
	if err := json.Unmarshal(payload, &reply); err != nil {
		t.Fatalf("decode concierge reply: %v", err)
	}
	if reply.Reply == "" {
		t.Error("expected a non-empty concierge reply")
	}
}

func TestPopupsOverHTTP(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	client := &testClient{t: t, server: server}

	resp, payload := client.do(http.MethodGet, "/popups", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /popups = %d: %s", resp.StatusCode, payload)
	}
	var popups popupsResponse
	if err := json.Unmarshal(payload, &popups); err != nil {
		t.Fatalf("decode popups: %v", err)
	}
	if len(popups.Due) != 3 {
		t.Fatalf("expected all surfaces due with zero delays, got %v", popups.Due)
	}

	resp, _ = client.do(http.MethodPost, "/popups/welcome-offer/dismiss", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("dismiss = %d", resp.StatusCode)
	}
	_, payload = client.do(http.MethodGet, "/popups", nil)
	if err := json.Unmarshal(payload, &popups); err != nil {
		t.Fatalf("decode popups: %v", err)
	}
	for _, name := range popups.Due {
		if name == "welcome-offer" {
			t.Error("welcome offer should stay dismissed")
		}
	}

	resp, _ = client.do(http.MethodPost, "/popups/mystery/dismiss", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown popup dismiss = %d", resp.StatusCode)
	}
}

func TestVisitorIsolation(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	first := &testClient{t: t, server: server}
	second := &testClient{t: t, server: server}

	resp, payload := first.do(http.MethodPost, "/search", searchRequest{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /search = %d: %s", resp.StatusCode, payload)
	}

	resp, payload = second.do(http.MethodGet, "/state", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /state = %d: %s", resp.StatusCode, payload)
	}
	var state stateResponse
	if err := json.Unmarshal(payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Page != "home" {
		t.Errorf("expected the second visitor to start at home, got %q", state.Page)
	}
	if first.token == second.token {
		t.Error("expected distinct visitor tokens")
	}
}
