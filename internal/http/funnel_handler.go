package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/villays/internal/funnel"
)

// FunnelHandler serves the booking funnel itself: session state, the search
// form, suite selection, checkout and payment.
type FunnelHandler struct {
	responder responder
	logger    *slog.Logger
	currency  string
	now       func() time.Time
}

func NewFunnelHandler(currency string, now func() time.Time, logger *slog.Logger) *FunnelHandler {
	base := fallbackLogger(logger)
	if now == nil {
		now = time.Now
	}
	return &FunnelHandler{responder: newResponder(base), logger: base, currency: currency, now: now}
}

func (h *FunnelHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "FunnelHandler", operation, attrs...)
}

func (h *FunnelHandler) visitor(w http.ResponseWriter, r *http.Request) (*Visitor, bool) {
	visitor, ok := VisitorFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, errMissingVisitor)
		return nil, false
	}
	return visitor, true
}

// State renders the current funnel state for the visitor.
func (h *FunnelHandler) State(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	session := visitor.Controller.Current()
	resolved := visitor.Controller.Resolve()
	h.responder.writeJSON(r.Context(), w, http.StatusOK, newStateResponse(session, resolved))
}

// Search records the stay window and moves to room selection.
func (h *FunnelHandler) Search(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.responder.handleServiceError(r.Context(), w, validationError(err))
		return
	}

	arrival, err := parseOptionalDate(req.ArrivalDate)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	departure, err := parseOptionalDate(req.DepartureDate)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if err := visitor.Controller.SubmitSearch(r.Context(), arrival, departure); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.State(w, r)
}

// Inspect opens a suite's detail page.
func (h *FunnelHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	suiteID, ok := SuiteIDFromContext(r.Context())
	if !ok || suiteID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSuiteID)
		return
	}

	if err := visitor.Controller.InspectSuite(r.Context(), suiteID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.State(w, r)
}

// Select picks a suite and moves straight to checkout.
func (h *FunnelHandler) Select(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	suiteID, ok := SuiteIDFromContext(r.Context())
	if !ok || suiteID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSuiteID)
		return
	}

	if err := visitor.Controller.ChooseSuite(r.Context(), suiteID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.State(w, r)
}

// Favorite toggles a suite in or out of the favorites list.
func (h *FunnelHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	suiteID, ok := SuiteIDFromContext(r.Context())
	if !ok || suiteID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSuiteID)
		return
	}

	favorite, err := visitor.Controller.ToggleFavorite(r.Context(), suiteID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.log(r.Context(), "Favorite", "suite_id", suiteID, "favorite", favorite).
		InfoContext(r.Context(), "favorite toggled")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, favoriteResponse{Favorite: favorite})
}

// Favorites lists the favorited suites. Requires a signed-in guest.
func (h *FunnelHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	if visitor.Controller.Current().User == nil {
		h.responder.handleServiceError(r.Context(), w, funnel.ErrNotSignedIn)
		return
	}
	suites := visitor.Controller.Favorites(r.Context())
	payload := make([]suiteResponse, len(suites))
	for i, suite := range suites {
		payload[i] = newSuiteResponse(suite)
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}

// Book advances from the suite detail page to checkout.
func (h *FunnelHandler) Book(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	if err := visitor.Controller.BookSelected(r.Context()); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.State(w, r)
}

// Quote prices the current selection and includes payment instructions.
func (h *FunnelHandler) Quote(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	quote, err := visitor.Controller.Quote(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, newQuoteResponse(quote, h.currency, h.now()))
}

// Details accepts the checkout form and moves to payment.
func (h *FunnelHandler) Details(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}

	var req guestDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.responder.handleServiceError(r.Context(), w, validationError(err))
		return
	}

	err := visitor.Controller.SubmitGuestDetails(r.Context(), funnel.GuestDetails{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Requests:  req.Requests,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.State(w, r)
}

// Payment confirms the stay and returns the minted booking.
func (h *FunnelHandler) Payment(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	booking, err := visitor.Controller.ConfirmPayment(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, newBookingResponse(booking))
}

// Back steps one screen towards the start of the funnel.
func (h *FunnelHandler) Back(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	visitor.Controller.Back()
	h.State(w, r)
}

// Home leaves the confirmation page and resets for the next search.
func (h *FunnelHandler) Home(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	visitor.Controller.ReturnHome()
	h.State(w, r)
}

// Navigate jumps to a named page, honoring sign-in and selection guards.
func (h *FunnelHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}

	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.responder.handleServiceError(r.Context(), w, validationError(err))
		return
	}

	page, err := funnel.ParsePage(req.Page)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	visitor.Controller.NavigateTo(r.Context(), page)
	h.State(w, r)
}
