package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/example/villays/internal/funnel"
	"github.com/example/villays/internal/reservation"
)

// BookingHandler serves the booking history and active bookings pages.
type BookingHandler struct {
	responder responder
	logger    *slog.Logger
	now       func() time.Time
}

func NewBookingHandler(now func() time.Time, logger *slog.Logger) *BookingHandler {
	base := fallbackLogger(logger)
	if now == nil {
		now = time.Now
	}
	return &BookingHandler{responder: newResponder(base), logger: base, now: now}
}

func (h *BookingHandler) visitor(w http.ResponseWriter, r *http.Request) (*Visitor, bool) {
	visitor, ok := VisitorFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, errMissingVisitor)
		return nil, false
	}
	return visitor, true
}

// List returns every booking, newest first. Requires a signed-in guest.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	if visitor.Controller.Current().User == nil {
		h.responder.handleServiceError(r.Context(), w, funnel.ErrNotSignedIn)
		return
	}

	bookings := visitor.Controller.BookingHistory(r.Context())
	payload := make([]bookingResponse, len(bookings))
	for i, booking := range bookings {
		payload[i] = newBookingResponse(booking)
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}

// Active returns bookings still active today, each classified by how close
// check-in is. Requires a signed-in guest.
func (h *BookingHandler) Active(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	if visitor.Controller.Current().User == nil {
		h.responder.handleServiceError(r.Context(), w, funnel.ErrNotSignedIn)
		return
	}

	today := reservation.Normalize(h.now())
	bookings := visitor.Controller.ActiveBookings(r.Context())
	payload := make([]bookingResponse, len(bookings))
	for i, booking := range bookings {
		payload[i] = newActiveBookingResponse(booking, today)
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}
