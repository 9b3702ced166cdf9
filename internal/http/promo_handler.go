package http

import (
	"net/http"

	"log/slog"
)

// PromoHandler serves the promotional popup schedule for the visitor.
type PromoHandler struct {
	responder responder
	logger    *slog.Logger
}

func NewPromoHandler(logger *slog.Logger) *PromoHandler {
	base := fallbackLogger(logger)
	return &PromoHandler{responder: newResponder(base), logger: base}
}

func (h *PromoHandler) visitor(w http.ResponseWriter, r *http.Request) (*Visitor, bool) {
	visitor, ok := VisitorFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, errMissingVisitor)
		return nil, false
	}
	return visitor, true
}

// Due lists the popups currently due for the visitor.
func (h *PromoHandler) Due(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	due := visitor.Planner.Due(r.Context())
	h.responder.writeJSON(r.Context(), w, http.StatusOK, popupsResponse{Due: due})
}

// Dismiss records the guest closing a popup.
func (h *PromoHandler) Dismiss(w http.ResponseWriter, r *http.Request, name string) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	if !visitor.Planner.Dismiss(r.Context(), name) {
		h.responder.writeError(r.Context(), w, http.StatusNotFound, errUnknownPopup)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
