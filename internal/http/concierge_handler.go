package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/villays/internal/concierge"
)

// ConciergeHandler relays guest conversations to the concierge service.
type ConciergeHandler struct {
	service   *concierge.Service
	responder responder
	logger    *slog.Logger
}

func NewConciergeHandler(service *concierge.Service, logger *slog.Logger) *ConciergeHandler {
	base := fallbackLogger(logger)
	return &ConciergeHandler{service: service, responder: newResponder(base), logger: base}
}

// Chat returns the concierge's reply to the conversation so far.
func (h *ConciergeHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req conciergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.responder.handleServiceError(r.Context(), w, validationError(err))
		return
	}
	if len(req.Messages) == 0 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errEmptyConversation)
		return
	}

	history := make([]concierge.Turn, len(req.Messages))
	for i, msg := range req.Messages {
		history[i] = concierge.Turn{Role: concierge.Role(msg.Role), Text: msg.Text}
	}

	reply, err := h.service.Reply(r.Context(), history)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, conciergeResponse{Reply: reply})
}
