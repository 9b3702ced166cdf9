package http

import (
	"log/slog"
	"net/http"

	"github.com/example/villays/internal/catalog"
)

// CatalogHandler serves read-only villa and suite reference data.
type CatalogHandler struct {
	provider  catalog.Provider
	responder responder
	logger    *slog.Logger
}

func NewCatalogHandler(provider catalog.Provider, logger *slog.Logger) *CatalogHandler {
	base := fallbackLogger(logger)
	return &CatalogHandler{provider: provider, responder: newResponder(base), logger: base}
}

// List returns every villa.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	villas, err := h.provider.Villas(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	payload := make([]villaResponse, len(villas))
	for i, villa := range villas {
		payload[i] = newVillaResponse(villa)
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}

// Get returns one villa by ID.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request, villaID string) {
	if villaID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidVillaID)
		return
	}
	villa, err := h.provider.Villa(r.Context(), villaID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, newVillaResponse(villa))
}
