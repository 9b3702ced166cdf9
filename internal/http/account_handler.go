package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/villays/internal/funnel"
	"github.com/example/villays/internal/identity"
)

// AccountHandler serves sign-in, sign-up, sign-out and the profile page.
type AccountHandler struct {
	responder responder
	logger    *slog.Logger
}

func NewAccountHandler(logger *slog.Logger) *AccountHandler {
	base := fallbackLogger(logger)
	return &AccountHandler{responder: newResponder(base), logger: base}
}

func (h *AccountHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "AccountHandler", operation, attrs...)
}

func (h *AccountHandler) visitor(w http.ResponseWriter, r *http.Request) (*Visitor, bool) {
	visitor, ok := VisitorFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, errMissingVisitor)
		return nil, false
	}
	return visitor, true
}

// SignIn authenticates the guest.
func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.responder.handleServiceError(r.Context(), w, validationError(err))
		return
	}

	user, err := visitor.Controller.SignIn(r.Context(), identity.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.log(r.Context(), "SignIn", "user_id", user.ID).InfoContext(r.Context(), "guest signed in")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, newUserResponse(user))
}

// SignUp registers a new guest.
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}

	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.responder.handleServiceError(r.Context(), w, validationError(err))
		return
	}

	user, err := visitor.Controller.SignUp(r.Context(), identity.Credentials{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.log(r.Context(), "SignUp", "user_id", user.ID).InfoContext(r.Context(), "guest registered")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, newUserResponse(user))
}

// SignOut clears the signed-in guest.
func (h *AccountHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	if err := visitor.Controller.Logout(r.Context()); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// GetProfile returns the signed-in guest's profile.
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}
	session := visitor.Controller.Current()
	if session.User == nil {
		h.responder.handleServiceError(r.Context(), w, funnel.ErrNotSignedIn)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, newUserResponse(*session.User))
}

// UpdateProfile applies edits to the signed-in guest's profile.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	visitor, ok := h.visitor(w, r)
	if !ok {
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.responder.handleServiceError(r.Context(), w, validationError(err))
		return
	}

	user, err := visitor.Controller.UpdateProfile(r.Context(), req.FirstName, req.LastName)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, newUserResponse(user))
}
