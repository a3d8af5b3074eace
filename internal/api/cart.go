package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/erazemk/kosarica/internal/cart"
)

// CartHandler translates presentation intents into cart store calls. Every
// intent responds with the refreshed view state, so the client re-renders
// from the response without a follow-up read.
type CartHandler struct {
	Registry *cart.Registry
}

type formRequest struct {
	Name   string `json:"name"`
	Qty    string `json:"qty"`
	Amount string `json:"amount"`
}

// store resolves the session's cart store.
func (h *CartHandler) store(r *http.Request) *cart.Store {
	return h.Registry.Get(r.Context(), GetCartID(r.Context()))
}

// View handles GET /api/cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.store(r).View())
}

// UpdateForm handles PUT /api/cart/form (the field-text-change intent).
func (h *CartHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	store := h.store(r)
	store.SetFields(req.Name, req.Qty, req.Amount)
	jsonResponse(w, http.StatusOK, store.View())
}

// Commit handles POST /api/cart/commit (the add/save intent). The body may
// carry the form fields; without a body the buffers are committed as they
// stand. Validation failures are normal state, not transport errors: the
// response is still 200 and the messages ride back in form.errors.
func (h *CartHandler) Commit(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)

	var req formRequest
	switch err := decodeJSON(r, &req); {
	case err == nil:
		store.SetFields(req.Name, req.Qty, req.Amount)
	case errors.Is(err, io.EOF):
		// No body.
	default:
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	store.Commit(r.Context())
	jsonResponse(w, http.StatusOK, store.View())
}

// BeginEdit handles POST /api/cart/items/{id}/edit.
func (h *CartHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	store.BeginEdit(r.PathValue("id"))
	jsonResponse(w, http.StatusOK, store.View())
}

// Remove handles DELETE /api/cart/items/{id}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	store.Remove(r.Context(), r.PathValue("id"))
	jsonResponse(w, http.StatusOK, store.View())
}

// CancelEdit handles POST /api/cart/edit/cancel.
func (h *CartHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	store.CancelEdit()
	jsonResponse(w, http.StatusOK, store.View())
}

// RequestClear handles POST /api/cart/clear. Items are untouched until the
// client confirms.
func (h *CartHandler) RequestClear(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	store.RequestClear()
	jsonResponse(w, http.StatusOK, store.View())
}

// ConfirmClear handles POST /api/cart/clear/confirm.
func (h *CartHandler) ConfirmClear(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	store.ConfirmClear(r.Context())
	jsonResponse(w, http.StatusOK, store.View())
}

// CancelClear handles POST /api/cart/clear/cancel.
func (h *CartHandler) CancelClear(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	store.CancelClear()
	jsonResponse(w, http.StatusOK, store.View())
}
