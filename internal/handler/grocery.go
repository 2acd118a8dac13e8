package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/household/internal/model"
	"github.com/dukerupert/household/internal/store"
	"github.com/dukerupert/household/internal/websocket"
)

type GroceryHandler struct {
	base
	store *store.GroceryStore
}

func NewGroceryHandler(s *store.GroceryStore, hub *websocket.Hub, logger *slog.Logger) *GroceryHandler {
	return &GroceryHandler{base: base{hub: hub, logger: logger}, store: s}
}

// List returns one user's list. user_id is required; store_id narrows it to
// entries buyable at that store.
func (h *GroceryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	storeID, err := queryInt64(r, "store_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid store_id")
		return
	}

	entries, err := h.store.List(r.Context(), userID, storeID)
	if err != nil {
		h.fail(w, err, "list grocery items")
		return
	}
	if entries == nil {
		entries = []model.GroceryItem{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *GroceryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.GroceryItemCreate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ItemID == 0 || req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "item_id and user_id are required")
		return
	}

	gi, err := h.store.Create(r.Context(), req)
	if err != nil {
		h.fail(w, err, "create grocery item")
		return
	}
	h.broadcast("grocery_item", "created", gi.ID)
	writeJSON(w, http.StatusCreated, gi)
}

func (h *GroceryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	gi, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, err, "get grocery item")
		return
	}
	writeJSON(w, http.StatusOK, gi)
}

func (h *GroceryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req model.GroceryItemUpdate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	gi, err := h.store.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, err, "update grocery item")
		return
	}
	h.broadcast("grocery_item", "updated", gi.ID)
	writeJSON(w, http.StatusOK, gi)
}

func (h *GroceryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "delete grocery item")
		return
	}
	h.broadcast("grocery_item", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroceryHandler) ClearPurchased(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	n, err := h.store.ClearPurchased(r.Context(), userID)
	if err != nil {
		h.fail(w, err, "clear purchased items")
		return
	}
	h.broadcast("grocery_item", "cleared", userID)
	writeJSON(w, http.StatusOK, map[string]int64{"cleared": n})
}
