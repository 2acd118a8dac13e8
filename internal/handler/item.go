package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/household/internal/model"
	"github.com/dukerupert/household/internal/store"
	"github.com/dukerupert/household/internal/websocket"
)

type ItemHandler struct {
	base
	store *store.ItemStore
}

func NewItemHandler(s *store.ItemStore, hub *websocket.Hub, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{base: base{hub: hub, logger: logger}, store: s}
}

// List supports ?store_id= (items sold there or anywhere) and ?section=.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := queryInt64(r, "store_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid store_id")
		return
	}
	filter := model.ItemFilter{StoreID: storeID, Section: queryString(r, "section")}

	items, err := h.store.List(r.Context(), filter)
	if err != nil {
		h.fail(w, err, "list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ItemCreate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	it, err := h.store.Create(r.Context(), req)
	if err != nil {
		h.fail(w, err, "create item")
		return
	}
	h.broadcast("item", "created", it.ID)
	writeJSON(w, http.StatusCreated, it)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	it, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, err, "get item")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req model.ItemUpdate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if blank(req.Name) {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	req.Name = trimPtr(req.Name)

	it, err := h.store.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, err, "update item")
		return
	}
	h.broadcast("item", "updated", it.ID)
	writeJSON(w, http.StatusOK, it)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "delete item")
		return
	}
	h.broadcast("item", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) GetStores(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	stores, err := h.store.GetStores(r.Context(), id)
	if err != nil {
		h.fail(w, err, "get item stores")
		return
	}
	writeJSON(w, http.StatusOK, stores)
}

// SetStores replaces the item's store set with the body's store_ids.
func (h *ItemHandler) SetStores(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		StoreIDs []int64 `json:"store_ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	stores, err := h.store.SetStores(r.Context(), id, req.StoreIDs)
	if err != nil {
		h.fail(w, err, "set item stores")
		return
	}
	h.broadcast("item", "updated", id)
	writeJSON(w, http.StatusOK, stores)
}
