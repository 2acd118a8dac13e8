package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/household/internal/model"
	"github.com/dukerupert/household/internal/store"
	"github.com/dukerupert/household/internal/websocket"
)

type StoreHandler struct {
	base
	store *store.StoreStore
}

func NewStoreHandler(s *store.StoreStore, hub *websocket.Hub, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{base: base{hub: hub, logger: logger}, store: s}
}

func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, err, "list stores")
		return
	}
	if stores == nil {
		stores = []model.Store{}
	}
	writeJSON(w, http.StatusOK, stores)
}

func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	st, err := h.store.Create(r.Context(), req.Name)
	if err != nil {
		h.fail(w, err, "create store")
		return
	}
	h.broadcast("store", "created", st.ID)
	writeJSON(w, http.StatusCreated, st)
}

func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	st, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, err, "get store")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req model.StoreUpdate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if blank(req.Name) {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	req.Name = trimPtr(req.Name)

	st, err := h.store.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, err, "update store")
		return
	}
	h.broadcast("store", "updated", st.ID)
	writeJSON(w, http.StatusOK, st)
}

func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "delete store")
		return
	}
	h.broadcast("store", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
