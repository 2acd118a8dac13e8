package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/household/internal/model"
	"github.com/dukerupert/household/internal/store"
	"github.com/dukerupert/household/internal/websocket"
)

type ProviderHandler struct {
	base
	store *store.ProviderStore
}

func NewProviderHandler(s *store.ProviderStore, hub *websocket.Hub, logger *slog.Logger) *ProviderHandler {
	return &ProviderHandler{base: base{hub: hub, logger: logger}, store: s}
}

func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, err, "list providers")
		return
	}
	if providers == nil {
		providers = []model.Provider{}
	}
	writeJSON(w, http.StatusOK, providers)
}

func (h *ProviderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ProviderCreate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	p, err := h.store.Create(r.Context(), req)
	if err != nil {
		h.fail(w, err, "create provider")
		return
	}
	h.broadcast("provider", "created", p.ID)
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProviderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	p, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, err, "get provider")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProviderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req model.ProviderUpdate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if blank(req.Name) {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	req.Name = trimPtr(req.Name)

	p, err := h.store.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, err, "update provider")
		return
	}
	h.broadcast("provider", "updated", p.ID)
	writeJSON(w, http.StatusOK, p)
}

func (h *ProviderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "delete provider")
		return
	}
	h.broadcast("provider", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
