package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/household/internal/model"
	"github.com/dukerupert/household/internal/store"
	"github.com/dukerupert/household/internal/websocket"
)

type TemplateHandler struct {
	base
	store *store.TemplateStore
}

func NewTemplateHandler(s *store.TemplateStore, hub *websocket.Hub, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{base: base{hub: hub, logger: logger}, store: s}
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	templates, err := h.store.List(r.Context(), userID)
	if err != nil {
		h.fail(w, err, "list templates")
		return
	}
	if templates == nil {
		templates = []model.GroceryTemplate{}
	}
	writeJSON(w, http.StatusOK, templates)
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.GroceryTemplateCreate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	t, err := h.store.Create(r.Context(), req)
	if err != nil {
		h.fail(w, err, "create template")
		return
	}
	h.broadcast("grocery_template", "created", t.ID)
	writeJSON(w, http.StatusCreated, t)
}

// Get returns the template with its items.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	t, err := h.store.GetWithItems(r.Context(), id)
	if err != nil {
		h.fail(w, err, "get template")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req model.GroceryTemplateUpdate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if blank(req.Name) {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	req.Name = trimPtr(req.Name)

	t, err := h.store.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, err, "update template")
		return
	}
	h.broadcast("grocery_template", "updated", t.ID)
	writeJSON(w, http.StatusOK, t)
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "delete template")
		return
	}
	h.broadcast("grocery_template", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *TemplateHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req model.GroceryTemplateItemCreate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ItemID == 0 {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}

	ti, err := h.store.AddItem(r.Context(), id, req)
	if err != nil {
		h.fail(w, err, "add template item")
		return
	}
	h.broadcast("grocery_template", "updated", id)
	writeJSON(w, http.StatusCreated, ti)
}

func (h *TemplateHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	itemID, err := parsePathInt(r, "item_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item_id")
		return
	}

	if err := h.store.RemoveItem(r.Context(), id, itemID); err != nil {
		h.fail(w, err, "remove template item")
		return
	}
	h.broadcast("grocery_template", "updated", id)
	w.WriteHeader(http.StatusNoContent)
}

// Apply expands the template onto the list of the user named by ?user_id=.
func (h *TemplateHandler) Apply(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	app, err := h.store.Apply(r.Context(), id, userID)
	if err != nil {
		h.fail(w, err, "apply template")
		return
	}
	h.logger.Info("template applied", "template_id", id, "user_id", userID, "items_added", app.ItemsAdded)
	h.broadcast("grocery_template", "applied", id)
	writeJSON(w, http.StatusCreated, app)
}
