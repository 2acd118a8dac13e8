package handler

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/dukerupert/household/internal/model"
	"github.com/dukerupert/household/internal/store"
	"github.com/dukerupert/household/internal/websocket"
)

type UserHandler struct {
	base
	store *store.UserStore
}

func NewUserHandler(s *store.UserStore, hub *websocket.Hub, logger *slog.Logger) *UserHandler {
	return &UserHandler{base: base{hub: hub, logger: logger}, store: s}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, err, "list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
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
	addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil || addr.Name != "" {
		writeError(w, http.StatusBadRequest, "email must be a valid address")
		return
	}

	u, err := h.store.Create(r.Context(), req.Name, strings.ToLower(addr.Address))
	if err != nil {
		h.fail(w, err, "create user")
		return
	}
	h.broadcast("user", "created", u.ID)
	writeJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	u, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, err, "get user")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
