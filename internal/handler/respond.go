package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dukerupert/household/internal/store"
	"github.com/dukerupert/household/internal/websocket"
)

// base carries what every resource handler shares: the change-feed hub and a
// component logger.
type base struct {
	hub    *websocket.Hub
	logger *slog.Logger
}

func (b base) broadcast(entity, action string, id int64) {
	if b.hub != nil {
		b.hub.Broadcast(websocket.NewMessage(entity, action, id, nil))
	}
}

// fail writes the response for a store error. Not-found and conflict details
// are passed through; anything else is logged and reported generically.
func (b base) fail(w http.ResponseWriter, err error, action string) {
	var se *store.Error
	switch {
	case errors.As(err, &se) && errors.Is(se, store.ErrNotFound):
		writeError(w, http.StatusNotFound, se.Detail)
	case errors.As(err, &se) && errors.Is(se, store.ErrConflict):
		writeError(w, http.StatusConflict, se.Detail)
	default:
		b.logger.Error(action, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func parseIDParam(r *http.Request) (int64, error) {
	return parsePathInt(r, "id")
}

func parsePathInt(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

// queryInt64 returns nil when the parameter is absent.
func queryInt64(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// requireUserID reads the user_id query parameter, writing a 400 and
// returning false when it is missing or malformed.
func requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := queryInt64(r, "user_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user_id")
		return 0, false
	}
	if id == nil {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return 0, false
	}
	return *id, true
}

func queryString(r *http.Request, key string) *string {
	if !r.URL.Query().Has(key) {
		return nil
	}
	v := r.URL.Query().Get(key)
	return &v
}

// parseFlexibleTime accepts RFC3339, a zone-less local timestamp, or a bare
// date. Zone-less values are taken as UTC.
func parseFlexibleTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// blank reports whether a supplied optional string is empty after trimming.
func blank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) == ""
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
