package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/household/internal/model"
	"github.com/dukerupert/household/internal/store"
	"github.com/dukerupert/household/internal/websocket"
)

type AppointmentHandler struct {
	base
	store *store.AppointmentStore
}

func NewAppointmentHandler(s *store.AppointmentStore, hub *websocket.Hub, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{base: base{hub: hub, logger: logger}, store: s}
}

type appointmentRequest struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Type        *string `json:"type"`
	Notes       *string `json:"notes"`
	ProviderID  *int64  `json:"provider_id"`
	PatientName *string `json:"patient_name"`
	CreatedBy   *int64  `json:"created_by"`
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	createdBy, err := queryInt64(r, "created_by")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid created_by")
		return
	}
	filter := model.AppointmentFilter{CreatedBy: createdBy, PatientName: queryString(r, "patient_name")}

	appointments, err := h.store.List(r.Context(), filter)
	if err != nil {
		h.fail(w, err, "list appointments")
		return
	}
	if appointments == nil {
		appointments = []model.Appointment{}
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Type == nil || strings.TrimSpace(*req.Type) == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}
	if req.CreatedBy == nil {
		writeError(w, http.StatusBadRequest, "created_by is required")
		return
	}
	if req.Date == nil {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	date, err := parseFlexibleTime(*req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format")
		return
	}

	a, err := h.store.Create(r.Context(), model.AppointmentCreate{
		Title:       strings.TrimSpace(*req.Title),
		Date:        date,
		Type:        strings.TrimSpace(*req.Type),
		Notes:       req.Notes,
		ProviderID:  req.ProviderID,
		PatientName: req.PatientName,
		CreatedBy:   *req.CreatedBy,
	})
	if err != nil {
		h.fail(w, err, "create appointment")
		return
	}
	h.broadcast("appointment", "created", a.ID)
	writeJSON(w, http.StatusCreated, a)
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	a, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, err, "get appointment")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req appointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if blank(req.Title) || blank(req.Type) {
		writeError(w, http.StatusBadRequest, "title and type cannot be empty")
		return
	}

	u := model.AppointmentUpdate{
		Title:       trimPtr(req.Title),
		Type:        trimPtr(req.Type),
		Notes:       req.Notes,
		ProviderID:  req.ProviderID,
		PatientName: req.PatientName,
	}
	if req.Date != nil {
		date, err := parseFlexibleTime(*req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format")
			return
		}
		u.Date = &date
	}

	a, err := h.store.Update(r.Context(), id, u)
	if err != nil {
		h.fail(w, err, "update appointment")
		return
	}
	h.broadcast("appointment", "updated", a.ID)
	writeJSON(w, http.StatusOK, a)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "delete appointment")
		return
	}
	h.broadcast("appointment", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
