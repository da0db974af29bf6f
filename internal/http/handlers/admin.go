// Package handlers implements the ops/admin HTTP API. The conversational
// surface stays on Telegram; this API exists for dashboards and scripts.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/okravets/barberflow/internal/booking"
	"github.com/okravets/barberflow/internal/catalog"
	"github.com/okravets/barberflow/internal/clients"
	"github.com/okravets/barberflow/internal/settings"
	"github.com/okravets/barberflow/pkg/logging"
)

// AdminHandler serves appointment, client, settings, and price-list
// endpoints.
type AdminHandler struct {
	appointments *booking.Store
	clients      *clients.Store
	settings     *settings.Store
	catalog      *catalog.Store
	logger       *logging.Logger
}

// NewAdminHandler creates the admin API handler.
func NewAdminHandler(appointments *booking.Store, cls *clients.Store, st *settings.Store, cat *catalog.Store, logger *logging.Logger) *AdminHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminHandler{
		appointments: appointments,
		clients:      cls,
		settings:     st,
		catalog:      cat,
		logger:       logger,
	}
}

// ListAppointments returns the appointments for a date (default today).
func (h *AdminHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format(booking.DateFormat)
	}
	if _, err := time.Parse(booking.DateFormat, date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	appts, err := h.appointments.ListByDate(r.Context(), date)
	if err != nil {
		h.logger.Error("admin api: list appointments failed", "date", date, "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "appointments": appts})
}

// ListClients returns client profiles, newest first.
func (h *AdminHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := h.clients.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("admin api: list clients failed", "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": list})
}

// GetSettings returns the discount settings.
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	d, err := h.settings.Get(r.Context())
	if err != nil {
		h.logger.Error("admin api: get settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type settingsRequest struct {
	VisitThreshold   *int     `json:"visit_threshold"`
	VisitDiscountPct *float64 `json:"visit_discount_pct"`
}

// UpdateSettings changes the threshold and/or percentage.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.VisitThreshold == nil && req.VisitDiscountPct == nil {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if req.VisitThreshold != nil {
		if err := h.settings.SetThreshold(r.Context(), *req.VisitThreshold); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.VisitDiscountPct != nil {
		if err := h.settings.SetPercent(r.Context(), *req.VisitDiscountPct); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	d, err := h.settings.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ListPrices returns the price list.
func (h *AdminHandler) ListPrices(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("admin api: list prices failed", "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type priceRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// AddPrice inserts a price item.
func (h *AdminHandler) AddPrice(w http.ResponseWriter, r *http.Request) {
	var req priceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Price < 0 {
		writeError(w, http.StatusBadRequest, "invalid item")
		return
	}
	id, err := h.catalog.Add(r.Context(), req.Name, req.Price)
	if err != nil {
		h.logger.Error("admin api: add price failed", "error", err)
		writeError(w, http.StatusInternalServerError, "insert failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// UpdatePrice renames or reprices an existing item.
func (h *AdminHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req priceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Price < 0 {
		writeError(w, http.StatusBadRequest, "invalid item")
		return
	}
	if err := h.catalog.Update(r.Context(), id, req.Name, req.Price); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeletePrice removes a price item by id.
func (h *AdminHandler) DeletePrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.catalog.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck reports liveness.
func (h *AdminHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
