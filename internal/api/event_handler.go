package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"calendarbot/internal/models"
	"calendarbot/internal/services"
)

type EventHandler struct {
	service *services.EventService
}

func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) Register(r chi.Router) {
	r.Route("/event", func(r chi.Router) {
		r.Post("/", h.createEvent)
		r.Get("/", h.listEvents)
	})
}

type createEventRequest struct {
	UserID      string `json:"userId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

func (h *EventHandler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, BadRequest("invalid request body"))
		return
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		writeError(w, Unprocessable(err.Error()))
		return
	}
	timeOfDay, err := models.ParseTimeOfDay(req.Time)
	if err != nil {
		writeError(w, Unprocessable(err.Error()))
		return
	}

	if err := h.service.Create(r.Context(), req.UserID, date, timeOfDay, req.Description); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "ok"})
}

func (h *EventHandler) listEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	userIDs := query["userIds"]

	var dates []models.Date
	for _, raw := range query["dates"] {
		date, err := models.ParseDate(raw)
		if err != nil {
			writeError(w, Unprocessable(err.Error()))
			return
		}
		dates = append(dates, date)
	}

	events, err := h.service.GetEvents(r.Context(), userIDs, dates)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}
