package handlers

import (
	"eld-trip-service/internal/api/dto"
	"eld-trip-service/internal/ports"
	"errors"
	"log"
	"net/http"
	"strings"
)

// TripsHandler exposes read-only trip retrieval endpoints.
type TripsHandler struct {
	Repo ports.TripRepository
}

func (h *TripsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	trips, err := h.Repo.ListTrips(r.Context())
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{
		Trips: make([]dto.TripResponse, 0, len(trips)),
	}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.TripResponseFrom(t))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Logs serves /trips/{id}/logs: the stored duty segments and daily log
// sheets for one trip.
func (h *TripsHandler) Logs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/trips/"), "/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "logs" {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	tripID := parts[0]

	entries, err := h.Repo.ListLogEntries(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, ports.ErrTripNotFound) {
			writeError(w, r, http.StatusNotFound, "trip not found")
			return
		}
		log.Printf("list log entries failed: trip=%s err=%v", tripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	logs, err := h.Repo.ListDailyLogs(r.Context(), tripID)
	if err != nil {
		log.Printf("list daily logs failed: trip=%s err=%v", tripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.TripLogsResponse{
		TripID:     tripID,
		LogEntries: dto.LogEntriesFrom(entries),
		DailyLogs:  dto.DailyLogsFrom(logs),
	}

	writeJSON(w, r, http.StatusOK, res)
}
