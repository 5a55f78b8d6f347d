package handlers

import (
	"eld-trip-service/internal/api/dto"
	"eld-trip-service/internal/config"
	"eld-trip-service/internal/metrics"
	"eld-trip-service/internal/ports"
	"eld-trip-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"
)

type PlanHandler struct {
	Planner ports.RoutePlanner
	Repo    ports.TripRepository
	Limits  config.HOSLimits

	// Now is injectable for tests; defaults to time.Now when nil.
	Now func() time.Time
}

// PlanTrip accepts a trip request, plans the route, builds the compliant
// duty schedule and daily log sheets, and persists the result. The whole
// plan is regenerated on every call.
func (h *PlanHandler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.CurrentCycleHours < 0 {
		writeError(w, r, http.StatusBadRequest, "current_cycle_hours must not be negative")
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	startAt := now().UTC()
	if req.StartAt != nil {
		startAt = *req.StartAt
	}

	svcReq := services.PlanTripRequest{
		CurrentLocation: req.CurrentLocation,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		CycleHoursUsed:  time.Duration(req.CurrentCycleHours * float64(time.Hour)),
		StartAt:         startAt,
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.Planner, h.Repo, h.Limits)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			metrics.TripPlans.WithLabelValues("invalid_input").Inc()
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrCycleExhausted):
			metrics.TripPlans.WithLabelValues("capacity_exceeded").Inc()
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, ports.ErrNoRoute):
			metrics.TripPlans.WithLabelValues("no_route").Inc()
			writeError(w, r, http.StatusBadGateway, "no route found between the given locations")
		default:
			metrics.TripPlans.WithLabelValues("error").Inc()
			log.Printf("plan trip failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	metrics.TripPlans.WithLabelValues("ok").Inc()
	writeJSON(w, r, http.StatusOK, dto.PlanTripResponseFrom(plan))
}
