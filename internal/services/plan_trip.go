package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eld-trip-service/internal/config"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"

	"github.com/google/uuid"
)

type PlanTripRequest struct {
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
	CycleHoursUsed  time.Duration
	StartAt         time.Time
}

// The complete output of one planning request: the stored trip, the route
// the provider produced, the flattened duty segments, and the day-grouped
// log sheets. Plans are regenerated per request, never patched.
type TripPlan struct {
	Trip       domain.Trip
	Route      *domain.Route
	LogEntries []domain.DutySegment
	DailyLogs  []domain.DailyLog
}

// PlanTrip orchestrates one planning request: validate the trip, fetch the
// route from the planner port, build the compliant schedule and daily logs,
// and persist the result. The capacity check runs before the routing call so
// an infeasible trip never hits the upstream provider.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	planner ports.RoutePlanner,
	repo ports.TripRepository,
	limits config.HOSLimits,
) (*TripPlan, error) {
	current := strings.TrimSpace(req.CurrentLocation)
	pickup := strings.TrimSpace(req.PickupLocation)
	dropoff := strings.TrimSpace(req.DropoffLocation)

	if current == "" || pickup == "" || dropoff == "" {
		return nil, fmt.Errorf("%w: current, pickup and dropoff locations are required", ErrInvalidInput)
	}
	if req.CycleHoursUsed < 0 {
		return nil, fmt.Errorf("%w: cycle hours used must not be negative", ErrInvalidInput)
	}
	if req.CycleHoursUsed+limits.PickupDuration >= limits.CycleLimit {
		return nil, fmt.Errorf(
			"%w: %v of the %v cycle already used",
			ErrCycleExhausted, req.CycleHoursUsed, limits.CycleLimit,
		)
	}
	if req.StartAt.IsZero() {
		return nil, fmt.Errorf("%w: trip start time must be set", ErrInvalidInput)
	}

	trip := domain.Trip{
		ID:              uuid.New().String(),
		CurrentLocation: current,
		PickupLocation:  pickup,
		DropoffLocation: dropoff,
		CycleHoursUsed:  req.CycleHoursUsed,
		CreatedAt:       time.Now().UTC(),
	}

	route, err := planner.PlanRoute(ctx, current, pickup, dropoff)
	if err != nil {
		return nil, fmt.Errorf("plan trip: route %q -> %q -> %q: %w", current, pickup, dropoff, err)
	}

	segments, err := BuildSchedule(trip, route, req.StartAt, limits)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	logs := BuildDailyLogs(segments)

	if err := repo.SaveTripPlan(ctx, trip, segments, logs); err != nil {
		return nil, fmt.Errorf("plan trip: save trip %s: %w", trip.ID, err)
	}

	return &TripPlan{
		Trip:       trip,
		Route:      route,
		LogEntries: segments,
		DailyLogs:  logs,
	}, nil
}
