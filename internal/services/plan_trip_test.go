package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eld-trip-service/internal/adapters/repositories"
	"eld-trip-service/internal/adapters/routing"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"
)

func planRequest(cycleUsed time.Duration) PlanTripRequest {
	return PlanTripRequest{
		CurrentLocation: "Chicago, IL",
		PickupLocation:  "Milwaukee, WI",
		DropoffLocation: "Denver, CO",
		CycleHoursUsed:  cycleUsed,
		StartAt:         time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}
}

func planRoute() *domain.Route {
	return &domain.Route{
		Waypoints: []domain.Waypoint{
			{Name: "Chicago, IL"},
			{Name: "Milwaukee, WI"},
			{Name: "Denver, CO"},
		},
		Legs: []domain.RouteLeg{
			{DistanceMeters: 148_000, Duration: 2 * time.Hour},
			{DistanceMeters: 1_650_000, Duration: 16 * time.Hour},
		},
		PickupLegIndex:      1,
		TotalDistanceMeters: 1_798_000,
		TotalDuration:       18 * time.Hour,
	}
}

func TestPlanTripStoresPlan(t *testing.T) {
	planner := routing.NewMockRoutePlanner()
	planner.Add("Chicago, IL", "Milwaukee, WI", "Denver, CO", planRoute())
	repo := repositories.NewMemoryTripRepository()

	plan, err := PlanTrip(context.Background(), planRequest(10*time.Hour), planner, repo, testLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Trip.ID == "" {
		t.Fatal("expected a generated trip id")
	}
	if plan.Trip.CurrentLocation != "Chicago, IL" || plan.Trip.DropoffLocation != "Denver, CO" {
		t.Fatalf("trip locations not preserved: %+v", plan.Trip)
	}
	if len(plan.LogEntries) == 0 || len(plan.DailyLogs) == 0 {
		t.Fatalf(
			"expected log entries and daily logs, got %d entries / %d logs",
			len(plan.LogEntries), len(plan.DailyLogs),
		)
	}
	assertContiguous(t, plan.LogEntries)

	stored, err := repo.ListLogEntries(context.Background(), plan.Trip.ID)
	if err != nil {
		t.Fatalf("stored plan not retrievable: %v", err)
	}
	if len(stored) != len(plan.LogEntries) {
		t.Fatalf("stored %d entries, want %d", len(stored), len(plan.LogEntries))
	}
}

func TestPlanTripTrimsLocations(t *testing.T) {
	planner := routing.NewMockRoutePlanner()
	planner.Add("Chicago, IL", "Milwaukee, WI", "Denver, CO", planRoute())
	repo := repositories.NewMemoryTripRepository()

	req := planRequest(0)
	req.CurrentLocation = "  Chicago, IL  "
	req.PickupLocation = "Milwaukee, WI\n"

	plan, err := PlanTrip(context.Background(), req, planner, repo, testLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Trip.CurrentLocation != "Chicago, IL" {
		t.Fatalf("current location not trimmed: %q", plan.Trip.CurrentLocation)
	}
}

func TestPlanTripCapacityExceededSkipsPlanner(t *testing.T) {
	planner := routing.NewMockRoutePlanner()
	repo := repositories.NewMemoryTripRepository()

	// 69h used + 1h pickup reaches the 70h cycle limit.
	_, err := PlanTrip(context.Background(), planRequest(69*time.Hour), planner, repo, testLimits())
	if !errors.Is(err, ErrCycleExhausted) {
		t.Fatalf("expected ErrCycleExhausted, got %v", err)
	}
	if planner.Calls != 0 {
		t.Fatalf("planner called %d times for an infeasible trip", planner.Calls)
	}

	trips, err := repo.ListTrips(context.Background())
	if err != nil {
		t.Fatalf("list trips: %v", err)
	}
	if len(trips) != 0 {
		t.Fatalf("infeasible trip was stored: %+v", trips)
	}
}

func TestPlanTripInvalidInput(t *testing.T) {
	planner := routing.NewMockRoutePlanner()
	repo := repositories.NewMemoryTripRepository()

	tests := []struct {
		name   string
		mutate func(*PlanTripRequest)
	}{
		{"empty current", func(r *PlanTripRequest) { r.CurrentLocation = "  " }},
		{"empty pickup", func(r *PlanTripRequest) { r.PickupLocation = "" }},
		{"empty dropoff", func(r *PlanTripRequest) { r.DropoffLocation = "" }},
		{"negative cycle", func(r *PlanTripRequest) { r.CycleHoursUsed = -time.Hour }},
		{"zero start", func(r *PlanTripRequest) { r.StartAt = time.Time{} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := planRequest(0)
			tc.mutate(&req)

			_, err := PlanTrip(context.Background(), req, planner, repo, testLimits())
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPlanTripNoRoutePropagates(t *testing.T) {
	planner := routing.NewMockRoutePlanner()
	planner.Err = ports.ErrNoRoute
	repo := repositories.NewMemoryTripRepository()

	_, err := PlanTrip(context.Background(), planRequest(0), planner, repo, testLimits())
	if !errors.Is(err, ports.ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
}
