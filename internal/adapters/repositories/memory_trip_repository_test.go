package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"
)

func storedTrip(id string, createdAt time.Time) (domain.Trip, []domain.DutySegment, []domain.DailyLog) {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	trip := domain.Trip{
		ID:              id,
		CurrentLocation: "Chicago, IL",
		PickupLocation:  "Chicago, IL",
		DropoffLocation: "Denver, CO",
		CycleHoursUsed:  10 * time.Hour,
		CreatedAt:       createdAt,
	}
	segments := []domain.DutySegment{
		{
			Status:   domain.StatusOnDutyNotDriving,
			StartAt:  start,
			EndAt:    start.Add(time.Hour),
			Location: "Chicago, IL",
			Remarks:  "Pickup",
		},
		{
			Status:   domain.StatusDriving,
			StartAt:  start.Add(time.Hour),
			EndAt:    start.Add(9 * time.Hour),
			Location: "Chicago, IL",
			Remarks:  "Driving towards Denver, CO",
		},
	}
	logs := []domain.DailyLog{
		{
			Date:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			Segments: segments,
			Totals: map[domain.DutyStatus]time.Duration{
				domain.StatusOnDutyNotDriving: time.Hour,
				domain.StatusDriving:          8 * time.Hour,
			},
		},
	}
	return trip, segments, logs
}

func TestMemoryRepositoryRoundtrip(t *testing.T) {
	repo := NewMemoryTripRepository()
	ctx := context.Background()

	trip, segments, logs := storedTrip("t1", time.Now().UTC())
	if err := repo.SaveTripPlan(ctx, trip, segments, logs); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := repo.GetTrip(ctx, "t1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.DropoffLocation != "Denver, CO" {
		t.Fatalf("trip not preserved: %+v", got)
	}

	entries, err := repo.ListLogEntries(ctx, "t1")
	if err != nil {
		t.Fatalf("list log entries failed: %v", err)
	}
	if len(entries) != 2 || entries[1].Status != domain.StatusDriving {
		t.Fatalf("log entries not preserved: %+v", entries)
	}

	daily, err := repo.ListDailyLogs(ctx, "t1")
	if err != nil {
		t.Fatalf("list daily logs failed: %v", err)
	}
	if len(daily) != 1 || daily[0].Totals[domain.StatusDriving] != 8*time.Hour {
		t.Fatalf("daily logs not preserved: %+v", daily)
	}
}

func TestMemoryRepositoryListsMostRecentFirst(t *testing.T) {
	repo := NewMemoryTripRepository()
	ctx := context.Background()

	now := time.Now().UTC()
	for i, id := range []string{"t1", "t2", "t3"} {
		trip, segments, logs := storedTrip(id, now.Add(time.Duration(i)*time.Minute))
		if err := repo.SaveTripPlan(ctx, trip, segments, logs); err != nil {
			t.Fatalf("save %s failed: %v", id, err)
		}
	}

	trips, err := repo.ListTrips(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(trips) != 3 {
		t.Fatalf("expected 3 trips, got %d", len(trips))
	}
	if trips[0].ID != "t3" || trips[2].ID != "t1" {
		t.Fatalf("trips not ordered most recent first: %s, %s, %s", trips[0].ID, trips[1].ID, trips[2].ID)
	}
}

func TestMemoryRepositoryNotFound(t *testing.T) {
	repo := NewMemoryTripRepository()
	ctx := context.Background()

	if _, err := repo.GetTrip(ctx, "missing"); !errors.Is(err, ports.ErrTripNotFound) {
		t.Fatalf("GetTrip: expected ErrTripNotFound, got %v", err)
	}
	if _, err := repo.ListLogEntries(ctx, "missing"); !errors.Is(err, ports.ErrTripNotFound) {
		t.Fatalf("ListLogEntries: expected ErrTripNotFound, got %v", err)
	}
	if _, err := repo.ListDailyLogs(ctx, "missing"); !errors.Is(err, ports.ErrTripNotFound) {
		t.Fatalf("ListDailyLogs: expected ErrTripNotFound, got %v", err)
	}
}

func TestMemoryRepositoryRejectsDuplicate(t *testing.T) {
	repo := NewMemoryTripRepository()
	ctx := context.Background()

	trip, segments, logs := storedTrip("t1", time.Now().UTC())
	if err := repo.SaveTripPlan(ctx, trip, segments, logs); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := repo.SaveTripPlan(ctx, trip, segments, logs); err == nil {
		t.Fatal("expected an error for duplicate trip id")
	}
}

func TestMemoryRepositoryCopiesSlices(t *testing.T) {
	repo := NewMemoryTripRepository()
	ctx := context.Background()

	trip, segments, logs := storedTrip("t1", time.Now().UTC())
	if err := repo.SaveTripPlan(ctx, trip, segments, logs); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Mutating the caller's slice must not affect the stored plan.
	segments[0].Remarks = "changed"

	entries, err := repo.ListLogEntries(ctx, "t1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if entries[0].Remarks != "Pickup" {
		t.Fatalf("stored entries aliased caller slice: %q", entries[0].Remarks)
	}
}
