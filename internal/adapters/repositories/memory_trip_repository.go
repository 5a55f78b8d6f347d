package repositories

import (
	"context"
	"fmt"
	"sync"

	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"
)

// MemoryTripRepository is an in-memory TripRepository used when no database
// is configured, and as the repository in tests.
type MemoryTripRepository struct {
	mu       sync.RWMutex
	order    []string
	trips    map[string]domain.Trip
	segments map[string][]domain.DutySegment
	logs     map[string][]domain.DailyLog
}

func NewMemoryTripRepository() *MemoryTripRepository {
	return &MemoryTripRepository{
		trips:    make(map[string]domain.Trip),
		segments: make(map[string][]domain.DutySegment),
		logs:     make(map[string][]domain.DailyLog),
	}
}

func (r *MemoryTripRepository) SaveTripPlan(
	ctx context.Context,
	trip domain.Trip,
	segments []domain.DutySegment,
	logs []domain.DailyLog,
) error {
	if trip.ID == "" {
		return fmt.Errorf("save trip plan: trip id must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[trip.ID]; ok {
		return fmt.Errorf("save trip plan: trip %q already exists", trip.ID)
	}

	r.trips[trip.ID] = trip
	r.order = append(r.order, trip.ID)
	r.segments[trip.ID] = append([]domain.DutySegment(nil), segments...)
	r.logs[trip.ID] = append([]domain.DailyLog(nil), logs...)

	return nil
}

func (r *MemoryTripRepository) GetTrip(ctx context.Context, tripID string) (domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trip, ok := r.trips[tripID]
	if !ok {
		return domain.Trip{}, fmt.Errorf("get trip %q: %w", tripID, ports.ErrTripNotFound)
	}
	return trip, nil
}

func (r *MemoryTripRepository) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Most recent first.
	trips := make([]domain.Trip, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		trips = append(trips, r.trips[r.order[i]])
	}
	return trips, nil
}

func (r *MemoryTripRepository) ListLogEntries(ctx context.Context, tripID string) ([]domain.DutySegment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.trips[tripID]; !ok {
		return nil, fmt.Errorf("list log entries for %q: %w", tripID, ports.ErrTripNotFound)
	}
	return append([]domain.DutySegment(nil), r.segments[tripID]...), nil
}

func (r *MemoryTripRepository) ListDailyLogs(ctx context.Context, tripID string) ([]domain.DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.trips[tripID]; !ok {
		return nil, fmt.Errorf("list daily logs for %q: %w", tripID, ports.ErrTripNotFound)
	}
	return append([]domain.DailyLog(nil), r.logs[tripID]...), nil
}
