package ports

import (
	"context"
	"errors"

	"eld-trip-service/internal/domain"
)

var ErrTripNotFound = errors.New("trip not found")

// Port: a boundary for storing trips and their generated log sheets.
type TripRepository interface {
	// Persist a trip together with its duty segments and daily logs.
	// The write is atomic: either the whole plan is stored or none of it.
	SaveTripPlan(ctx context.Context, trip domain.Trip, segments []domain.DutySegment, logs []domain.DailyLog) error

	// Retrieve a single trip by ID.
	GetTrip(ctx context.Context, tripID string) (domain.Trip, error)

	// Retrieve all stored trips, most recent first.
	ListTrips(ctx context.Context) ([]domain.Trip, error)

	// Retrieve the flattened duty segments for a trip in timeline order.
	ListLogEntries(ctx context.Context, tripID string) ([]domain.DutySegment, error)

	// Retrieve the day-grouped log sheets for a trip in date order.
	ListDailyLogs(ctx context.Context, tripID string) ([]domain.DailyLog, error)
}
