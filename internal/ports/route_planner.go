package ports

import (
	"context"
	"errors"

	"eld-trip-service/internal/domain"
)

// Returned when the routing provider cannot produce a driving route
// between the requested locations.
var ErrNoRoute = errors.New("no route found")

// Contract for computing a driving route through the trip's waypoints.
type RoutePlanner interface {
	// Return an ordered route current -> pickup -> dropoff.
	// Implementations must return an error wrapping ErrNoRoute when the
	// locations cannot be connected by a driving route.
	PlanRoute(ctx context.Context, current, pickup, dropoff string) (*domain.Route, error)
}
