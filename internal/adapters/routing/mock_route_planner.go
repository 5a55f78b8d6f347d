package routing

import (
	"context"
	"fmt"

	"eld-trip-service/internal/domain"
)

// MockRoutePlanner serves canned routes for tests, keyed by the trip's
// waypoint triple.
type MockRoutePlanner struct {
	m map[string]*domain.Route
	// Err, when set, is returned for every call.
	Err error
	// Calls counts PlanRoute invocations.
	Calls int
}

func NewMockRoutePlanner() *MockRoutePlanner {
	return &MockRoutePlanner{m: make(map[string]*domain.Route)}
}

func (p *MockRoutePlanner) Add(current, pickup, dropoff string, route *domain.Route) {
	p.m[current+"|"+pickup+"|"+dropoff] = route
}

func (p *MockRoutePlanner) PlanRoute(ctx context.Context, current, pickup, dropoff string) (*domain.Route, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}
	r, ok := p.m[current+"|"+pickup+"|"+dropoff]
	if !ok {
		return nil, fmt.Errorf("missing route %q -> %q -> %q", current, pickup, dropoff)
	}
	return r, nil
}
