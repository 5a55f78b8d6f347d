package domain

import "time"

// A named point along the route (current position, pickup, dropoff).
type Waypoint struct {
	Name   string
	Coords Coordinates
}

// Represents a single driving step between two consecutive waypoints.
// Both distance and duration must be positive for a leg to be schedulable.
type RouteLeg struct {
	DistanceMeters int
	Duration       time.Duration
}

// Represents the driving route for a trip as returned by the routing provider.
// A Route is the ordered sequence of legs between waypoints, along with
// aggregate metrics and the raw line geometry for map rendering. It is
// immutable planning data and contains no side effects.
//
// PickupLegIndex is the index of the first leg departing the pickup point.
// It is 0 when the route starts at the pickup (no deadhead leg).
type Route struct {
	Waypoints           []Waypoint
	Legs                []RouteLeg
	PickupLegIndex      int
	TotalDistanceMeters int
	TotalDuration       time.Duration
	Geometry            [][]float64
}
