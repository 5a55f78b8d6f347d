package services

import (
	"fmt"
	"time"

	"eld-trip-service/internal/config"
	"eld-trip-service/internal/domain"
)

// BuildSchedule turns a trip and its route into an ordered sequence of duty
// segments that satisfies the hours-of-service limits.
//
// Driving time is accumulated greedily along the route legs. Whenever the
// next chunk of driving would exceed a limit (continuous driving before a
// break, the daily driving window, the duty window, or the cycle ceiling),
// the required rest is inserted before driving resumes. A single leg longer
// than a window is split across several driving segments with rests between
// the pieces; no emitted segment ever violates a limit.
//
// The pickup and dropoff each consume a fixed on-duty (not driving)
// allowance: the pickup allowance before the first leg departing the pickup,
// the dropoff allowance after the final leg.
//
// The function is pure: the same inputs always produce the same segments.
func BuildSchedule(
	trip domain.Trip,
	route *domain.Route,
	startAt time.Time,
	limits config.HOSLimits,
) ([]domain.DutySegment, error) {
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("build schedule: %w", err)
	}

	if trip.CycleHoursUsed < 0 {
		return nil, fmt.Errorf("%w: cycle hours used must not be negative, got %v", ErrInvalidInput, trip.CycleHoursUsed)
	}
	// The trip cannot legally start unless the pickup and at least some
	// driving still fit in the cycle.
	if trip.CycleHoursUsed+limits.PickupDuration >= limits.CycleLimit {
		return nil, fmt.Errorf(
			"%w: %v of the %v cycle already used",
			ErrCycleExhausted, trip.CycleHoursUsed, limits.CycleLimit,
		)
	}

	if route == nil || len(route.Legs) == 0 {
		return nil, fmt.Errorf("%w: route has no legs", ErrInvalidInput)
	}
	if route.PickupLegIndex < 0 || route.PickupLegIndex >= len(route.Legs) {
		return nil, fmt.Errorf("%w: pickup leg index %d out of range", ErrInvalidInput, route.PickupLegIndex)
	}
	for i, leg := range route.Legs {
		if leg.DistanceMeters <= 0 || leg.Duration <= 0 {
			return nil, fmt.Errorf(
				"%w: leg %d must have positive distance and duration (got %dm, %v)",
				ErrInvalidInput, i, leg.DistanceMeters, leg.Duration,
			)
		}
	}
	if startAt.IsZero() {
		return nil, fmt.Errorf("%w: trip start time must be set", ErrInvalidInput)
	}

	s := &scheduler{
		limits:    limits,
		cursor:    startAt,
		cycleUsed: trip.CycleHoursUsed,
	}

	for i := range route.Legs {
		if i == route.PickupLegIndex {
			s.serve(limits.PickupDuration, pickupName(trip, route), "Pickup and loading")
		}
		from, to := legEndpoints(trip, route, i)
		s.drive(route.Legs[i].Duration, from, to)
	}
	s.serve(limits.DropoffDuration, dropoffName(trip, route), "Dropoff and unloading")

	return s.segments, nil
}

// scheduler tracks the accumulation counters the limits are checked against.
// All counters except cycleUsed reset after a daily rest; a cycle restart
// resets everything.
type scheduler struct {
	limits   config.HOSLimits
	cursor   time.Time
	segments []domain.DutySegment

	driveSinceBreak time.Duration
	driveInWindow   time.Duration
	dutyInWindow    time.Duration
	cycleUsed       time.Duration
}

func (s *scheduler) emit(status domain.DutyStatus, d time.Duration, location, remarks string) {
	end := s.cursor.Add(d)
	s.segments = append(s.segments, domain.DutySegment{
		Status:   status,
		StartAt:  s.cursor,
		EndAt:    end,
		Location: location,
		Remarks:  remarks,
	})
	s.cursor = end
}

func (s *scheduler) takeShortBreak() {
	s.emit(domain.StatusOffDuty, s.limits.BreakDuration, "Rest Area", "Required driving break")
	s.dutyInWindow += s.limits.BreakDuration
	s.driveSinceBreak = 0
}

func (s *scheduler) takeDailyRest() {
	s.emit(domain.StatusSleeperBerth, s.limits.DailyRest, "Rest Area", "Required daily rest period")
	s.driveSinceBreak = 0
	s.driveInWindow = 0
	s.dutyInWindow = 0
}

func (s *scheduler) takeCycleRestart() {
	s.emit(domain.StatusOffDuty, s.limits.CycleRestart, "Rest Area", "Off-duty cycle restart")
	s.driveSinceBreak = 0
	s.driveInWindow = 0
	s.dutyInWindow = 0
	s.cycleUsed = 0
}

// drive schedules one leg's driving time, splitting it into chunks and
// inserting rests whenever a counter runs out of room. A rest is inserted
// only when driving remains; finishing exactly at a limit inserts nothing.
func (s *scheduler) drive(total time.Duration, from, to string) {
	remaining := total
	for remaining > 0 {
		if s.limits.CycleLimit-s.cycleUsed <= 0 {
			s.takeCycleRestart()
			continue
		}
		if s.limits.MaxDutyWindow-s.dutyInWindow <= 0 || s.limits.MaxDrivePerWindow-s.driveInWindow <= 0 {
			s.takeDailyRest()
			continue
		}
		if s.limits.BreakAfterDriving-s.driveSinceBreak <= 0 {
			// A short break must itself fit inside the duty window,
			// otherwise the day is over anyway.
			if s.limits.MaxDutyWindow-s.dutyInWindow <= s.limits.BreakDuration {
				s.takeDailyRest()
			} else {
				s.takeShortBreak()
			}
			continue
		}

		chunk := remaining
		for _, room := range []time.Duration{
			s.limits.BreakAfterDriving - s.driveSinceBreak,
			s.limits.MaxDrivePerWindow - s.driveInWindow,
			s.limits.MaxDutyWindow - s.dutyInWindow,
			s.limits.CycleLimit - s.cycleUsed,
		} {
			if room < chunk {
				chunk = room
			}
		}

		s.emit(domain.StatusDriving, chunk, from, "Driving towards "+to)
		s.driveSinceBreak += chunk
		s.driveInWindow += chunk
		s.dutyInWindow += chunk
		s.cycleUsed += chunk
		remaining -= chunk
	}
}

// serve schedules a fixed on-duty (not driving) span such as loading or
// unloading. The span is not split; rests are inserted first until it fits
// in both the duty window and the cycle.
func (s *scheduler) serve(d time.Duration, location, remarks string) {
	if d <= 0 {
		return
	}
	for {
		if s.limits.CycleLimit-s.cycleUsed < d {
			s.takeCycleRestart()
			continue
		}
		if s.limits.MaxDutyWindow-s.dutyInWindow < d {
			s.takeDailyRest()
			continue
		}
		break
	}
	s.emit(domain.StatusOnDutyNotDriving, d, location, remarks)
	s.dutyInWindow += d
	s.cycleUsed += d
}

// legEndpoints names the start and end of a leg, preferring the route's own
// waypoints and falling back to the trip locations when the routing provider
// supplied none.
func legEndpoints(trip domain.Trip, route *domain.Route, i int) (from, to string) {
	if len(route.Waypoints) == len(route.Legs)+1 {
		return route.Waypoints[i].Name, route.Waypoints[i+1].Name
	}
	if i < route.PickupLegIndex {
		return trip.CurrentLocation, trip.PickupLocation
	}
	return trip.PickupLocation, trip.DropoffLocation
}

func pickupName(trip domain.Trip, route *domain.Route) string {
	if len(route.Waypoints) == len(route.Legs)+1 {
		return route.Waypoints[route.PickupLegIndex].Name
	}
	return trip.PickupLocation
}

func dropoffName(trip domain.Trip, route *domain.Route) string {
	if len(route.Waypoints) == len(route.Legs)+1 {
		return route.Waypoints[len(route.Waypoints)-1].Name
	}
	return trip.DropoffLocation
}
