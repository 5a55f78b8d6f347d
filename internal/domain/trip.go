package domain

import "time"

// Represents a single trip planning request.
// A Trip records where the driver currently is, where the load is picked up
// and dropped off, and how many on-duty hours the driver has already spent
// in the current cycle. It is immutable input; schedules are derived from
// it, never written back into it.
type Trip struct {
	ID              string
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
	CycleHoursUsed  time.Duration
	CreatedAt       time.Time
}
