package dto

import (
	"time"

	"eld-trip-service/internal/domain"
)

type TripResponse struct {
	ID                string    `json:"id"`
	CurrentLocation   string    `json:"current_location"`
	PickupLocation    string    `json:"pickup_location"`
	DropoffLocation   string    `json:"dropoff_location"`
	CurrentCycleHours float64   `json:"current_cycle_hours"`
	CreatedAt         time.Time `json:"created_at"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

func TripResponseFrom(t domain.Trip) TripResponse {
	return TripResponse{
		ID:                t.ID,
		CurrentLocation:   t.CurrentLocation,
		PickupLocation:    t.PickupLocation,
		DropoffLocation:   t.DropoffLocation,
		CurrentCycleHours: roundHours(t.CycleHoursUsed),
		CreatedAt:         t.CreatedAt,
	}
}
