package dto

import (
	"math"
	"time"

	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/services"
)

const metersPerMile = 1609.34

type PlanTripRequest struct {
	CurrentLocation   string     `json:"current_location"`
	PickupLocation    string     `json:"pickup_location"`
	DropoffLocation   string     `json:"dropoff_location"`
	CurrentCycleHours float64    `json:"current_cycle_hours"`
	StartAt           *time.Time `json:"start_at"`
}

type WaypointResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type RouteLegResponse struct {
	DistanceMiles float64 `json:"distance_miles"`
	DurationHours float64 `json:"duration_hours"`
}

type RouteResponse struct {
	TotalDistanceMiles float64            `json:"total_distance_miles"`
	TotalDurationHours float64            `json:"total_duration_hours"`
	Waypoints          []WaypointResponse `json:"waypoints"`
	Legs               []RouteLegResponse `json:"legs"`
	Geometry           [][]float64        `json:"geometry"`
}

type LogEntryResponse struct {
	DutyStatus    string    `json:"duty_status"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	DurationHours float64   `json:"duration_hours"`
	Location      string    `json:"location"`
	Remarks       string    `json:"remarks"`
}

type DailyLogSegmentResponse struct {
	Status        string  `json:"status"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
	Note          string  `json:"note"`
}

type DailyLogResponse struct {
	Date     string                    `json:"date"`
	Segments []DailyLogSegmentResponse `json:"segments"`
	Totals   map[string]float64        `json:"totals"`
}

type PlanTripResponse struct {
	Trip       TripResponse       `json:"trip"`
	Route      RouteResponse      `json:"route"`
	LogEntries []LogEntryResponse `json:"log_entries"`
	DailyLogs  []DailyLogResponse `json:"daily_logs"`
}

type TripLogsResponse struct {
	TripID     string             `json:"trip_id"`
	LogEntries []LogEntryResponse `json:"log_entries"`
	DailyLogs  []DailyLogResponse `json:"daily_logs"`
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

func roundMiles(meters int) float64 {
	return math.Round(float64(meters)/metersPerMile*10) / 10
}

func RouteResponseFrom(r *domain.Route) RouteResponse {
	waypoints := make([]WaypointResponse, 0, len(r.Waypoints))
	for _, w := range r.Waypoints {
		waypoints = append(waypoints, WaypointResponse{
			Name: w.Name,
			Lat:  w.Coords.Lat,
			Lon:  w.Coords.Lon,
		})
	}

	legs := make([]RouteLegResponse, 0, len(r.Legs))
	for _, l := range r.Legs {
		legs = append(legs, RouteLegResponse{
			DistanceMiles: roundMiles(l.DistanceMeters),
			DurationHours: roundHours(l.Duration),
		})
	}

	return RouteResponse{
		TotalDistanceMiles: roundMiles(r.TotalDistanceMeters),
		TotalDurationHours: roundHours(r.TotalDuration),
		Waypoints:          waypoints,
		Legs:               legs,
		Geometry:           r.Geometry,
	}
}

func LogEntriesFrom(segments []domain.DutySegment) []LogEntryResponse {
	entries := make([]LogEntryResponse, 0, len(segments))
	for _, s := range segments {
		entries = append(entries, LogEntryResponse{
			DutyStatus:    string(s.Status),
			StartAt:       s.StartAt,
			EndAt:         s.EndAt,
			DurationHours: roundHours(s.Duration()),
			Location:      s.Location,
			Remarks:       s.Remarks,
		})
	}
	return entries
}

func DailyLogsFrom(logs []domain.DailyLog) []DailyLogResponse {
	sheets := make([]DailyLogResponse, 0, len(logs))
	for _, sheet := range logs {
		segments := make([]DailyLogSegmentResponse, 0, len(sheet.Segments))
		for _, s := range sheet.Segments {
			segments = append(segments, DailyLogSegmentResponse{
				Status:        string(s.Status),
				StartTime:     s.StartAt.Format("15:04"),
				EndTime:       s.EndAt.Format("15:04"),
				DurationHours: roundHours(s.Duration()),
				Note:          s.Remarks,
			})
		}

		totals := make(map[string]float64, len(sheet.Totals))
		for status, d := range sheet.Totals {
			totals[string(status)] = roundHours(d)
		}

		sheets = append(sheets, DailyLogResponse{
			Date:     sheet.Date.Format("2006-01-02"),
			Segments: segments,
			Totals:   totals,
		})
	}
	return sheets
}

func PlanTripResponseFrom(plan *services.TripPlan) PlanTripResponse {
	return PlanTripResponse{
		Trip:       TripResponseFrom(plan.Trip),
		Route:      RouteResponseFrom(plan.Route),
		LogEntries: LogEntriesFrom(plan.LogEntries),
		DailyLogs:  DailyLogsFrom(plan.DailyLogs),
	}
}
