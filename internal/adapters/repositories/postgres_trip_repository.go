package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/platform/obs"
	"eld-trip-service/internal/ports"
)

// PostgresTripRepository persists trips and their generated log sheets.
// Daily logs are stored as JSONB snapshots; they are derived data and are
// regenerated per planning request, never updated in place.
type PostgresTripRepository struct {
	DB *sql.DB
}

func NewPostgresTripRepository(db *sql.DB) *PostgresTripRepository {
	return &PostgresTripRepository{DB: db}
}

// SaveTripPlan stores the trip, its duty segments, and its daily logs in a
// single transaction.
func (r *PostgresTripRepository) SaveTripPlan(
	ctx context.Context,
	trip domain.Trip,
	segments []domain.DutySegment,
	logs []domain.DailyLog,
) (err error) {
	defer obs.Time(ctx, "repo.SaveTripPlan")(&err)

	if r.DB == nil {
		return errors.New("trip repository: db is nil")
	}
	if trip.ID == "" {
		return errors.New("save trip plan: trip id must not be empty")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save trip plan: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO trips (id, current_location, pickup_location, dropoff_location, cycle_hours_used_seconds, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);
	`, trip.ID, trip.CurrentLocation, trip.PickupLocation, trip.DropoffLocation,
		int64(trip.CycleHoursUsed/time.Second), trip.CreatedAt)
	if err != nil {
		return fmt.Errorf("save trip plan: insert trip: %w", err)
	}

	segStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO log_entries (trip_id, duty_status, start_at, end_at, location, remarks)
	VALUES ($1, $2, $3, $4, $5, $6);
	`)
	if err != nil {
		return fmt.Errorf("save trip plan: prepare log entries: %w", err)
	}
	defer segStmt.Close()

	for i, seg := range segments {
		if _, err := segStmt.ExecContext(ctx, trip.ID, string(seg.Status), seg.StartAt, seg.EndAt, seg.Location, seg.Remarks); err != nil {
			return fmt.Errorf("save trip plan: insert log entry %d: %w", i, err)
		}
	}

	logStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO daily_logs (trip_id, log_date, sheet)
	VALUES ($1, $2, $3);
	`)
	if err != nil {
		return fmt.Errorf("save trip plan: prepare daily logs: %w", err)
	}
	defer logStmt.Close()

	for _, sheet := range logs {
		payload, err := json.Marshal(sheet)
		if err != nil {
			return fmt.Errorf("save trip plan: encode daily log %s: %w", sheet.Date.Format("2006-01-02"), err)
		}
		if _, err := logStmt.ExecContext(ctx, trip.ID, sheet.Date, payload); err != nil {
			return fmt.Errorf("save trip plan: insert daily log %s: %w", sheet.Date.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save trip plan: commit: %w", err)
	}

	return nil
}

func (r *PostgresTripRepository) GetTrip(ctx context.Context, tripID string) (domain.Trip, error) {
	if r.DB == nil {
		return domain.Trip{}, errors.New("trip repository: db is nil")
	}

	var trip domain.Trip
	var cycleSeconds int64
	err := r.DB.QueryRowContext(ctx, `
	SELECT id, current_location, pickup_location, dropoff_location, cycle_hours_used_seconds, created_at
	FROM trips
	WHERE id = $1;
	`, tripID).Scan(
		&trip.ID, &trip.CurrentLocation, &trip.PickupLocation,
		&trip.DropoffLocation, &cycleSeconds, &trip.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Trip{}, fmt.Errorf("get trip %q: %w", tripID, ports.ErrTripNotFound)
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("get trip %q: %w", tripID, err)
	}

	trip.CycleHoursUsed = time.Duration(cycleSeconds) * time.Second
	return trip, nil
}

func (r *PostgresTripRepository) ListTrips(ctx context.Context) (_ []domain.Trip, err error) {
	defer obs.Time(ctx, "repo.ListTrips")(&err)

	if r.DB == nil {
		return nil, errors.New("trip repository: db is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT id, current_location, pickup_location, dropoff_location, cycle_hours_used_seconds, created_at
	FROM trips
	ORDER BY created_at DESC;
	`)
	if err != nil {
		return nil, fmt.Errorf("list trips: query: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		var trip domain.Trip
		var cycleSeconds int64
		if err := rows.Scan(
			&trip.ID, &trip.CurrentLocation, &trip.PickupLocation,
			&trip.DropoffLocation, &cycleSeconds, &trip.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list trips: scan: %w", err)
		}
		trip.CycleHoursUsed = time.Duration(cycleSeconds) * time.Second
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: iterate: %w", err)
	}

	return trips, nil
}

func (r *PostgresTripRepository) ListLogEntries(ctx context.Context, tripID string) (_ []domain.DutySegment, err error) {
	defer obs.Time(ctx, "repo.ListLogEntries")(&err)

	if r.DB == nil {
		return nil, errors.New("trip repository: db is nil")
	}

	if _, err := r.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT duty_status, start_at, end_at, location, remarks
	FROM log_entries
	WHERE trip_id = $1
	ORDER BY start_at;
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("list log entries: query: %w", err)
	}
	defer rows.Close()

	segments := []domain.DutySegment{}
	for rows.Next() {
		var seg domain.DutySegment
		var status string
		if err := rows.Scan(&status, &seg.StartAt, &seg.EndAt, &seg.Location, &seg.Remarks); err != nil {
			return nil, fmt.Errorf("list log entries: scan: %w", err)
		}
		seg.Status = domain.DutyStatus(status)
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list log entries: iterate: %w", err)
	}

	return segments, nil
}

func (r *PostgresTripRepository) ListDailyLogs(ctx context.Context, tripID string) (_ []domain.DailyLog, err error) {
	defer obs.Time(ctx, "repo.ListDailyLogs")(&err)

	if r.DB == nil {
		return nil, errors.New("trip repository: db is nil")
	}

	if _, err := r.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT sheet
	FROM daily_logs
	WHERE trip_id = $1
	ORDER BY log_date;
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: query: %w", err)
	}
	defer rows.Close()

	logs := []domain.DailyLog{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("list daily logs: scan: %w", err)
		}
		var sheet domain.DailyLog
		if err := json.Unmarshal(payload, &sheet); err != nil {
			return nil, fmt.Errorf("list daily logs: decode sheet: %w", err)
		}
		logs = append(logs, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list daily logs: iterate: %w", err)
	}

	return logs, nil
}
