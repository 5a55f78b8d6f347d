package domain

import (
	"testing"
	"time"
)

func TestDutyStatusValid(t *testing.T) {
	valid := []DutyStatus{StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDutyNotDriving}
	for _, s := range valid {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}

	for _, s := range []DutyStatus{"", "parked", "OFF_DUTY"} {
		if s.Valid() {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestDutySegmentDuration(t *testing.T) {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	seg := DutySegment{
		Status:  StatusDriving,
		StartAt: start,
		EndAt:   start.Add(90 * time.Minute),
	}
	if seg.Duration() != 90*time.Minute {
		t.Fatalf("duration = %v, want 90m", seg.Duration())
	}
}
