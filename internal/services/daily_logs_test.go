package services

import (
	"testing"
	"time"

	"eld-trip-service/internal/domain"
)

func assertFullDays(t *testing.T, logs []domain.DailyLog) {
	t.Helper()
	for _, sheet := range logs {
		var total time.Duration
		for _, d := range sheet.Totals {
			total += d
		}
		if total != 24*time.Hour {
			t.Fatalf("day %s totals sum to %v, want 24h", sheet.Date.Format("2006-01-02"), total)
		}

		var segTotal time.Duration
		for i, seg := range sheet.Segments {
			segTotal += seg.Duration()
			if seg.StartAt.Before(sheet.Date) || seg.EndAt.After(sheet.Date.AddDate(0, 0, 1)) {
				t.Fatalf("day %s segment %d leaks outside the day: %+v", sheet.Date.Format("2006-01-02"), i, seg)
			}
		}
		if segTotal != 24*time.Hour {
			t.Fatalf("day %s segments sum to %v, want 24h", sheet.Date.Format("2006-01-02"), segTotal)
		}
	}
}

func TestBuildDailyLogsSingleDay(t *testing.T) {
	startAt := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	segs, err := BuildSchedule(testTrip(0), singleLegRoute(804_672, 8*time.Hour), startAt, testLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logs := BuildDailyLogs(segs)
	if len(logs) != 1 {
		t.Fatalf("expected 1 daily log, got %d", len(logs))
	}
	assertFullDays(t, logs)

	sheet := logs[0]
	if !sheet.Date.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("sheet date = %v", sheet.Date)
	}
	// 8h pre-trip padding plus 6h post-trip padding.
	if got := sheet.Totals[domain.StatusOffDuty]; got != 14*time.Hour {
		t.Fatalf("off-duty total = %v, want 14h", got)
	}
	if got := sheet.Totals[domain.StatusDriving]; got != 8*time.Hour {
		t.Fatalf("driving total = %v, want 8h", got)
	}
	if got := sheet.Totals[domain.StatusOnDutyNotDriving]; got != 2*time.Hour {
		t.Fatalf("on-duty total = %v, want 2h", got)
	}
}

func TestBuildDailyLogsSplitsAtMidnight(t *testing.T) {
	limits := testLimits()
	limits.BreakAfterDriving = limits.MaxDrivePerWindow
	limits.PickupDuration = 0
	limits.DropoffDuration = 0

	startAt := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

	segs, err := BuildSchedule(testTrip(0), singleLegRoute(1_448_410, 14*time.Hour), startAt, limits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Timeline: drive 06:00-17:00, rest 17:00-03:00(+1), drive 03:00-06:00.
	logs := BuildDailyLogs(segs)
	if len(logs) != 2 {
		t.Fatalf("expected 2 daily logs, got %d", len(logs))
	}
	assertFullDays(t, logs)

	day1, day2 := logs[0], logs[1]
	if got := day1.Totals[domain.StatusDriving]; got != 11*time.Hour {
		t.Fatalf("day 1 driving = %v, want 11h", got)
	}
	if got := day1.Totals[domain.StatusSleeperBerth]; got != 7*time.Hour {
		t.Fatalf("day 1 sleeper berth = %v, want 7h", got)
	}
	if got := day2.Totals[domain.StatusSleeperBerth]; got != 3*time.Hour {
		t.Fatalf("day 2 sleeper berth = %v, want 3h", got)
	}
	if got := day2.Totals[domain.StatusDriving]; got != 3*time.Hour {
		t.Fatalf("day 2 driving = %v, want 3h", got)
	}
	if got := day2.Totals[domain.StatusOffDuty]; got != 18*time.Hour {
		t.Fatalf("day 2 off-duty padding = %v, want 18h", got)
	}
}

func TestBuildDailyLogsTripEndingAtMidnight(t *testing.T) {
	limits := testLimits()
	limits.PickupDuration = 0
	limits.DropoffDuration = 0

	startAt := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	segs, err := BuildSchedule(testTrip(0), singleLegRoute(600_000, 6*time.Hour), startAt, limits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logs := BuildDailyLogs(segs)
	if len(logs) != 1 {
		t.Fatalf("expected 1 daily log, got %d", len(logs))
	}
	assertFullDays(t, logs)
}

func TestBuildDailyLogsEmpty(t *testing.T) {
	if logs := BuildDailyLogs(nil); logs != nil {
		t.Fatalf("expected nil for empty input, got %+v", logs)
	}
}
