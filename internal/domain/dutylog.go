package domain

import "time"

// DutyStatus is one of the four FMCSA driver duty statuses recorded on an
// ELD log sheet. The string values are the wire/storage representation.
type DutyStatus string

const (
	StatusOffDuty           DutyStatus = "off_duty"
	StatusSleeperBerth      DutyStatus = "sleeper_berth"
	StatusDriving           DutyStatus = "driving"
	StatusOnDutyNotDriving  DutyStatus = "on_duty_not_driving"
)

func (s DutyStatus) Valid() bool {
	switch s {
	case StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDutyNotDriving:
		return true
	}
	return false
}

// Represents a contiguous span of a single duty status on the driver's
// timeline. Segments produced by the scheduler are contiguous and
// non-overlapping: each segment starts exactly where the previous one ended.
type DutySegment struct {
	Status   DutyStatus
	StartAt  time.Time
	EndAt    time.Time
	Location string
	Remarks  string
}

func (s DutySegment) Duration() time.Duration { return s.EndAt.Sub(s.StartAt) }

// Represents one calendar day of an ELD log sheet.
// Date is midnight at the start of the day in the trip's local time.
// Segments are clipped to the day and padded with off-duty time at the
// edges, so per-status totals always sum to exactly 24 hours.
type DailyLog struct {
	Date     time.Time
	Segments []DutySegment
	Totals   map[DutyStatus]time.Duration
}
