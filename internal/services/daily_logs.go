package services

import (
	"time"

	"eld-trip-service/internal/domain"
)

// BuildDailyLogs partitions a contiguous duty segment timeline into
// FMCSA-style daily log sheets.
//
// Segments are split at local midnight. The first day is padded with
// off-duty time from midnight to the trip start, and the last day from the
// trip end to the following midnight, so every sheet's per-status totals
// sum to exactly 24 hours.
func BuildDailyLogs(segments []domain.DutySegment) []domain.DailyLog {
	if len(segments) == 0 {
		return nil
	}

	first := segments[0]
	last := segments[len(segments)-1]

	padded := make([]domain.DutySegment, 0, len(segments)+2)

	if start := midnightBefore(first.StartAt); first.StartAt.After(start) {
		padded = append(padded, domain.DutySegment{
			Status:   domain.StatusOffDuty,
			StartAt:  start,
			EndAt:    first.StartAt,
			Location: first.Location,
			Remarks:  "Off duty before trip start",
		})
	}
	padded = append(padded, segments...)
	if end := midnightBefore(last.EndAt); last.EndAt.After(end) {
		padded = append(padded, domain.DutySegment{
			Status:   domain.StatusOffDuty,
			StartAt:  last.EndAt,
			EndAt:    end.AddDate(0, 0, 1),
			Location: last.Location,
			Remarks:  "Trip completed, off duty",
		})
	}

	var logs []domain.DailyLog
	for _, seg := range padded {
		// Split segments that cross midnight across the affected days.
		for seg.StartAt.Before(seg.EndAt) {
			day := midnightBefore(seg.StartAt)
			dayEnd := day.AddDate(0, 0, 1)

			if len(logs) == 0 || !logs[len(logs)-1].Date.Equal(day) {
				logs = append(logs, domain.DailyLog{
					Date:   day,
					Totals: make(map[domain.DutyStatus]time.Duration, 4),
				})
			}

			piece := seg
			if piece.EndAt.After(dayEnd) {
				piece.EndAt = dayEnd
			}

			sheet := &logs[len(logs)-1]
			sheet.Segments = append(sheet.Segments, piece)
			sheet.Totals[piece.Status] += piece.Duration()

			seg.StartAt = piece.EndAt
		}
	}

	return logs
}

func midnightBefore(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
