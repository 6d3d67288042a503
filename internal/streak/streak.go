// Package streak derives read-only progress views from a child's log
// entries: the consecutive-day streak and the Monday-start weekly completion
// set. Both are pure functions over entry timestamps.
package streak

import (
	"time"

	"abctrack/internal/domain/models"
)

// maxStreak caps the backward walk over the date set.
const maxStreak = 30

// WeekDay is one day of the weekly view.
type WeekDay struct {
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

// WeekView reports, for the Monday-start week containing now, which days
// have at least one log entry and which index is today (0 = Monday).
type WeekView struct {
	WeekStart  time.Time  `json:"week_start"`
	Days       [7]WeekDay `json:"days"`
	TodayIndex int        `json:"today_index"`
}

// Streak counts consecutive calendar days with at least one entry, ending
// today or yesterday. A most-recent entry older than yesterday zeroes the
// streak. Entries from both sentiment partitions count.
func Streak(entries []models.LogEntry, now time.Time) int {
	days := dateSet(entries, now.Location())
	if len(days) == 0 {
		return 0
	}

	var latest time.Time
	for d := range days {
		t, _ := time.ParseInLocation("2006-01-02", d, now.Location())
		if t.After(latest) {
			latest = t
		}
	}

	today := truncateDay(now)
	if latest.Before(today.AddDate(0, 0, -1)) {
		return 0
	}

	count := 0
	for d := latest; count < maxStreak; d = d.AddDate(0, 0, -1) {
		if !days[dayKey(d)] {
			break
		}
		count++
	}
	return count
}

// Week computes the Monday-start weekly completion view for the week
// containing now.
func Week(entries []models.LogEntry, now time.Time) WeekView {
	days := dateSet(entries, now.Location())
	today := truncateDay(now)
	start := weekStart(today)

	view := WeekView{WeekStart: start}
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		view.Days[i] = WeekDay{Date: d, Completed: days[dayKey(d)]}
		if d.Equal(today) {
			view.TodayIndex = i
		}
	}
	return view
}

// weekStart returns the Monday of the week containing day. Sunday belongs to
// the week started by the preceding Monday.
func weekStart(day time.Time) time.Time {
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	return day.AddDate(0, 0, -offset)
}

func dateSet(entries []models.LogEntry, loc *time.Location) map[string]bool {
	days := make(map[string]bool, len(entries))
	for _, e := range entries {
		days[dayKey(e.Timestamp.In(loc))] = true
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
