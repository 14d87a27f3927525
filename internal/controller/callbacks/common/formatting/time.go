// Package formatting holds the one shared set of display helpers. Both the
// list views and the confirmation dialogs render through these, so a duration
// or a cancellation cutoff can never disagree between screens.
package formatting

import (
	"fmt"
	"time"
)

// FormatDateTime formats a full timestamp.
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatDate formats only the date.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday formats the date with its weekday name.
func FormatDateWithWeekday(t time.Time) string {
	return t.Format("02.01.2006 (Monday)")
}

// FormatTime formats only the wall-clock time.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatTimeRange formats a start-end range.
func FormatTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

// FormatDuration renders a session length in full words:
// "45 minutes", "1 hour", "1 hour and 30 minutes", "2 hours and 5 minutes".
// The minutes part is omitted when zero; "hour" pluralizes past one.
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60

	hourWord := "hour"
	if hours > 1 {
		hourWord = "hours"
	}
	if mins == 0 {
		return fmt.Sprintf("%d %s", hours, hourWord)
	}
	return fmt.Sprintf("%d %s and %d minutes", hours, hourWord, mins)
}

// FormatDurationCompact is the short variant used in dense list rows:
// "45min", "1h", "1h 30min", "2h 5min".
func FormatDurationCompact(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dmin", hours, mins)
}
