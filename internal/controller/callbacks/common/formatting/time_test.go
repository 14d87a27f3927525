package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0 minutes"},
		{1, "1 minutes"},
		{45, "45 minutes"},
		{59, "59 minutes"},
		{60, "1 hour"},
		{90, "1 hour and 30 minutes"},
		{120, "2 hours"},
		{125, "2 hours and 5 minutes"},
		{180, "3 hours"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestFormatDurationCompact(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0min"},
		{45, "45min"},
		{60, "1h"},
		{90, "1h 30min"},
		{120, "2h"},
		{125, "2h 5min"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDurationCompact(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestDateTimeHelpers(t *testing.T) {
	ts := time.Date(2025, 6, 10, 14, 5, 0, 0, time.UTC)

	assert.Equal(t, "10.06.2025 14:05", FormatDateTime(ts))
	assert.Equal(t, "10.06.2025", FormatDate(ts))
	assert.Equal(t, "10.06.2025 (Tuesday)", FormatDateWithWeekday(ts))
	assert.Equal(t, "14:05", FormatTime(ts))
	assert.Equal(t, "14:05-15:05", FormatTimeRange(ts, ts.Add(time.Hour)))
}
