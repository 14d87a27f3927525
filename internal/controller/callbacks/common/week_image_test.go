package common

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub-bot/internal/model"
)

func TestWeekStart(t *testing.T) {
	// Wednesday 2025-06-11 -> Monday 2025-06-09.
	wednesday := time.Date(2025, 6, 11, 15, 30, 0, 0, time.Local)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local), WeekStart(wednesday))

	// Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2025, 6, 15, 1, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local), WeekStart(sunday))

	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local)
	assert.Equal(t, monday, WeekStart(monday))
}

func TestDayIndex(t *testing.T) {
	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local)

	assert.Equal(t, 0, dayIndex(weekStart, time.Date(2025, 6, 9, 8, 0, 0, 0, time.Local)))
	assert.Equal(t, 3, dayIndex(weekStart, time.Date(2025, 6, 12, 23, 59, 0, 0, time.Local)))
	assert.Equal(t, 6, dayIndex(weekStart, time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, -1, dayIndex(weekStart, time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)))
}

func TestDayIndexAcrossDSTShift(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// The week of 2025-03-24 has a 23-hour Sunday: clocks jump forward on
	// March 30. Only 143 elapsed hours separate Sunday morning from Monday
	// midnight, so hour division would land it in the Saturday column.
	weekStart := time.Date(2025, 3, 24, 0, 0, 0, 0, berlin)
	sundayMorning := time.Date(2025, 3, 30, 10, 0, 0, 0, berlin)

	assert.Less(t, sundayMorning.Sub(weekStart).Hours(), 144.0)
	assert.Equal(t, 6, dayIndex(weekStart, sundayMorning))
}

func TestRenderWeekImageProducesPNG(t *testing.T) {
	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local)
	requests := []model.SessionRequest{
		{MenteeName: "Alice", Date: "2025-06-10", StartTime: "14:00", Duration: 60, Status: model.SessionRequestAccepted},
		{MenteeName: "Bob", Date: "2025-06-12", StartTime: "09:30", Duration: 90, Status: model.SessionRequestAccepted},
		// Pending requests never appear on the week view.
		{MenteeName: "Carol", Date: "2025-06-11", StartTime: "11:00", Duration: 30, Status: model.SessionRequestPending},
		// Outside the rendered week.
		{MenteeName: "Dave", Date: "2025-06-20", StartTime: "10:00", Duration: 60, Status: model.SessionRequestAccepted},
	}

	data, err := RenderWeekImage(requests, weekStart, weekStart)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
}

func TestRenderWeekImageEmptyWeek(t *testing.T) {
	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local)

	data, err := RenderWeekImage(nil, weekStart, weekStart)
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}
