package common

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/mentorhub/mentorhub-bot/internal/model"
)

// Canvas geometry.
const (
	imageWidth      = 1200
	imageHeight     = 800
	headerHeight    = 80
	leftLabelsWidth = 70
	dayPaddingX     = 6
	minCellHeight   = 10.0
	cellRadius      = 5.0
	daysInWeek      = 7
	defaultMinHour  = 8
	defaultMaxHour  = 20
)

// Color scheme.
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	headerColor    = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayColor     = color.NRGBA{255, 99, 71, 90}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{224, 224, 224, 255}
	sessionColor   = color.RGBA{133, 193, 85, 230}
	sessionText    = color.RGBA{20, 24, 28, 230}
)

// WeekStart returns the Monday of the week containing t, at midnight local.
func WeekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	return day.AddDate(0, 0, -(weekday - 1))
}

// dayIndex returns the column for a session start, comparing calendar dates.
// Elapsed-hours arithmetic would drift by one column after a DST shift, when
// a day has 23 or 25 hours.
func dayIndex(weekStart, start time.Time) int {
	for d := 0; d < daysInWeek; d++ {
		day := weekStart.AddDate(0, 0, d)
		if day.Year() == start.Year() && day.YearDay() == start.YearDay() {
			return d
		}
	}
	return -1
}

// RenderWeekImage draws one week of accepted sessions as a PNG grid:
// days across, hours down, one green cell per session.
func RenderWeekImage(requests []model.SessionRequest, weekStart time.Time, now time.Time) ([]byte, error) {
	weekEnd := weekStart.AddDate(0, 0, daysInWeek)

	type placed struct {
		start time.Time
		req   model.SessionRequest
	}
	var sessions []placed
	minHour, maxHour := defaultMinHour, defaultMaxHour
	for _, req := range requests {
		if req.Status != model.SessionRequestAccepted {
			continue
		}
		start, err := req.StartsAt()
		if err != nil || start.Before(weekStart) || !start.Before(weekEnd) {
			continue
		}
		sessions = append(sessions, placed{start: start, req: req})

		endHour := start.Add(time.Duration(req.Duration) * time.Minute).Hour()
		if start.Hour() < minHour {
			minHour = start.Hour()
		}
		if endHour+1 > maxHour {
			maxHour = endHour + 1
		}
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	gridWidth := float64(imageWidth - leftLabelsWidth)
	gridHeight := float64(imageHeight - headerHeight)
	dayWidth := gridWidth / daysInWeek
	hourHeight := gridHeight / float64(maxHour-minHour)

	// Day columns with headers.
	for day := 0; day < daysInWeek; day++ {
		x := float64(leftLabelsWidth) + float64(day)*dayWidth
		date := weekStart.AddDate(0, 0, day)

		stripe := evenDayColor
		if day%2 == 1 {
			stripe = oddDayColor
		}
		if date.Year() == now.Year() && date.YearDay() == now.YearDay() {
			stripe = todayColor
		}
		dc.SetColor(stripe)
		dc.DrawRectangle(x, headerHeight, dayWidth, gridHeight)
		dc.Fill()

		dc.SetColor(headerColor)
		label := fmt.Sprintf("%s %s", date.Format("Mon"), date.Format("02.01"))
		dc.DrawStringAnchored(label, x+dayWidth/2, headerHeight/2, 0.5, 0.5)
	}

	// Hour labels and grid lines.
	for hour := minHour; hour <= maxHour; hour++ {
		y := float64(headerHeight) + float64(hour-minHour)*hourHeight
		dc.SetColor(hourLabelColor)
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hour), float64(leftLabelsWidth)/2, y, 0.5, 0.5)
		dc.SetColor(hourLineColor)
		dc.DrawLine(float64(leftLabelsWidth), y, float64(imageWidth), y)
		dc.Stroke()
	}

	// Session cells.
	for _, s := range sessions {
		day := dayIndex(weekStart, s.start)
		if day < 0 {
			continue
		}
		x := float64(leftLabelsWidth) + float64(day)*dayWidth + dayPaddingX
		startOffset := float64(s.start.Hour()-minHour) + float64(s.start.Minute())/60
		y := float64(headerHeight) + startOffset*hourHeight
		height := float64(s.req.Duration) / 60 * hourHeight
		if height < minCellHeight {
			height = minCellHeight
		}

		dc.SetColor(sessionColor)
		dc.DrawRoundedRectangle(x, y, dayWidth-2*dayPaddingX, height, cellRadius)
		dc.Fill()

		dc.SetColor(sessionText)
		label := fmt.Sprintf("%s %s", s.start.Format("15:04"), s.req.MenteeName)
		dc.DrawStringAnchored(label, x+(dayWidth-2*dayPaddingX)/2, y+height/2, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}
