package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptedRequest(date, startTime string) *SessionRequest {
	return &SessionRequest{
		ID:        "req-1",
		Date:      date,
		StartTime: startTime,
		Duration:  60,
		Status:    SessionRequestAccepted,
	}
}

func TestStartsAtParsesLocalWallClock(t *testing.T) {
	req := acceptedRequest("2025-06-10", "14:00")

	start, err := req.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 14, 0, 0, 0, time.Local), start)
}

func TestStartsAtRejectsGarbage(t *testing.T) {
	req := acceptedRequest("June 10th", "2pm")

	_, err := req.StartsAt()
	assert.Error(t, err)
}

func TestCancellationGateThreshold(t *testing.T) {
	req := acceptedRequest("2025-06-10", "14:00")

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before", time.Date(2025, 6, 9, 14, 0, 0, 0, time.Local), true},
		{"exactly six hours", time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local), true},
		{"one second past the cutoff", time.Date(2025, 6, 10, 8, 0, 1, 0, time.Local), false},
		{"one hour before", time.Date(2025, 6, 10, 13, 0, 0, 0, time.Local), false},
		{"already started", time.Date(2025, 6, 10, 15, 0, 0, 0, time.Local), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, req.CanCancel(tt.now))
		})
	}
}

func TestCancellationGateRequiresAcceptedStatus(t *testing.T) {
	farAway := time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local)

	for _, status := range []SessionRequestStatus{SessionRequestPending, SessionRequestRejected, SessionRequestCancelled} {
		req := acceptedRequest("2025-06-10", "14:00")
		req.Status = status
		assert.False(t, req.CanCancel(farAway), "status %s must never be cancellable", status)
	}
}

func TestCancellationGateFailsOnUnparseableStart(t *testing.T) {
	req := acceptedRequest("not-a-date", "14:00")
	assert.False(t, req.CanCancel(time.Time{}))
}

func TestHoursUntilStart(t *testing.T) {
	req := acceptedRequest("2025-06-10", "14:00")

	hours, err := req.HoursUntilStart(time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.InDelta(t, 6.0, hours, 0.0001)
}

func TestTransitionClosure(t *testing.T) {
	all := []SessionRequestStatus{SessionRequestPending, SessionRequestAccepted, SessionRequestRejected, SessionRequestCancelled}

	allowed := map[SessionRequestStatus]map[SessionRequestStatus]bool{
		SessionRequestPending:  {SessionRequestAccepted: true, SessionRequestRejected: true},
		SessionRequestAccepted: {SessionRequestCancelled: true},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, SessionRequestPending.IsTerminal())
	assert.False(t, SessionRequestAccepted.IsTerminal())
	assert.True(t, SessionRequestRejected.IsTerminal())
	assert.True(t, SessionRequestCancelled.IsTerminal())
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, SessionRequestPending.IsValid())
	assert.False(t, SessionRequestStatus("APPROVED").IsValid())
	assert.False(t, SessionRequestStatus("").IsValid())
}
