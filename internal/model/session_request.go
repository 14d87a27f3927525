package model

import (
	"fmt"
	"time"
)

type SessionRequestStatus string

const (
	SessionRequestPending   SessionRequestStatus = "PENDING"
	SessionRequestAccepted  SessionRequestStatus = "ACCEPTED"
	SessionRequestRejected  SessionRequestStatus = "REJECTED"
	SessionRequestCancelled SessionRequestStatus = "CANCELLED"
)

// MinCancellationLead is the minimum lead time before the session start
// at which an accepted request may still be cancelled.
const MinCancellationLead = 6 * time.Hour

// SessionRequest is a mentee's booking request for a mentor's service slot,
// in the shape the platform API returns it.
type SessionRequest struct {
	ID              string               `json:"id"`
	MentorID        string               `json:"mentorId"`
	MenteeID        string               `json:"menteeId"`
	MenteeName      string               `json:"menteeName"`
	ServiceID       string               `json:"serviceId"`
	CommunityID     string               `json:"communityId,omitempty"`
	Date            string               `json:"date"`      // YYYY-MM-DD
	StartTime       string               `json:"startTime"` // HH:MM, local wall clock
	Duration        int                  `json:"duration"`  // minutes
	Agenda          string               `json:"agenda"`
	Status          SessionRequestStatus `json:"status"`
	RejectionReason string               `json:"rejectionReason,omitempty"` // also carries the cancellation reason
	CalendarEventID string               `json:"calendarEventId,omitempty"` // set only once accepted
	CreatedAt       time.Time            `json:"createdAt"`
}

// IsValid reports whether s is one of the four enumerated statuses.
func (s SessionRequestStatus) IsValid() bool {
	switch s {
	case SessionRequestPending, SessionRequestAccepted, SessionRequestRejected, SessionRequestCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions exist out of s.
func (s SessionRequestStatus) IsTerminal() bool {
	return s == SessionRequestRejected || s == SessionRequestCancelled
}

// CanTransitionTo reports whether the status machine allows s -> next.
// The cancellation time gate is checked separately; this is pure topology.
func (s SessionRequestStatus) CanTransitionTo(next SessionRequestStatus) bool {
	switch s {
	case SessionRequestPending:
		return next == SessionRequestAccepted || next == SessionRequestRejected
	case SessionRequestAccepted:
		return next == SessionRequestCancelled
	default:
		return false
	}
}

func (r *SessionRequest) IsPending() bool {
	return r.Status == SessionRequestPending
}

func (r *SessionRequest) IsAccepted() bool {
	return r.Status == SessionRequestAccepted
}

// StartsAt combines Date and StartTime into the session's start instant,
// interpreted in the process-local timezone.
func (r *SessionRequest) StartsAt() (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", r.Date+" "+r.StartTime, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse session start %q %q: %w", r.Date, r.StartTime, err)
	}
	return t, nil
}

// HoursUntilStart returns how many hours remain until the session starts.
// Negative once the session has begun.
func (r *SessionRequest) HoursUntilStart(now time.Time) (float64, error) {
	start, err := r.StartsAt()
	if err != nil {
		return 0, err
	}
	return start.Sub(now).Hours(), nil
}

// CanCancel applies the cancellation gate: an accepted request may be
// cancelled only while at least MinCancellationLead remains before the
// session starts. Requests with an unparseable start never pass the gate.
func (r *SessionRequest) CanCancel(now time.Time) bool {
	if r.Status != SessionRequestAccepted {
		return false
	}
	start, err := r.StartsAt()
	if err != nil {
		return false
	}
	return start.Sub(now) >= MinCancellationLead
}
