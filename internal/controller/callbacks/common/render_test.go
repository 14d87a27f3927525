package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mentorhub/mentorhub-bot/internal/model"
	"github.com/mentorhub/mentorhub-bot/internal/platform"
)

func TestDurationHonorsPreference(t *testing.T) {
	assert.Equal(t, "1 hour and 30 minutes", Duration(90, false))
	assert.Equal(t, "1h 30min", Duration(90, true))
}

func TestRequestLine(t *testing.T) {
	req := &model.SessionRequest{
		MenteeName: "Alice",
		Date:       "2025-06-10",
		StartTime:  "14:00",
		Duration:   60,
		Status:     model.SessionRequestPending,
	}

	line := RequestLine(req, false)
	assert.Contains(t, line, "⏳")
	assert.Contains(t, line, "Alice")
	assert.Contains(t, line, "10.06.2025 14:00")
	assert.Contains(t, line, "1 hour")
}

func TestRequestDetailsShowsClosedCancellation(t *testing.T) {
	req := &model.SessionRequest{
		MenteeName: "Alice",
		Date:       "2025-06-10",
		StartTime:  "14:00",
		Duration:   60,
		Status:     model.SessionRequestAccepted,
	}

	// 5 hours before the start: inside the no-cancel window.
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)
	assert.Contains(t, RequestDetails(req, false, now), "cancellation is closed")

	// 7 hours before: cancellation still open, no warning shown.
	now = time.Date(2025, 6, 10, 7, 0, 0, 0, time.Local)
	assert.NotContains(t, RequestDetails(req, false, now), "cancellation is closed")
}

func TestRequestsOverviewGroupsAndCounts(t *testing.T) {
	groups := &platform.SessionRequestGroups{
		Pending: []model.SessionRequest{
			{MenteeName: "Alice", Date: "2025-06-10", StartTime: "14:00", Duration: 60, Status: model.SessionRequestPending},
		},
		Accepted: []model.SessionRequest{
			{MenteeName: "Bob", Date: "2025-06-11", StartTime: "09:00", Duration: 30, Status: model.SessionRequestAccepted},
		},
	}

	text := RequestsOverview(groups, true)
	assert.Contains(t, text, "Pending (1)")
	assert.Contains(t, text, "Accepted (1)")
	assert.NotContains(t, text, "Rejected")
	assert.Contains(t, text, "30min")
}

func TestRequestsOverviewEmpty(t *testing.T) {
	text := RequestsOverview(&platform.SessionRequestGroups{}, false)
	assert.Contains(t, text, "No requests yet")
}

func TestSearchResultsText(t *testing.T) {
	results := &model.SearchResults{
		Users:       []model.UserSearchResult{{ID: "u1", Name: "Alice", Role: "mentor"}},
		Communities: []model.CommunitySearchResult{{ID: "c1", Name: "Go Learners", MemberCount: 12}},
	}

	text := SearchResultsText(results)
	assert.Contains(t, text, "Users (1)")
	assert.Contains(t, text, "Alice (mentor)")
	assert.Contains(t, text, "Communities (1)")
	assert.Contains(t, text, "Go Learners · 12 members")
}

func TestSearchResultsTextEmpty(t *testing.T) {
	assert.Equal(t, "🔍 Nothing found", SearchResultsText(&model.SearchResults{}))
}
