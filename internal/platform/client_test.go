package platform

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL}, zap.NewNop())
}

func TestServerErrorMessageIsForwarded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"session request is no longer pending"}`))
	})

	_, err := client.UpdateSessionRequest(context.Background(), "cookie", "svc-1", "req-1", SessionRequestUpdate{Status: "accepted"})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "session request is no longer pending", apiErr.Message)
}

func TestErrorWithoutMessageFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := client.ListUserReports(context.Background(), "cookie")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "request failed with status 502", apiErr.Message)
}

func TestUnbanTreatsEmptyBodyAsSuccess(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	err := client.UnbanUser(context.Background(), "cookie", "user-7")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/admin/banned-users/user-7", gotPath)
}

func TestDiscardNeverSendsBanReason(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &body))
		_, _ = w.Write([]byte(`{"userReport":{"id":"rep-1","resolution":"discard"}}`))
	})

	// A stray reason alongside a discard must be dropped from the payload.
	report, err := client.ResolveUserReport(context.Background(), "cookie", "rep-1", model.ReportActionDiscard, "should not travel")
	require.NoError(t, err)

	assert.Equal(t, "discard", body["action"])
	_, present := body["banReason"]
	assert.False(t, present)
	assert.Equal(t, model.ReportActionDiscard, report.Resolution)
}

func TestBanSendsReason(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		_, _ = w.Write([]byte(`{"userReport":{"id":"rep-2","resolution":"ban"}}`))
	})

	_, err := client.ResolveUserReport(context.Background(), "cookie", "rep-2", model.ReportActionBan, "repeated harassment of mentees")
	require.NoError(t, err)

	assert.Equal(t, "ban", body["action"])
	assert.Equal(t, "repeated harassment of mentees", body["banReason"])
}

func TestSessionCookieAndCorrelationIDAreSent(t *testing.T) {
	var cookie *http.Cookie
	var requestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cookie, _ = r.Cookie(sessionCookieName)
		requestID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"users":[],"communities":[]}`))
	})

	_, err := client.Search(context.Background(), "secret-cookie", "alice")
	require.NoError(t, err)
	require.NotNil(t, cookie)
	assert.Equal(t, "secret-cookie", cookie.Value)
	assert.NotEmpty(t, requestID)
}

func TestListSessionRequestsDecodesGroups(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/my/svc-9/session-requests", r.URL.Path)
		_, _ = w.Write([]byte(`{"sessionRequests":{
			"PENDING":[{"id":"a","status":"PENDING","date":"2025-06-10","startTime":"14:00","duration":60}],
			"ACCEPTED":[{"id":"b","status":"ACCEPTED","calendarEventId":"cal-1"}],
			"REJECTED":[],
			"CANCELLED":[]
		}}`))
	})

	groups, err := client.ListSessionRequests(context.Background(), "cookie", "svc-9")
	require.NoError(t, err)
	require.Len(t, groups.Pending, 1)
	require.Len(t, groups.Accepted, 1)
	assert.Equal(t, "a", groups.Pending[0].ID)
	assert.Equal(t, "cal-1", groups.Accepted[0].CalendarEventID)
	assert.Empty(t, groups.Rejected)
}
