package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/cache"
	"github.com/mentorhub/mentorhub-bot/internal/model"
	"github.com/mentorhub/mentorhub-bot/internal/platform"
)

type sessionAPIStub struct {
	listCalls   int
	updateCalls []platform.SessionRequestUpdate
	groups      *platform.SessionRequestGroups
	updateErr   error
}

func (s *sessionAPIStub) ListSessionRequests(_ context.Context, _, _ string) (*platform.SessionRequestGroups, error) {
	s.listCalls++
	if s.groups != nil {
		return s.groups, nil
	}
	return &platform.SessionRequestGroups{}, nil
}

func (s *sessionAPIStub) UpdateSessionRequest(_ context.Context, _, _, requestID string, update platform.SessionRequestUpdate) (*model.SessionRequest, error) {
	s.updateCalls = append(s.updateCalls, update)
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &model.SessionRequest{ID: requestID}, nil
}

func newSessionService(api *sessionAPIStub) (*SessionRequestService, *cache.Store) {
	store := cache.NewStore()
	svc := NewSessionRequestService(api, store, zap.NewNop())
	return svc, store
}

func pendingRequest() *model.SessionRequest {
	return &model.SessionRequest{
		ID:        "req-1",
		Date:      "2025-06-10",
		StartTime: "14:00",
		Duration:  60,
		Status:    model.SessionRequestPending,
	}
}

func TestAcceptPendingRequest(t *testing.T) {
	api := &sessionAPIStub{}
	svc, _ := newSessionService(api)

	_, err := svc.Accept(context.Background(), "cookie", "svc-1", pendingRequest(), "updated agenda")
	require.NoError(t, err)

	require.Len(t, api.updateCalls, 1)
	assert.Equal(t, "accepted", api.updateCalls[0].Status)
	assert.Equal(t, "updated agenda", api.updateCalls[0].Agenda)
	assert.Empty(t, api.updateCalls[0].RejectionReason)
}

func TestAcceptNonPendingFailsWithoutNetworkCall(t *testing.T) {
	api := &sessionAPIStub{}
	svc, _ := newSessionService(api)

	req := pendingRequest()
	req.Status = model.SessionRequestAccepted

	_, err := svc.Accept(context.Background(), "cookie", "svc-1", req, "")
	assert.ErrorIs(t, err, ErrRequestNotPending)
	assert.Empty(t, api.updateCalls, "a forbidden transition must not reach the API")
}

func TestRejectPendingRequest(t *testing.T) {
	api := &sessionAPIStub{}
	svc, _ := newSessionService(api)

	_, err := svc.Reject(context.Background(), "cookie", "svc-1", pendingRequest(), "schedule conflict")
	require.NoError(t, err)

	require.Len(t, api.updateCalls, 1)
	assert.Equal(t, "rejected", api.updateCalls[0].Status)
	assert.Equal(t, "schedule conflict", api.updateCalls[0].RejectionReason)
}

func TestTerminalRequestsRejectAllActions(t *testing.T) {
	api := &sessionAPIStub{}
	svc, _ := newSessionService(api)

	for _, status := range []model.SessionRequestStatus{model.SessionRequestRejected, model.SessionRequestCancelled} {
		req := pendingRequest()
		req.Status = status

		_, err := svc.Accept(context.Background(), "c", "s", req, "")
		assert.ErrorIs(t, err, ErrRequestTerminal)
		_, err = svc.Reject(context.Background(), "c", "s", req, "r")
		assert.ErrorIs(t, err, ErrRequestTerminal)
		_, err = svc.Cancel(context.Background(), "c", "s", req, "r")
		assert.ErrorIs(t, err, ErrRequestTerminal)
	}
	assert.Empty(t, api.updateCalls)
}

func TestCancelInsideWindowIsBlockedLocally(t *testing.T) {
	api := &sessionAPIStub{}
	svc, _ := newSessionService(api)
	svc.now = func() time.Time {
		// One second past the six-hour cutoff.
		return time.Date(2025, 6, 10, 8, 0, 1, 0, time.Local)
	}

	req := pendingRequest()
	req.Status = model.SessionRequestAccepted

	_, err := svc.Cancel(context.Background(), "cookie", "svc-1", req, "emergency")
	assert.ErrorIs(t, err, ErrCancellationWindow)
	assert.Empty(t, api.updateCalls)
}

func TestCancelAtExactlySixHours(t *testing.T) {
	api := &sessionAPIStub{}
	svc, _ := newSessionService(api)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	}

	req := pendingRequest()
	req.Status = model.SessionRequestAccepted

	_, err := svc.Cancel(context.Background(), "cookie", "svc-1", req, "emergency")
	require.NoError(t, err)

	require.Len(t, api.updateCalls, 1)
	assert.Equal(t, "cancelled", api.updateCalls[0].Status)
	assert.Equal(t, "emergency", api.updateCalls[0].RejectionReason)
}

func TestCancelPendingRequestFails(t *testing.T) {
	api := &sessionAPIStub{}
	svc, _ := newSessionService(api)

	_, err := svc.Cancel(context.Background(), "cookie", "svc-1", pendingRequest(), "nope")
	assert.ErrorIs(t, err, ErrRequestNotAccepted)
	assert.Empty(t, api.updateCalls)
}

func TestListRequestsReadsThroughCache(t *testing.T) {
	api := &sessionAPIStub{groups: &platform.SessionRequestGroups{
		Pending: []model.SessionRequest{*pendingRequest()},
	}}
	svc, _ := newSessionService(api)

	first, err := svc.ListRequests(context.Background(), "cookie", "svc-1")
	require.NoError(t, err)
	second, err := svc.ListRequests(context.Background(), "cookie", "svc-1")
	require.NoError(t, err)

	assert.Equal(t, 1, api.listCalls, "second read must come from the cache")
	assert.Equal(t, first, second)
}

func TestRefreshBypassesCache(t *testing.T) {
	api := &sessionAPIStub{}
	svc, _ := newSessionService(api)

	_, err := svc.ListRequests(context.Background(), "cookie", "svc-1")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), "cookie", "svc-1")
	require.NoError(t, err)
	assert.Equal(t, 2, api.listCalls, "refresh must go to the API even with a warm cache")

	_, err = svc.ListRequests(context.Background(), "cookie", "svc-1")
	require.NoError(t, err)
	assert.Equal(t, 2, api.listCalls, "refresh must repopulate the cache")
}

func TestMutationInvalidatesRequestCache(t *testing.T) {
	api := &sessionAPIStub{}
	svc, store := newSessionService(api)

	_, err := svc.ListRequests(context.Background(), "cookie", "svc-1")
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), "cookie", "svc-1", pendingRequest(), "")
	require.NoError(t, err)

	_, ok := store.Get(cache.KeySessionRequests("svc-1"))
	assert.False(t, ok, "mutation must invalidate the cached groups")
}

func TestFindRequestAcrossGroups(t *testing.T) {
	groups := &platform.SessionRequestGroups{
		Pending:  []model.SessionRequest{{ID: "a"}},
		Accepted: []model.SessionRequest{{ID: "b"}},
		Rejected: []model.SessionRequest{{ID: "c"}},
	}

	require.NotNil(t, FindRequest(groups, "b"))
	assert.Equal(t, "c", FindRequest(groups, "c").ID)
	assert.Nil(t, FindRequest(groups, "zzz"))
}
