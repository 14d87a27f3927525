package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/model"
)

type searchAPIStub struct {
	mu      sync.Mutex
	queries []string
	delays  map[string]time.Duration
}

func (s *searchAPIStub) Search(_ context.Context, _, query string) (*model.SearchResults, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	delay := s.delays[query]
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return &model.SearchResults{
		Users: []model.UserSearchResult{{ID: "u1", Name: query}},
	}, nil
}

func (s *searchAPIStub) issued() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

func TestBlankQueryNeverFires(t *testing.T) {
	api := &searchAPIStub{}
	svc := NewSearchService(api, 10*time.Millisecond, zap.NewNop())

	err := svc.Query(context.Background(), "cookie", "   ", func(*model.SearchResults, error) {
		t.Fatal("deliver must not run for blank input")
	})
	assert.ErrorIs(t, err, ErrEmptyQuery)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, api.issued())
}

func TestDebounceCoalescesRapidKeystrokes(t *testing.T) {
	api := &searchAPIStub{}
	svc := NewSearchService(api, 30*time.Millisecond, zap.NewNop())

	delivered := make(chan *model.SearchResults, 2)
	deliver := func(res *model.SearchResults, err error) {
		require.NoError(t, err)
		delivered <- res
	}

	require.NoError(t, svc.Query(context.Background(), "cookie", "al", deliver))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, svc.Query(context.Background(), "cookie", "alice", deliver))

	select {
	case res := <-delivered:
		assert.Equal(t, "alice", res.Users[0].Name)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}

	assert.Equal(t, []string{"alice"}, api.issued(), "only the last keystroke within the window may fire")
}

func TestStaleResponseIsDropped(t *testing.T) {
	api := &searchAPIStub{delays: map[string]time.Duration{"slow": 120 * time.Millisecond}}
	svc := NewSearchService(api, 5*time.Millisecond, zap.NewNop())

	staleDelivered := make(chan struct{}, 1)
	freshDelivered := make(chan *model.SearchResults, 1)

	require.NoError(t, svc.Query(context.Background(), "cookie", "slow", func(*model.SearchResults, error) {
		staleDelivered <- struct{}{}
	}))

	// Let the slow request actually fire, then supersede it mid-flight.
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, svc.Query(context.Background(), "cookie", "fast", func(res *model.SearchResults, err error) {
		require.NoError(t, err)
		freshDelivered <- res
	}))

	select {
	case res := <-freshDelivered:
		assert.Equal(t, "fast", res.Users[0].Name)
	case <-time.After(time.Second):
		t.Fatal("fresh result never delivered")
	}

	// Give the slow response time to come back and (correctly) be dropped.
	time.Sleep(150 * time.Millisecond)
	select {
	case <-staleDelivered:
		t.Fatal("stale response overwrote newer results")
	default:
	}

	assert.Contains(t, api.issued(), "slow")
	assert.Contains(t, api.issued(), "fast")
}

func TestResetCancelsPendingSearch(t *testing.T) {
	api := &searchAPIStub{}
	svc := NewSearchService(api, 30*time.Millisecond, zap.NewNop())

	require.NoError(t, svc.Query(context.Background(), "cookie", "alice", func(*model.SearchResults, error) {
		t.Error("deliver must not run after Reset")
	}))
	svc.Reset()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, api.issued())
}
