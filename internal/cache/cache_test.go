package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissesOnUnknownKey(t *testing.T) {
	s := NewStore()

	_, ok := s.Get("nope")
	assert.False(t, ok)
}

func TestSetThenGet(t *testing.T) {
	s := NewStore()
	s.Set(KeyBannedUsers, []string{"a", "b"})

	got, ok := s.Get(KeyBannedUsers)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestInvalidateForcesRefetchButKeepsPeek(t *testing.T) {
	s := NewStore()
	s.Set(KeyUserReports, 42)
	s.Invalidate(KeyUserReports)

	_, ok := s.Get(KeyUserReports)
	assert.False(t, ok, "stale entry must miss on Get")

	got, ok := s.Peek(KeyUserReports)
	require.True(t, ok, "stale entry must still be peekable")
	assert.Equal(t, 42, got)
}

func TestSetClearsStaleness(t *testing.T) {
	s := NewStore()
	s.Set("k", 1)
	s.Invalidate("k")
	s.Set("k", 2)

	got, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestDrop(t *testing.T) {
	s := NewStore()
	s.Set("k", 1)
	s.Drop("k")

	_, ok := s.Peek("k")
	assert.False(t, ok)
}

func TestSessionRequestsKeyIsPerService(t *testing.T) {
	assert.NotEqual(t, KeySessionRequests("a"), KeySessionRequests("b"))
}
