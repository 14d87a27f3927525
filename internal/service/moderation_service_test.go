package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/cache"
	"github.com/mentorhub/mentorhub-bot/internal/model"
)

type moderationAPIStub struct {
	store *cache.Store

	resolveCalls int
	lastAction   model.ReportAction
	lastReason   string
	unbanCalls   int
	unbanErr     error

	// captured cache content at the moment UnbanUser ran, to prove the
	// optimistic removal happened before the network call resolved
	bannedAtUnbanTime []model.BannedUser
}

func (s *moderationAPIStub) ListUserReports(context.Context, string) (*model.UserReports, error) {
	return &model.UserReports{}, nil
}

func (s *moderationAPIStub) ResolveUserReport(_ context.Context, _, reportID string, action model.ReportAction, banReason string) (*model.BanReport, error) {
	s.resolveCalls++
	s.lastAction = action
	s.lastReason = banReason
	return &model.BanReport{ID: reportID, Resolution: action, BanReason: banReason}, nil
}

func (s *moderationAPIStub) ListBannedUsers(context.Context, string) ([]model.BannedUser, error) {
	return nil, nil
}

func (s *moderationAPIStub) UnbanUser(context.Context, string, string) error {
	s.unbanCalls++
	if s.store != nil {
		if cached, ok := s.store.Peek(cache.KeyBannedUsers); ok {
			s.bannedAtUnbanTime = cached.([]model.BannedUser)
		}
	}
	return s.unbanErr
}

func bannedTrio() []model.BannedUser {
	return []model.BannedUser{
		{ID: "u1", Name: "first"},
		{ID: "u2", Name: "second"},
		{ID: "u3", Name: "third"},
	}
}

func TestValidateBanReason(t *testing.T) {
	tests := []struct {
		name   string
		reason string
		err    error
	}{
		{"nine characters", "abcdefghi", ErrBanReasonTooShort},
		{"exactly ten", "abcdefghij", nil},
		{"padded short reason", "   abcdefg   ", ErrBanReasonTooShort},
		{"at the maximum", strings.Repeat("x", 500), nil},
		{"one past the maximum", strings.Repeat("x", 501), ErrBanReasonTooLong},
		{"empty", "", ErrBanReasonTooShort},
		{"nine cyrillic characters", "дискримин", ErrBanReasonTooShort},
		{"ten cyrillic characters", "дискримина", nil},
		{"multibyte well under the maximum", strings.Repeat("ж", 300), nil},
		{"multibyte at the maximum", strings.Repeat("ж", 500), nil},
		{"multibyte past the maximum", strings.Repeat("ж", 501), ErrBanReasonTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBanReason(tt.reason)
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestBanWithShortReasonNeverHitsNetwork(t *testing.T) {
	api := &moderationAPIStub{}
	svc := NewModerationService(api, cache.NewStore(), zap.NewNop())

	report := &model.BanReport{ID: "rep-1"}
	_, err := svc.Ban(context.Background(), "cookie", report, "too short")
	assert.ErrorIs(t, err, ErrBanReasonTooShort)
	assert.Zero(t, api.resolveCalls)
}

func TestBanTrimsReasonAndResolves(t *testing.T) {
	api := &moderationAPIStub{}
	svc := NewModerationService(api, cache.NewStore(), zap.NewNop())

	report := &model.BanReport{ID: "rep-1"}
	resolved, err := svc.Ban(context.Background(), "cookie", report, "  repeated harassment  ")
	require.NoError(t, err)

	assert.Equal(t, model.ReportActionBan, api.lastAction)
	assert.Equal(t, "repeated harassment", api.lastReason)
	assert.Equal(t, model.ReportActionBan, resolved.Resolution)
}

func TestResolvedReportCannotBeRevisited(t *testing.T) {
	api := &moderationAPIStub{}
	svc := NewModerationService(api, cache.NewStore(), zap.NewNop())

	report := &model.BanReport{ID: "rep-1", Resolution: model.ReportActionDiscard}

	_, err := svc.Ban(context.Background(), "cookie", report, "a perfectly valid reason")
	assert.ErrorIs(t, err, ErrReportResolved)
	_, err = svc.Discard(context.Background(), "cookie", report)
	assert.ErrorIs(t, err, ErrReportResolved)
	assert.Zero(t, api.resolveCalls)
}

func TestDiscardSendsNoReason(t *testing.T) {
	api := &moderationAPIStub{}
	svc := NewModerationService(api, cache.NewStore(), zap.NewNop())

	_, err := svc.Discard(context.Background(), "cookie", &model.BanReport{ID: "rep-1"})
	require.NoError(t, err)

	assert.Equal(t, model.ReportActionDiscard, api.lastAction)
	assert.Empty(t, api.lastReason)
}

func TestUnbanRemovesOptimisticallyBeforeNetworkResolves(t *testing.T) {
	store := cache.NewStore()
	store.Set(cache.KeyBannedUsers, bannedTrio())
	api := &moderationAPIStub{store: store}
	svc := NewModerationService(api, store, zap.NewNop())

	err := svc.Unban(context.Background(), "cookie", "u2")
	require.NoError(t, err)

	// At the moment the DELETE ran, u2 was already gone from the cache.
	require.Len(t, api.bannedAtUnbanTime, 2)
	assert.Equal(t, "u1", api.bannedAtUnbanTime[0].ID)
	assert.Equal(t, "u3", api.bannedAtUnbanTime[1].ID)

	// On success the list is invalidated so the next read refetches.
	_, ok := store.Get(cache.KeyBannedUsers)
	assert.False(t, ok)
}

func TestUnbanRollsBackInOriginalOrderOnFailure(t *testing.T) {
	store := cache.NewStore()
	store.Set(cache.KeyBannedUsers, bannedTrio())
	api := &moderationAPIStub{store: store, unbanErr: errors.New("boom")}
	svc := NewModerationService(api, store, zap.NewNop())

	err := svc.Unban(context.Background(), "cookie", "u2")
	require.Error(t, err)

	cached, ok := store.Get(cache.KeyBannedUsers)
	require.True(t, ok)
	assert.Equal(t, bannedTrio(), cached, "failed unban must restore the snapshot, positions included")
}

func TestUnbanUnknownUserFailsWithoutNetworkCall(t *testing.T) {
	store := cache.NewStore()
	store.Set(cache.KeyBannedUsers, bannedTrio())
	api := &moderationAPIStub{store: store}
	svc := NewModerationService(api, store, zap.NewNop())

	err := svc.Unban(context.Background(), "cookie", "ghost")
	assert.ErrorIs(t, err, ErrUserNotBanned)
	assert.Zero(t, api.unbanCalls)
}
