package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/cache"
	"github.com/mentorhub/mentorhub-bot/internal/model"
)

var (
	ErrBanReasonTooShort = fmt.Errorf("ban reason must be at least %d characters", model.BanReasonMinLength)
	ErrBanReasonTooLong  = fmt.Errorf("ban reason must be at most %d characters", model.BanReasonMaxLength)
	ErrReportResolved    = errors.New("report is already resolved")
	ErrUserNotBanned     = errors.New("user is not in the banned list")
)

// ValidateBanReason applies the local precondition for a ban: trimmed length
// within [10, 500]. The bounds are in characters, not bytes, so multibyte
// input is counted in runes. Violations never reach the network.
func ValidateBanReason(reason string) error {
	trimmed := strings.TrimSpace(reason)
	length := utf8.RuneCountInString(trimmed)
	if length < model.BanReasonMinLength {
		return ErrBanReasonTooShort
	}
	if length > model.BanReasonMaxLength {
		return ErrBanReasonTooLong
	}
	return nil
}

// moderationAPI is the slice of the platform client this service needs.
type moderationAPI interface {
	ListUserReports(ctx context.Context, session string) (*model.UserReports, error)
	ResolveUserReport(ctx context.Context, session, reportID string, action model.ReportAction, banReason string) (*model.BanReport, error)
	ListBannedUsers(ctx context.Context, session string) ([]model.BannedUser, error)
	UnbanUser(ctx context.Context, session, userID string) error
}

// ModerationService handles the admin report/ban surface. Unban is the one
// optimistic mutation in the whole client: the banned list is updated before
// the server confirms, and restored verbatim if it refuses.
type ModerationService struct {
	api    moderationAPI
	store  *cache.Store
	logger *zap.Logger
}

func NewModerationService(api moderationAPI, store *cache.Store, logger *zap.Logger) *ModerationService {
	return &ModerationService{api: api, store: store, logger: logger}
}

// Reports returns pending and resolved reports, read through the cache.
func (s *ModerationService) Reports(ctx context.Context, session string) (*model.UserReports, error) {
	if cached, ok := s.store.Get(cache.KeyUserReports); ok {
		if reports, ok := cached.(*model.UserReports); ok {
			return reports, nil
		}
	}

	reports, err := s.api.ListUserReports(ctx, session)
	if err != nil {
		return nil, err
	}
	s.store.Set(cache.KeyUserReports, reports)
	return reports, nil
}

// RefreshReports force-fetches reports, bypassing the cache. Used by the
// background refetch loop.
func (s *ModerationService) RefreshReports(ctx context.Context, session string) error {
	reports, err := s.api.ListUserReports(ctx, session)
	if err != nil {
		return err
	}
	s.store.Set(cache.KeyUserReports, reports)
	return nil
}

// Ban resolves a pending report by restricting the reported user. The reason
// is validated locally first.
func (s *ModerationService) Ban(ctx context.Context, session string, report *model.BanReport, reason string) (*model.BanReport, error) {
	if report.Resolution != "" {
		return nil, ErrReportResolved
	}
	if err := ValidateBanReason(reason); err != nil {
		return nil, err
	}

	resolved, err := s.api.ResolveUserReport(ctx, session, report.ID, model.ReportActionBan, strings.TrimSpace(reason))
	if err != nil {
		return nil, fmt.Errorf("resolve report: %w", err)
	}

	s.store.Invalidate(cache.KeyUserReports)
	s.store.Invalidate(cache.KeyBannedUsers)
	s.logger.Info("Report resolved with ban",
		zap.String("report_id", report.ID),
		zap.String("reported_user_id", report.ReportedUserID))
	return resolved, nil
}

// Discard resolves a pending report with no consequence to the reported user.
// No reason is required and none is ever sent.
func (s *ModerationService) Discard(ctx context.Context, session string, report *model.BanReport) (*model.BanReport, error) {
	if report.Resolution != "" {
		return nil, ErrReportResolved
	}

	resolved, err := s.api.ResolveUserReport(ctx, session, report.ID, model.ReportActionDiscard, "")
	if err != nil {
		return nil, fmt.Errorf("resolve report: %w", err)
	}

	s.store.Invalidate(cache.KeyUserReports)
	s.logger.Info("Report discarded", zap.String("report_id", report.ID))
	return resolved, nil
}

// BannedUsers returns the banned list, read through the cache.
func (s *ModerationService) BannedUsers(ctx context.Context, session string) ([]model.BannedUser, error) {
	if cached, ok := s.store.Get(cache.KeyBannedUsers); ok {
		if users, ok := cached.([]model.BannedUser); ok {
			return users, nil
		}
	}

	users, err := s.api.ListBannedUsers(ctx, session)
	if err != nil {
		return nil, err
	}
	s.store.Set(cache.KeyBannedUsers, users)
	return users, nil
}

// Unban lifts a ban optimistically: the user disappears from the cached list
// immediately, reappears in their original position if the server refuses,
// and the list is invalidated for an authoritative refetch on success.
func (s *ModerationService) Unban(ctx context.Context, session, userID string) error {
	snapshot, hasSnapshot := s.cachedBannedUsers()

	if hasSnapshot {
		trimmed := make([]model.BannedUser, 0, len(snapshot))
		found := false
		for _, u := range snapshot {
			if u.ID == userID {
				found = true
				continue
			}
			trimmed = append(trimmed, u)
		}
		if !found {
			return ErrUserNotBanned
		}
		s.store.Set(cache.KeyBannedUsers, trimmed)
	}

	if err := s.api.UnbanUser(ctx, session, userID); err != nil {
		if hasSnapshot {
			s.store.Set(cache.KeyBannedUsers, snapshot)
		}
		return fmt.Errorf("unban user: %w", err)
	}

	s.store.Invalidate(cache.KeyBannedUsers)
	s.logger.Info("User unbanned", zap.String("user_id", userID))
	return nil
}

func (s *ModerationService) cachedBannedUsers() ([]model.BannedUser, bool) {
	cached, ok := s.store.Peek(cache.KeyBannedUsers)
	if !ok {
		return nil, false
	}
	users, ok := cached.([]model.BannedUser)
	return users, ok
}
