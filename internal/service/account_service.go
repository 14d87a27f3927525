package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/model"
	"github.com/mentorhub/mentorhub-bot/internal/platform"
)

var (
	ErrNotLinked    = errors.New("telegram account is not linked to the platform")
	ErrEmptySession = errors.New("session token is empty")
)

type accountStore interface {
	Upsert(ctx context.Context, account *model.Account) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Account, error)
	SetCompactDurations(ctx context.Context, telegramID int64, compact bool) error
	Delete(ctx context.Context, telegramID int64) error
}

type profileAPI interface {
	Me(ctx context.Context, session string) (*platform.Profile, error)
}

// AccountService links Telegram users to platform sessions. A link is made by
// pasting a web session token into /login; the token is verified against the
// platform before it is stored.
type AccountService struct {
	accounts accountStore
	api      profileAPI
	logger   *zap.Logger
}

func NewAccountService(accounts accountStore, api profileAPI, logger *zap.Logger) *AccountService {
	return &AccountService{accounts: accounts, api: api, logger: logger}
}

// Link verifies the pasted session token and stores the account link.
func (s *AccountService) Link(ctx context.Context, telegramID int64, sessionToken string) (*model.Account, error) {
	token := strings.TrimSpace(sessionToken)
	if token == "" {
		return nil, ErrEmptySession
	}

	profile, err := s.api.Me(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}

	account := &model.Account{
		TelegramID:     telegramID,
		PlatformUserID: profile.ID,
		DisplayName:    profile.Name,
		Role:           profile.Role,
		SessionCookie:  token,
	}
	if err := s.accounts.Upsert(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("Account linked",
		zap.Int64("telegram_id", telegramID),
		zap.String("platform_user_id", profile.ID),
		zap.String("role", profile.Role))
	return account, nil
}

// Get returns the linked account for a Telegram user.
func (s *AccountService) Get(ctx context.Context, telegramID int64) (*model.Account, error) {
	account, err := s.accounts.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotLinked
	}
	return account, nil
}

// ToggleCompactDurations flips the duration display preference and returns
// the new value.
func (s *AccountService) ToggleCompactDurations(ctx context.Context, telegramID int64) (bool, error) {
	account, err := s.Get(ctx, telegramID)
	if err != nil {
		return false, err
	}

	next := !account.CompactDurations
	if err := s.accounts.SetCompactDurations(ctx, telegramID, next); err != nil {
		return false, err
	}
	return next, nil
}

// Unlink removes the stored session link.
func (s *AccountService) Unlink(ctx context.Context, telegramID int64) error {
	if err := s.accounts.Delete(ctx, telegramID); err != nil {
		return err
	}
	s.logger.Info("Account unlinked", zap.Int64("telegram_id", telegramID))
	return nil
}
