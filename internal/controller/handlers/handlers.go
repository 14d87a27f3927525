// Package handlers holds the slash-command handlers and the text-message
// dispatcher that completes multi-step dialogs.
package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/controller/state"
	"github.com/mentorhub/mentorhub-bot/internal/model"
	"github.com/mentorhub/mentorhub-bot/internal/service"
)

type Handlers struct {
	accounts    *service.AccountService
	sessions    *service.SessionRequestService
	moderation  *service.ModerationService
	communities *service.CommunityService
	search      *service.SearchService
	states      *state.Manager
	logger      *zap.Logger
}

func NewHandlers(
	accounts *service.AccountService,
	sessions *service.SessionRequestService,
	moderation *service.ModerationService,
	communities *service.CommunityService,
	search *service.SearchService,
	states *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		accounts:    accounts,
		sessions:    sessions,
		moderation:  moderation,
		communities: communities,
		search:      search,
		states:      states,
		logger:      logger,
	}
}

func (h *Handlers) send(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

// account loads the linked account, telling the user to /login when there is
// none.
func (h *Handlers) account(ctx context.Context, b *bot.Bot, chatID, telegramID int64) (*model.Account, bool) {
	account, err := h.accounts.Get(ctx, telegramID)
	if err != nil {
		h.send(ctx, b, chatID, "❌ You are not logged in. Use /login first")
		return nil, false
	}
	return account, true
}
