package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/common"
	"github.com/mentorhub/mentorhub-bot/internal/controller/state"
	"github.com/mentorhub/mentorhub-bot/internal/model"
	"github.com/mentorhub/mentorhub-bot/internal/service"
)

// skipCommand marks an optional dialog input as intentionally left empty.
const skipCommand = "/skip"

// HandleTextMessage routes a plain text message into the user's active
// dialog step. Commands are handled by their own handlers, except /skip,
// which only has meaning inside a dialog.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	text := update.Message.Text
	if strings.HasPrefix(text, "/") && text != skipCommand {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.states.State(telegramID)
	if currentState == state.StateNone {
		return
	}

	h.logger.Info("Handling dialog step",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateEnteringSessionToken:
		h.handleSessionTokenStep(ctx, b, update)
	case state.StateEnteringServiceID:
		h.handleServiceIDStep(ctx, b, update)
	case state.StateEditingAgenda:
		h.handleAgendaStep(ctx, b, update)
	case state.StateEnteringRejectReason:
		h.handleRejectReasonStep(ctx, b, update)
	case state.StateEnteringCancelReason:
		h.handleCancelReasonStep(ctx, b, update)
	case state.StateEnteringBanReason:
		h.handleBanReasonStep(ctx, b, update)
	case state.StateEnteringCommunityName:
		h.handleCommunityNameStep(ctx, b, update)
	case state.StateEnteringCommunityDesc:
		h.handleCommunityDescStep(ctx, b, update)
	case state.StateEnteringJoinMessage:
		h.handleJoinMessageStep(ctx, b, update)
	case state.StateSearching:
		h.handleSearchStep(ctx, b, update)
	default:
		h.logger.Warn("Unhandled dialog state", zap.String("state", string(currentState)))
		h.states.Clear(telegramID)
	}
}

// optionalInput turns /skip into the empty string.
func optionalInput(text string) string {
	if text == skipCommand {
		return ""
	}
	return strings.TrimSpace(text)
}

func (h *Handlers) handleSessionTokenStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	account, err := h.accounts.Link(ctx, telegramID, update.Message.Text)
	if err != nil {
		// Bad token: stay in the dialog so the user can paste again.
		h.send(ctx, b, chatID, common.ErrorMessage(err)+"\n\nPaste the token again, or /cancel")
		return
	}

	h.states.Clear(telegramID)
	h.send(ctx, b, chatID, fmt.Sprintf("✅ Linked as %s (%s). Use /help to see what you can do", account.DisplayName, account.Role))
}

func (h *Handlers) handleServiceIDStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	account, ok := h.account(ctx, b, chatID, telegramID)
	if !ok {
		h.states.Clear(telegramID)
		return
	}

	h.states.Clear(telegramID)
	h.showRequests(ctx, b, chatID, account, strings.TrimSpace(update.Message.Text))
}

// draftRequest resolves the request the current dialog acts on.
func (h *Handlers) draftRequest(ctx context.Context, session string, draft state.Draft) (*model.SessionRequest, error) {
	groups, err := h.sessions.ListRequests(ctx, session, draft.ServiceID)
	if err != nil {
		return nil, err
	}
	req := service.FindRequest(groups, draft.RequestID)
	if req == nil {
		return nil, fmt.Errorf("request %s not found in service %s", draft.RequestID, draft.ServiceID)
	}
	return req, nil
}

func (h *Handlers) handleAgendaStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	draft := h.states.Draft(telegramID)
	h.states.Clear(telegramID)

	account, ok := h.account(ctx, b, chatID, telegramID)
	if !ok {
		return
	}

	req, err := h.draftRequest(ctx, account.SessionCookie, draft)
	if err != nil {
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	updated, err := h.sessions.Accept(ctx, account.SessionCookie, draft.ServiceID, req, optionalInput(update.Message.Text))
	if err != nil {
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.send(ctx, b, chatID, "✅ Session accepted. The mentee gets a calendar invite.\n\n"+
		common.RequestDetails(updated, account.CompactDurations, time.Now()))
}

func (h *Handlers) handleRejectReasonStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	draft := h.states.Draft(telegramID)
	h.states.Clear(telegramID)

	account, ok := h.account(ctx, b, chatID, telegramID)
	if !ok {
		return
	}

	req, err := h.draftRequest(ctx, account.SessionCookie, draft)
	if err != nil {
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if _, err := h.sessions.Reject(ctx, account.SessionCookie, draft.ServiceID, req, optionalInput(update.Message.Text)); err != nil {
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.send(ctx, b, chatID, fmt.Sprintf("🚫 Request from %s rejected", req.MenteeName))
}

func (h *Handlers) handleCancelReasonStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	draft := h.states.Draft(telegramID)
	h.states.Clear(telegramID)

	account, ok := h.account(ctx, b, chatID, telegramID)
	if !ok {
		return
	}

	req, err := h.draftRequest(ctx, account.SessionCookie, draft)
	if err != nil {
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	// The gate is rechecked inside Cancel: time kept passing while the
	// reason was being typed.
	if _, err := h.sessions.Cancel(ctx, account.SessionCookie, draft.ServiceID, req, optionalInput(update.Message.Text)); err != nil {
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.send(ctx, b, chatID, fmt.Sprintf("❌ Session with %s cancelled. The mentee is notified", req.MenteeName))
}

func (h *Handlers) handleBanReasonStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	draft := h.states.Draft(telegramID)

	account, ok := h.account(ctx, b, chatID, telegramID)
	if !ok {
		h.states.Clear(telegramID)
		return
	}

	reports, err := h.moderation.Reports(ctx, account.SessionCookie)
	if err != nil {
		h.states.Clear(telegramID)
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	var report *model.BanReport
	for i := range reports.Pending {
		if reports.Pending[i].ID == draft.ReportID {
			report = &reports.Pending[i]
			break
		}
	}
	if report == nil {
		h.states.Clear(telegramID)
		h.send(ctx, b, chatID, "❌ This report is no longer pending")
		return
	}

	if _, err := h.moderation.Ban(ctx, account.SessionCookie, report, update.Message.Text); err != nil {
		if errors.Is(err, service.ErrBanReasonTooShort) || errors.Is(err, service.ErrBanReasonTooLong) {
			// Invalid reason: stay in the dialog for another attempt.
			h.send(ctx, b, chatID, common.ErrorMessage(err)+"\n\nType the reason again, or /cancel")
			return
		}
		h.states.Clear(telegramID)
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.states.Clear(telegramID)
	h.send(ctx, b, chatID, fmt.Sprintf("⛔ %s is banned. Check /banned to review or undo", report.ReportedUserName))
}

func (h *Handlers) handleCommunityNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	name := strings.TrimSpace(update.Message.Text)
	if name == "" {
		h.send(ctx, b, chatID, "❌ The name cannot be empty. Send a name, or /cancel")
		return
	}

	draft := h.states.Draft(telegramID)
	draft.CommunityName = name
	h.states.SetDraft(telegramID, draft)
	h.states.SetState(telegramID, state.StateEnteringCommunityDesc)

	h.send(ctx, b, chatID, "📝 Now send a short description, or /skip:")
}

func (h *Handlers) handleCommunityDescStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	draft := h.states.Draft(telegramID)
	h.states.Clear(telegramID)

	account, ok := h.account(ctx, b, chatID, telegramID)
	if !ok {
		return
	}

	c, err := h.communities.Create(ctx, account.SessionCookie, draft.CommunityName, optionalInput(update.Message.Text))
	if err != nil {
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.send(ctx, b, chatID, fmt.Sprintf("👥 Community %q created. Find it under /communities", c.Name))
}

func (h *Handlers) handleJoinMessageStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	draft := h.states.Draft(telegramID)
	h.states.Clear(telegramID)

	account, ok := h.account(ctx, b, chatID, telegramID)
	if !ok {
		return
	}

	if _, err := h.communities.Join(ctx, account.SessionCookie, draft.CommunityID, optionalInput(update.Message.Text)); err != nil {
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.send(ctx, b, chatID, "📨 Application sent. The community manager will review it")
}

func (h *Handlers) handleSearchStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	account, ok := h.account(ctx, b, chatID, telegramID)
	if !ok {
		h.states.Clear(telegramID)
		return
	}

	// The dialog stays active: every message is another query, and rapid
	// typing collapses into one request after the debounce window.
	err := h.search.Query(ctx, account.SessionCookie, update.Message.Text, func(results *model.SearchResults, err error) {
		if err != nil {
			h.send(ctx, b, chatID, common.ErrorMessage(err))
			return
		}
		h.send(ctx, b, chatID, common.SearchResultsText(results))
	})
	if err != nil {
		h.send(ctx, b, chatID, "❌ Type something to search for")
	}
}
