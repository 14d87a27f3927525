package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/admin"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/common"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/community"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/mentor"
	"github.com/mentorhub/mentorhub-bot/internal/controller/state"
	"github.com/mentorhub/mentorhub-bot/internal/model"
)

// HandleStart greets the user and points at /login.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	welcome := fmt.Sprintf(
		"👋 Hi, %s!\n\n"+
			"This bot brings your mentorship platform to Telegram: handle session requests, "+
			"moderate reports and manage communities without opening the dashboard.\n\n"+
			"Start by linking your platform account:\n"+
			"/login - Link your account\n"+
			"/help - All commands",
		update.Message.From.FirstName,
	)
	h.send(ctx, b, update.Message.Chat.ID, welcome)
}

// HandleHelp lists the commands by role.
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Commands:\n\n" +
		"/login - Link your platform account\n" +
		"/logout - Remove the link\n" +
		"/communities - Your communities\n" +
		"/newcommunity - Create a community\n" +
		"/search - Search users and communities\n" +
		"/compact - Toggle short duration format\n" +
		"/cancel - Abort the current dialog\n\n" +
		"For mentors:\n" +
		"/requests - Session requests for a service\n\n" +
		"For admins:\n" +
		"/reports - Pending user reports\n" +
		"/banned - Banned users"

	h.send(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleLogin starts the account-linking dialog.
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.states.SetState(update.Message.From.ID, state.StateEnteringSessionToken)
	h.send(ctx, b, update.Message.Chat.ID,
		"🔑 Paste your platform session token.\n\n"+
			"You can copy it from the dashboard under Settings → API access. "+
			"The token is verified before it is stored.")
}

// HandleLogout removes the stored account link.
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if _, ok := h.account(ctx, b, update.Message.Chat.ID, telegramID); !ok {
		return
	}
	if err := h.accounts.Unlink(ctx, telegramID); err != nil {
		h.send(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}
	h.states.Clear(telegramID)
	h.send(ctx, b, update.Message.Chat.ID, "👋 Account unlinked. Use /login to link again")
}

// HandleRequests shows a mentor's session requests. The service id comes as
// an argument ("/requests svc-1") or is asked for in a dialog step.
func (h *Handlers) HandleRequests(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	account, ok := h.account(ctx, b, chatID, telegramID)
	if !ok {
		return
	}
	if !account.IsMentor() {
		h.send(ctx, b, chatID, "❌ This action is for mentors only")
		return
	}

	arg := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/requests"))
	if arg == "" {
		h.states.SetState(telegramID, state.StateEnteringServiceID)
		h.send(ctx, b, chatID, "📋 Send the id of the service whose requests you want to see:")
		return
	}
	h.showRequests(ctx, b, chatID, account, arg)
}

// HandleCommunities lists the user's communities.
func (h *Handlers) HandleCommunities(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	account, ok := h.account(ctx, b, chatID, update.Message.From.ID)
	if !ok {
		return
	}

	communities, err := h.communities.Mine(ctx, account.SessionCookie)
	if err != nil {
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	if len(communities) == 0 {
		h.send(ctx, b, chatID, "👥 You are not in any community yet. Use /search to find one")
		return
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        fmt.Sprintf("👥 Your communities (%d):", len(communities)),
		ReplyMarkup: community.CommunitiesKeyboard(communities),
	})
	if err != nil {
		h.logger.Error("Failed to send communities list", zap.Error(err))
	}
}

// HandleNewCommunity starts the community creation dialog.
func (h *Handlers) HandleNewCommunity(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	if _, ok := h.account(ctx, b, chatID, telegramID); !ok {
		return
	}

	h.states.SetState(telegramID, state.StateEnteringCommunityName)
	h.send(ctx, b, chatID, "👥 Creating a community.\n\nSend its name:")
}

// HandleSearch starts the search dialog. Every message typed while it is
// active becomes a query; results arrive after the input settles.
func (h *Handlers) HandleSearch(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	if _, ok := h.account(ctx, b, chatID, telegramID); !ok {
		return
	}

	h.states.SetState(telegramID, state.StateSearching)
	h.send(ctx, b, chatID, "🔍 Type what you are looking for. Send /cancel to stop searching")
}

// HandleReports shows the admin report queue.
func (h *Handlers) HandleReports(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	account, ok := h.account(ctx, b, chatID, update.Message.From.ID)
	if !ok {
		return
	}
	if !account.IsAdmin() {
		h.send(ctx, b, chatID, "❌ This action is for platform admins only")
		return
	}

	reports, err := h.moderation.Reports(ctx, account.SessionCookie)
	if err != nil {
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        admin.ReportsText(reports),
		ReplyMarkup: admin.ReportsKeyboard(reports),
	})
	if err != nil {
		h.logger.Error("Failed to send report queue", zap.Error(err))
	}
}

// HandleBanned shows the admin banned-users list.
func (h *Handlers) HandleBanned(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	account, ok := h.account(ctx, b, chatID, update.Message.From.ID)
	if !ok {
		return
	}
	if !account.IsAdmin() {
		h.send(ctx, b, chatID, "❌ This action is for platform admins only")
		return
	}

	users, err := h.moderation.BannedUsers(ctx, account.SessionCookie)
	if err != nil {
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        admin.BannedText(users),
		ReplyMarkup: admin.BannedKeyboard(users),
	})
	if err != nil {
		h.logger.Error("Failed to send banned list", zap.Error(err))
	}
}

// HandleCompact toggles between the long and the short duration format.
func (h *Handlers) HandleCompact(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	compact, err := h.accounts.ToggleCompactDurations(ctx, update.Message.From.ID)
	if err != nil {
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if compact {
		h.send(ctx, b, chatID, "⏱ Durations now show short: 1h 30min")
	} else {
		h.send(ctx, b, chatID, "⏱ Durations now show in full: 1 hour and 30 minutes")
	}
}

// HandleCancel aborts the current dialog, if any.
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	if h.states.State(telegramID) == state.StateNone {
		h.send(ctx, b, chatID, "❌ Nothing to cancel")
		return
	}

	h.search.Reset()
	h.states.Clear(telegramID)
	h.send(ctx, b, chatID, "✅ Cancelled. Use /help to see the commands")
}

func (h *Handlers) showRequests(ctx context.Context, b *bot.Bot, chatID int64, account *model.Account, serviceID string) {
	groups, err := h.sessions.ListRequests(ctx, account.SessionCookie, serviceID)
	if err != nil {
		h.send(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        common.RequestsOverview(groups, account.CompactDurations),
		ReplyMarkup: mentor.RequestsKeyboard(serviceID, groups),
	})
	if err != nil {
		h.logger.Error("Failed to send request list", zap.Error(err), zap.String("service_id", serviceID))
	}
}
