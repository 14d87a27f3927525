package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/callbacktypes"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/common"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/common/keyboard"
	"github.com/mentorhub/mentorhub-bot/internal/model"
)

// BannedText renders the banned-users list.
func BannedText(users []model.BannedUser) string {
	if len(users) == 0 {
		return "⛔ Nobody is banned"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⛔ Banned users (%d)\n\n", len(users))
	for i := range users {
		b.WriteString(common.BannedUserLine(&users[i]) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// BannedKeyboard offers an unban button per user plus a refresh button.
func BannedKeyboard(users []model.BannedUser) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	for i := range users {
		user := &users[i]
		kb.Row(keyboard.Button("♻️ Unban "+user.Name, "unban:"+user.ID))
	}
	kb.Row(keyboard.Button("🔄 Refresh", "banned_refresh"))
	return kb.Build()
}

// HandleUnban lifts a ban. The cached list is updated before the server
// confirms, so the message is redrawn immediately; a refusal rolls it back
// and redraws again.
func HandleUnban(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "unban:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid user reference")
			return
		}
		userID := parts[0]

		if err := h.Moderation.Unban(hc.Ctx, hc.Session(), userID); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			showBanned(hc, h)
			return
		}

		hc.Answer("♻️ User unbanned")
		showBanned(hc, h)
	})
}

// HandleRefreshBanned redraws the banned list from the server.
func HandleRefreshBanned(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.Answer("🔄 Updated")
		showBanned(hc, h)
	})
}

func showBanned(hc *common.HandlerContext, h *callbacktypes.Handler) {
	users, err := h.Moderation.BannedUsers(hc.Ctx, hc.Session())
	if err != nil {
		hc.Send(common.ErrorMessage(err), nil)
		return
	}
	if err := hc.EditMessage(BannedText(users), BannedKeyboard(users)); err != nil {
		h.Logger.Error("Failed to show banned list", zap.Error(err))
	}
}
