// Package community holds the callback handlers for the community surface:
// browsing, joining, leaving and, for managers, handling join requests.
package community

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/callbacktypes"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/common"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/common/formatting"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/common/keyboard"
	"github.com/mentorhub/mentorhub-bot/internal/controller/state"
	"github.com/mentorhub/mentorhub-bot/internal/model"
)

// CommunitiesKeyboard lists the user's communities.
func CommunitiesKeyboard(communities []model.Community) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	for i := range communities {
		c := &communities[i]
		kb.Row(keyboard.Button(fmt.Sprintf("%s (%d)", c.Name, c.MemberCount), "comm_view:"+c.ID))
	}
	return kb.Build()
}

func communityText(c *model.Community) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👥 %s\n\n", c.Name)
	if c.Description != "" {
		b.WriteString(c.Description + "\n\n")
	}
	fmt.Fprintf(&b, "Members: %d\n", c.MemberCount)
	fmt.Fprintf(&b, "Created: %s", formatting.FormatDate(c.CreatedAt))
	return b.String()
}

func communityKeyboard(c *model.Community, isManager bool) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	kb.Row(keyboard.Button("👤 Members", "comm_members:"+c.ID))
	if isManager {
		kb.Row(keyboard.Button("📨 Join requests", "comm_requests:"+c.ID))
		kb.Row(keyboard.Button("🗑 Delete community", "comm_delete:"+c.ID))
	} else {
		kb.Row(keyboard.Button("🚪 Leave", "comm_leave:"+c.ID))
	}
	return kb.Build()
}

// HandleView shows one community with the actions the viewer's standing
// allows.
func HandleView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "comm_view:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid community reference")
			return
		}

		c, err := h.Communities.Get(hc.Ctx, hc.Session(), parts[0])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		isManager := c.ManagerID == hc.Account.PlatformUserID
		hc.Answer("")
		if err := hc.EditMessage(communityText(c), communityKeyboard(c, isManager)); err != nil {
			h.Logger.Error("Failed to show community", zap.Error(err), zap.String("community_id", c.ID))
		}
	})
}

// HandleMembers lists the community's members.
func HandleMembers(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "comm_members:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid community reference")
			return
		}
		communityID := parts[0]

		members, err := h.Communities.Members(hc.Ctx, hc.Session(), communityID)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		var text strings.Builder
		fmt.Fprintf(&text, "👤 Members (%d)\n\n", len(members))
		for _, m := range members {
			fmt.Fprintf(&text, "• %s (%s), joined %s\n", m.Name, m.Role, formatting.FormatDate(m.JoinedAt))
		}
		if len(members) == 0 {
			text.WriteString("Nobody here yet")
		}

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("⬅️ Back", "comm_view:"+communityID)).
			Build()

		hc.Answer("")
		if err := hc.EditMessage(strings.TrimRight(text.String(), "\n"), kb); err != nil {
			h.Logger.Error("Failed to show members", zap.Error(err), zap.String("community_id", communityID))
		}
	})
}

// HandleJoinRequests lists the pending join requests for a manager.
func HandleJoinRequests(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "comm_requests:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid community reference")
			return
		}
		communityID := parts[0]

		requests, err := h.Communities.JoinRequests(hc.Ctx, hc.Session(), communityID)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		var text strings.Builder
		kb := keyboard.NewBuilder()
		pending := 0
		for i := range requests {
			req := &requests[i]
			if req.Status != model.JoinRequestPending {
				continue
			}
			pending++
			fmt.Fprintf(&text, "• %s", req.UserName)
			if req.Message != "" {
				fmt.Fprintf(&text, ": %s", req.Message)
			}
			text.WriteString("\n")
			kb.Row(
				keyboard.Button("✅ "+req.UserName, fmt.Sprintf("jr_approve:%s:%s", communityID, req.ID)),
				keyboard.Button("🚫 "+req.UserName, fmt.Sprintf("jr_reject:%s:%s", communityID, req.ID)),
			)
		}
		kb.Row(keyboard.Button("⬅️ Back", "comm_view:"+communityID))

		header := fmt.Sprintf("📨 Pending join requests (%d)\n\n", pending)
		body := header + text.String()
		if pending == 0 {
			body = "📨 No pending join requests"
		}

		hc.Answer("")
		if err := hc.EditMessage(strings.TrimRight(body, "\n"), kb.Build()); err != nil {
			h.Logger.Error("Failed to show join requests", zap.Error(err), zap.String("community_id", communityID))
		}
	})
}

// HandleRespondJoinRequest approves or rejects one pending join request.
func HandleRespondJoinRequest(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, approve bool) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		prefix := "jr_reject:"
		if approve {
			prefix = "jr_approve:"
		}
		parts, err := common.CallbackParts(callback.Data, prefix, 2)
		if err != nil {
			hc.AnswerAlert("❌ Invalid join request reference")
			return
		}
		communityID, requestID := parts[0], parts[1]

		if _, err := h.Communities.Respond(hc.Ctx, hc.Session(), communityID, requestID, approve); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		if approve {
			hc.Answer("✅ Request approved")
		} else {
			hc.Answer("🚫 Request rejected")
		}
		HandleJoinRequests(ctx, b, redirect(callback, "comm_requests:"+communityID), h)
	})
}

// HandleJoin starts the join dialog: an optional message to the manager is
// typed in next.
func HandleJoin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "comm_join:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid community reference")
			return
		}

		h.States.SetDraft(hc.TelegramID, state.Draft{CommunityID: parts[0]})
		h.States.SetState(hc.TelegramID, state.StateEnteringJoinMessage)

		hc.Answer("")
		hc.Send("📨 Send a short message to the community manager, or /skip to apply without one:", nil)
	})
}

// HandleWithdrawJoinRequest cancels the user's own pending join request.
func HandleWithdrawJoinRequest(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "jr_withdraw:", 2)
		if err != nil {
			hc.AnswerAlert("❌ Invalid join request reference")
			return
		}

		if err := h.Communities.WithdrawJoin(hc.Ctx, hc.Session(), parts[0], parts[1]); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		hc.Answer("📨 Application withdrawn")
	})
}

// HandleLeave asks for confirmation before leaving.
func HandleLeave(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "comm_leave:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid community reference")
			return
		}
		communityID := parts[0]

		kb := keyboard.NewBuilder().
			Row(
				keyboard.Button("🚪 Yes, leave", "comm_leave_yes:"+communityID),
				keyboard.Button("⬅️ Back", "comm_view:"+communityID),
			).
			Build()

		hc.Answer("")
		if err := hc.EditMessage("🚪 Leave this community?", kb); err != nil {
			h.Logger.Error("Failed to show leave confirmation", zap.Error(err))
		}
	})
}

// HandleLeaveConfirmed leaves the community.
func HandleLeaveConfirmed(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "comm_leave_yes:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid community reference")
			return
		}

		if err := h.Communities.Leave(hc.Ctx, hc.Session(), parts[0]); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.Answer("🚪 You left the community")
		if err := hc.EditMessage("🚪 You left the community", nil); err != nil {
			h.Logger.Error("Failed to confirm leaving", zap.Error(err))
		}
	})
}

// HandleDelete asks for confirmation before deleting (manager only).
func HandleDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "comm_delete:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid community reference")
			return
		}
		communityID := parts[0]

		kb := keyboard.NewBuilder().
			Row(
				keyboard.Button("🗑 Yes, delete", "comm_delete_yes:"+communityID),
				keyboard.Button("⬅️ Back", "comm_view:"+communityID),
			).
			Build()

		hc.Answer("")
		if err := hc.EditMessage("🗑 Delete this community? Members lose access immediately.", kb); err != nil {
			h.Logger.Error("Failed to show delete confirmation", zap.Error(err))
		}
	})
}

// HandleDeleteConfirmed deletes the community.
func HandleDeleteConfirmed(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "comm_delete_yes:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid community reference")
			return
		}

		if err := h.Communities.Delete(hc.Ctx, hc.Session(), parts[0]); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.Answer("🗑 Community deleted")
		if err := hc.EditMessage("🗑 Community deleted", nil); err != nil {
			h.Logger.Error("Failed to confirm deletion", zap.Error(err))
		}
	})
}

// redirect rewrites the callback data so a handler can be re-entered to
// redraw its screen after a mutation.
func redirect(callback *models.CallbackQuery, data string) *models.CallbackQuery {
	clone := *callback
	clone.Data = data
	return &clone
}
