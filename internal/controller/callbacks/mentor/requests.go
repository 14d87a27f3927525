// Package mentor holds the callback handlers for the session-request
// lifecycle: viewing, accepting, rejecting and cancelling requests on the
// mentor's service.
package mentor

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/callbacktypes"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/common"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/common/keyboard"
	"github.com/mentorhub/mentorhub-bot/internal/controller/state"
	"github.com/mentorhub/mentorhub-bot/internal/model"
	"github.com/mentorhub/mentorhub-bot/internal/platform"
	"github.com/mentorhub/mentorhub-bot/internal/service"
)

// RequestsKeyboard builds the per-request rows plus the refresh and week
// image buttons under the request list.
func RequestsKeyboard(serviceID string, groups *platform.SessionRequestGroups) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	for _, list := range [][]model.SessionRequest{groups.Pending, groups.Accepted} {
		for i := range list {
			req := &list[i]
			display := fmt.Sprintf("%s · %s %s", req.MenteeName, req.Date, req.StartTime)
			kb.Row(keyboard.Button(display, fmt.Sprintf("req_view:%s:%s", serviceID, req.ID)))
		}
	}
	kb.Row(
		keyboard.Button("🔄 Refresh", fmt.Sprintf("req_refresh:%s", serviceID)),
		keyboard.Button("🖼 Week view", fmt.Sprintf("week_image:%s", serviceID)),
	)
	return kb.Build()
}

// requestKeyboard offers only the actions the status machine allows; the
// cancel button additionally hides once the 6 hour window has closed.
func requestKeyboard(req *model.SessionRequest, now time.Time) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	switch {
	case req.IsPending():
		kb.Row(
			keyboard.Button("✅ Accept", fmt.Sprintf("req_accept:%s:%s", req.ServiceID, req.ID)),
			keyboard.Button("🚫 Reject", fmt.Sprintf("req_reject:%s:%s", req.ServiceID, req.ID)),
		)
	case req.IsAccepted() && req.CanCancel(now):
		kb.Row(keyboard.Button("❌ Cancel session", fmt.Sprintf("req_cancel:%s:%s", req.ServiceID, req.ID)))
	}
	kb.Row(keyboard.Button("⬅️ Back to list", fmt.Sprintf("req_refresh:%s", req.ServiceID)))
	return kb.Build()
}

func findRequest(hc *common.HandlerContext, serviceID, requestID string) (*model.SessionRequest, error) {
	groups, err := hc.Handler.Sessions.ListRequests(hc.Ctx, hc.Session(), serviceID)
	if err != nil {
		return nil, err
	}
	req := service.FindRequest(groups, requestID)
	if req == nil {
		return nil, fmt.Errorf("request %s not found in service %s", requestID, serviceID)
	}
	return req, nil
}

// HandleViewRequest shows one request with the actions its status allows.
func HandleViewRequest(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMentor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "req_view:", 2)
		if err != nil {
			hc.AnswerAlert("❌ Invalid request reference")
			return
		}

		req, err := findRequest(hc, parts[0], parts[1])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.Answer("")
		now := time.Now()
		if err := hc.EditMessage(common.RequestDetails(req, hc.Account.CompactDurations, now), requestKeyboard(req, now)); err != nil {
			h.Logger.Error("Failed to show request details", zap.Error(err), zap.String("request_id", req.ID))
		}
	})
}

// HandleAcceptRequest starts the accept dialog: the mentor may revise the
// agenda before the acceptance is sent.
func HandleAcceptRequest(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMentor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "req_accept:", 2)
		if err != nil {
			hc.AnswerAlert("❌ Invalid request reference")
			return
		}

		req, err := findRequest(hc, parts[0], parts[1])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		if !req.IsPending() {
			hc.AnswerAlert(common.ErrorMessage(service.ErrRequestNotPending))
			return
		}

		h.States.SetDraft(hc.TelegramID, state.Draft{ServiceID: parts[0], RequestID: parts[1]})
		h.States.SetState(hc.TelegramID, state.StateEditingAgenda)

		hc.Answer("")
		hc.Send(fmt.Sprintf("✅ Accepting the session with %s.\n\nSend a revised agenda, or /skip to keep the current one:\n\n%s",
			req.MenteeName, req.Agenda), nil)
	})
}

// HandleRejectRequest starts the reject dialog.
func HandleRejectRequest(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMentor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "req_reject:", 2)
		if err != nil {
			hc.AnswerAlert("❌ Invalid request reference")
			return
		}

		req, err := findRequest(hc, parts[0], parts[1])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		if !req.IsPending() {
			hc.AnswerAlert(common.ErrorMessage(service.ErrRequestNotPending))
			return
		}

		h.States.SetDraft(hc.TelegramID, state.Draft{ServiceID: parts[0], RequestID: parts[1]})
		h.States.SetState(hc.TelegramID, state.StateEnteringRejectReason)

		hc.Answer("")
		hc.Send(fmt.Sprintf("🚫 Rejecting the request from %s.\n\nSend a reason the mentee will see, or /skip to send none:", req.MenteeName), nil)
	})
}

// HandleCancelRequest starts the cancel dialog. The time gate is checked here
// before the reason is even asked for, and again when the action fires.
func HandleCancelRequest(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMentor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "req_cancel:", 2)
		if err != nil {
			hc.AnswerAlert("❌ Invalid request reference")
			return
		}

		req, err := findRequest(hc, parts[0], parts[1])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		if !req.IsAccepted() {
			hc.AnswerAlert(common.ErrorMessage(service.ErrRequestNotAccepted))
			return
		}
		if !req.CanCancel(time.Now()) {
			hc.AnswerAlert(common.ErrorMessage(service.ErrCancellationWindow))
			return
		}

		h.States.SetDraft(hc.TelegramID, state.Draft{ServiceID: parts[0], RequestID: parts[1]})
		h.States.SetState(hc.TelegramID, state.StateEnteringCancelReason)

		hc.Answer("")
		hc.Send(fmt.Sprintf("❌ Cancelling the session with %s.\n\nSend a cancellation reason, or /skip to send none:", req.MenteeName), nil)
	})
}

// HandleRefreshRequests re-fetches the request list past the cache.
func HandleRefreshRequests(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMentor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "req_refresh:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid service reference")
			return
		}
		serviceID := parts[0]

		groups, err := hc.Handler.Sessions.Refresh(hc.Ctx, hc.Session(), serviceID)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.Answer("🔄 Updated")
		if err := hc.EditMessage(common.RequestsOverview(groups, hc.Account.CompactDurations), RequestsKeyboard(serviceID, groups)); err != nil {
			h.Logger.Error("Failed to refresh request list", zap.Error(err), zap.String("service_id", serviceID))
		}
	})
}

// HandleWeekImage renders this week's accepted sessions as a picture.
func HandleWeekImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMentor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "week_image:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid service reference")
			return
		}
		serviceID := parts[0]

		groups, err := hc.Handler.Sessions.ListRequests(hc.Ctx, hc.Session(), serviceID)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		now := time.Now()
		imageData, err := common.RenderWeekImage(groups.Accepted, common.WeekStart(now), now)
		if err != nil {
			h.Logger.Error("Failed to render week image", zap.Error(err), zap.String("service_id", serviceID))
			hc.AnswerAlert("❌ Failed to render the week view")
			return
		}

		hc.Answer("")
		_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:  hc.ChatID,
			Photo:   &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(imageData)},
			Caption: "🗓 This week's accepted sessions",
		})
		if err != nil {
			h.Logger.Error("Failed to send week image", zap.Error(err), zap.String("service_id", serviceID))
		}
	})
}
