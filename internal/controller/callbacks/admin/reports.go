// Package admin holds the callback handlers for the moderation surface:
// resolving user reports and managing the banned list.
package admin

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/callbacktypes"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/common"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/common/keyboard"
	"github.com/mentorhub/mentorhub-bot/internal/controller/state"
	"github.com/mentorhub/mentorhub-bot/internal/model"
	"github.com/mentorhub/mentorhub-bot/internal/service"
)

// ReportsText renders the pending report queue.
func ReportsText(reports *model.UserReports) string {
	if len(reports.Pending) == 0 {
		return fmt.Sprintf("🚨 No pending reports (%d resolved)", len(reports.Resolved))
	}
	return fmt.Sprintf("🚨 %d pending reports (%d resolved)\n\nPick one to review:",
		len(reports.Pending), len(reports.Resolved))
}

// ReportsKeyboard lists the pending reports plus a refresh button.
func ReportsKeyboard(reports *model.UserReports) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	for i := range reports.Pending {
		report := &reports.Pending[i]
		label := fmt.Sprintf("%s · %s", report.ReportedUserName, report.Violation)
		kb.Row(keyboard.Button(label, "report_view:"+report.ID))
	}
	kb.Row(keyboard.Button("🔄 Refresh", "reports_refresh"))
	return kb.Build()
}

func findReport(reports *model.UserReports, reportID string) *model.BanReport {
	for _, list := range [][]model.BanReport{reports.Pending, reports.Resolved} {
		for i := range list {
			if list[i].ID == reportID {
				return &list[i]
			}
		}
	}
	return nil
}

func pendingReport(hc *common.HandlerContext, reportID string) (*model.BanReport, error) {
	reports, err := hc.Handler.Moderation.Reports(hc.Ctx, hc.Session())
	if err != nil {
		return nil, err
	}
	report := findReport(reports, reportID)
	if report == nil {
		return nil, fmt.Errorf("report %s not found", reportID)
	}
	return report, nil
}

// HandleViewReport shows one report with its resolution actions.
func HandleViewReport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "report_view:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid report reference")
			return
		}

		report, err := pendingReport(hc, parts[0])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		kb := keyboard.NewBuilder()
		if report.Resolution == "" {
			kb.Row(
				keyboard.Button("⛔ Ban user", "report_ban:"+report.ID),
				keyboard.Button("🗑 Discard", "report_discard:"+report.ID),
			)
		}
		kb.Row(keyboard.Button("⬅️ Back to reports", "reports_refresh"))

		hc.Answer("")
		if err := hc.EditMessage(common.ReportDetails(report), kb.Build()); err != nil {
			h.Logger.Error("Failed to show report", zap.Error(err), zap.String("report_id", report.ID))
		}
	})
}

// HandleBanReport starts the ban dialog: the reason is typed in next and
// validated before anything is sent.
func HandleBanReport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "report_ban:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid report reference")
			return
		}

		report, err := pendingReport(hc, parts[0])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		if report.Resolution != "" {
			hc.AnswerAlert(common.ErrorMessage(service.ErrReportResolved))
			return
		}

		h.States.SetDraft(hc.TelegramID, state.Draft{ReportID: report.ID})
		h.States.SetState(hc.TelegramID, state.StateEnteringBanReason)

		hc.Answer("")
		hc.Send(fmt.Sprintf("⛔ Banning %s.\n\nType the ban reason (%d to %d characters):",
			report.ReportedUserName, model.BanReasonMinLength, model.BanReasonMaxLength), nil)
	})
}

// HandleDiscardReport resolves a report with no consequence, immediately.
func HandleDiscardReport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.CallbackParts(callback.Data, "report_discard:", 1)
		if err != nil {
			hc.AnswerAlert("❌ Invalid report reference")
			return
		}

		report, err := pendingReport(hc, parts[0])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		if _, err := h.Moderation.Discard(hc.Ctx, hc.Session(), report); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.Answer("🗑 Report discarded")
		showReports(hc, h)
	})
}

// HandleRefreshReports re-fetches the report queue past the cache.
func HandleRefreshReports(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := h.Moderation.RefreshReports(hc.Ctx, hc.Session()); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		hc.Answer("🔄 Updated")
		showReports(hc, h)
	})
}

func showReports(hc *common.HandlerContext, h *callbacktypes.Handler) {
	reports, err := h.Moderation.Reports(hc.Ctx, hc.Session())
	if err != nil {
		hc.Send(common.ErrorMessage(err), nil)
		return
	}
	if err := hc.EditMessage(ReportsText(reports), ReportsKeyboard(reports)); err != nil {
		h.Logger.Error("Failed to show report queue", zap.Error(err))
	}
}
