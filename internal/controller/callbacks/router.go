package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/admin"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/callbacktypes"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/common"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/community"
	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/mentor"
)

// ========================
// Callback Data Patterns
// ========================

// Mentor callbacks - session request lifecycle
const (
	RequestView    = "req_view:"    // req_view:service_id:request_id
	RequestAccept  = "req_accept:"  // req_accept:service_id:request_id
	RequestReject  = "req_reject:"  // req_reject:service_id:request_id
	RequestCancel  = "req_cancel:"  // req_cancel:service_id:request_id
	RequestRefresh = "req_refresh:" // req_refresh:service_id
	WeekImage      = "week_image:"  // week_image:service_id
)

// Admin callbacks - moderation
const (
	ReportView     = "report_view:"    // report_view:report_id
	ReportBan      = "report_ban:"     // report_ban:report_id
	ReportDiscard  = "report_discard:" // report_discard:report_id
	UnbanUser      = "unban:"          // unban:user_id
	ReportsRefresh = "reports_refresh"
	BannedRefresh  = "banned_refresh"
)

// Community callbacks
const (
	CommunityView       = "comm_view:"       // comm_view:community_id
	CommunityMembers    = "comm_members:"    // comm_members:community_id
	CommunityRequests   = "comm_requests:"   // comm_requests:community_id
	CommunityJoin       = "comm_join:"       // comm_join:community_id
	CommunityLeave      = "comm_leave:"      // comm_leave:community_id
	CommunityLeaveYes   = "comm_leave_yes:"  // comm_leave_yes:community_id
	CommunityDelete     = "comm_delete:"     // comm_delete:community_id
	CommunityDeleteYes  = "comm_delete_yes:" // comm_delete_yes:community_id
	JoinRequestApprove  = "jr_approve:"      // jr_approve:community_id:request_id
	JoinRequestReject   = "jr_reject:"       // jr_reject:community_id:request_id
	JoinRequestWithdraw = "jr_withdraw:"     // jr_withdraw:community_id:request_id
)

// Route dispatches a callback query to its handler.
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	// ===== Mentor: Session Requests =====
	case strings.HasPrefix(data, RequestView):
		mentor.HandleViewRequest(ctx, b, callback, h)
	case strings.HasPrefix(data, RequestAccept):
		mentor.HandleAcceptRequest(ctx, b, callback, h)
	case strings.HasPrefix(data, RequestReject):
		mentor.HandleRejectRequest(ctx, b, callback, h)
	case strings.HasPrefix(data, RequestCancel):
		mentor.HandleCancelRequest(ctx, b, callback, h)
	case strings.HasPrefix(data, RequestRefresh):
		mentor.HandleRefreshRequests(ctx, b, callback, h)
	case strings.HasPrefix(data, WeekImage):
		mentor.HandleWeekImage(ctx, b, callback, h)

	// ===== Admin: Moderation =====
	case strings.HasPrefix(data, ReportView):
		admin.HandleViewReport(ctx, b, callback, h)
	case strings.HasPrefix(data, ReportBan):
		admin.HandleBanReport(ctx, b, callback, h)
	case strings.HasPrefix(data, ReportDiscard):
		admin.HandleDiscardReport(ctx, b, callback, h)
	case strings.HasPrefix(data, UnbanUser):
		admin.HandleUnban(ctx, b, callback, h)
	case data == ReportsRefresh:
		admin.HandleRefreshReports(ctx, b, callback, h)
	case data == BannedRefresh:
		admin.HandleRefreshBanned(ctx, b, callback, h)

	// ===== Communities =====
	case strings.HasPrefix(data, CommunityView):
		community.HandleView(ctx, b, callback, h)
	case strings.HasPrefix(data, CommunityMembers):
		community.HandleMembers(ctx, b, callback, h)
	case strings.HasPrefix(data, CommunityRequests):
		community.HandleJoinRequests(ctx, b, callback, h)
	case strings.HasPrefix(data, CommunityJoin):
		community.HandleJoin(ctx, b, callback, h)
	case strings.HasPrefix(data, CommunityLeaveYes):
		community.HandleLeaveConfirmed(ctx, b, callback, h)
	case strings.HasPrefix(data, CommunityLeave):
		community.HandleLeave(ctx, b, callback, h)
	case strings.HasPrefix(data, CommunityDeleteYes):
		community.HandleDeleteConfirmed(ctx, b, callback, h)
	case strings.HasPrefix(data, CommunityDelete):
		community.HandleDelete(ctx, b, callback, h)
	case strings.HasPrefix(data, JoinRequestApprove):
		community.HandleRespondJoinRequest(ctx, b, callback, h, true)
	case strings.HasPrefix(data, JoinRequestReject):
		community.HandleRespondJoinRequest(ctx, b, callback, h, false)
	case strings.HasPrefix(data, JoinRequestWithdraw):
		community.HandleWithdrawJoinRequest(ctx, b, callback, h)

	case data == "noop":
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Unknown action")
	}
}
