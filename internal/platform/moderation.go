package platform

import (
	"context"
	"net/http"

	"github.com/mentorhub/mentorhub-bot/internal/model"
)

// ListUserReports fetches pending and resolved reports for the admin view.
func (c *Client) ListUserReports(ctx context.Context, session string) (*model.UserReports, error) {
	var resp struct {
		UserReports model.UserReports `json:"userReports"`
	}
	if err := c.do(ctx, session, http.MethodGet, "/admin/user-reports", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.UserReports, nil
}

// reportResolution is the PUT payload for resolving a report. BanReason is
// sent only when set: a discard never carries one.
type reportResolution struct {
	Action    model.ReportAction `json:"action"`
	BanReason string             `json:"banReason,omitempty"`
}

// ResolveUserReport resolves a pending report. banReason is ignored unless
// the action is a ban.
func (c *Client) ResolveUserReport(ctx context.Context, session, reportID string, action model.ReportAction, banReason string) (*model.BanReport, error) {
	body := reportResolution{Action: action}
	if action == model.ReportActionBan {
		body.BanReason = banReason
	}

	var resp struct {
		UserReport model.BanReport `json:"userReport"`
	}
	if err := c.do(ctx, session, http.MethodPut, "/admin/user-reports/"+reportID, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.UserReport, nil
}

// ListBannedUsers fetches the admin banned-users list.
func (c *Client) ListBannedUsers(ctx context.Context, session string) ([]model.BannedUser, error) {
	var resp struct {
		BannedUsers []model.BannedUser `json:"bannedUsers"`
	}
	if err := c.do(ctx, session, http.MethodGet, "/admin/banned-users", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.BannedUsers, nil
}

// UnbanUser lifts a ban. The endpoint may answer with an empty body, which
// counts as success.
func (c *Client) UnbanUser(ctx context.Context, session, userID string) error {
	return c.do(ctx, session, http.MethodDelete, "/admin/banned-users/"+userID, nil, nil, nil)
}
