package platform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mentorhub/mentorhub-bot/internal/model"
)

// SessionRequestGroups is the grouped shape the session-requests endpoint
// returns, keyed by status.
type SessionRequestGroups struct {
	Pending   []model.SessionRequest `json:"PENDING"`
	Accepted  []model.SessionRequest `json:"ACCEPTED"`
	Rejected  []model.SessionRequest `json:"REJECTED"`
	Cancelled []model.SessionRequest `json:"CANCELLED"`
}

// SessionRequestUpdate is the PATCH payload for a session-request mutation.
// Agenda travels only on acceptance; RejectionReason only on reject/cancel.
type SessionRequestUpdate struct {
	Status          string `json:"status"` // accepted | rejected | cancelled
	Agenda          string `json:"agenda,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// ListSessionRequests fetches a mentor service's requests grouped by status.
func (c *Client) ListSessionRequests(ctx context.Context, session, serviceID string) (*SessionRequestGroups, error) {
	var resp struct {
		SessionRequests SessionRequestGroups `json:"sessionRequests"`
	}
	path := fmt.Sprintf("/services/my/%s/session-requests", serviceID)
	if err := c.do(ctx, session, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.SessionRequests, nil
}

// UpdateSessionRequest applies a status mutation and returns the updated
// request as the server sees it.
func (c *Client) UpdateSessionRequest(ctx context.Context, session, serviceID, requestID string, update SessionRequestUpdate) (*model.SessionRequest, error) {
	var resp struct {
		SessionRequest model.SessionRequest `json:"sessionRequest"`
	}
	path := fmt.Sprintf("/services/my/%s/session-requests/%s", serviceID, requestID)
	if err := c.do(ctx, session, http.MethodPatch, path, nil, update, &resp); err != nil {
		return nil, err
	}
	return &resp.SessionRequest, nil
}
