package platform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mentorhub/mentorhub-bot/internal/model"
)

// CommunityParams is the create/update payload for a community.
type CommunityParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (c *Client) CreateCommunity(ctx context.Context, session string, params CommunityParams) (*model.Community, error) {
	var resp struct {
		Community model.Community `json:"community"`
	}
	if err := c.do(ctx, session, http.MethodPost, "/communities", nil, params, &resp); err != nil {
		return nil, err
	}
	return &resp.Community, nil
}

func (c *Client) GetCommunity(ctx context.Context, session, communityID string) (*model.Community, error) {
	var resp struct {
		Community model.Community `json:"community"`
	}
	if err := c.do(ctx, session, http.MethodGet, "/communities/"+communityID, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Community, nil
}

// ListMyCommunities fetches communities the caller belongs to or manages.
func (c *Client) ListMyCommunities(ctx context.Context, session string) ([]model.Community, error) {
	var resp struct {
		Communities []model.Community `json:"communities"`
	}
	if err := c.do(ctx, session, http.MethodGet, "/communities/my", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Communities, nil
}

func (c *Client) UpdateCommunity(ctx context.Context, session, communityID string, params CommunityParams) (*model.Community, error) {
	var resp struct {
		Community model.Community `json:"community"`
	}
	if err := c.do(ctx, session, http.MethodPut, "/communities/"+communityID, nil, params, &resp); err != nil {
		return nil, err
	}
	return &resp.Community, nil
}

func (c *Client) DeleteCommunity(ctx context.Context, session, communityID string) error {
	return c.do(ctx, session, http.MethodDelete, "/communities/"+communityID, nil, nil, nil)
}

// SubmitJoinRequest applies to join a community, with an optional message to
// the community manager.
func (c *Client) SubmitJoinRequest(ctx context.Context, session, communityID, message string) (*model.JoinRequest, error) {
	body := struct {
		Message string `json:"message,omitempty"`
	}{Message: message}

	var resp struct {
		JoinRequest model.JoinRequest `json:"joinRequest"`
	}
	path := fmt.Sprintf("/communities/%s/join-requests", communityID)
	if err := c.do(ctx, session, http.MethodPost, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.JoinRequest, nil
}

func (c *Client) CancelJoinRequest(ctx context.Context, session, communityID, requestID string) error {
	path := fmt.Sprintf("/communities/%s/join-requests/%s", communityID, requestID)
	return c.do(ctx, session, http.MethodDelete, path, nil, nil, nil)
}

// RespondJoinRequest approves or rejects a pending join request (manager only).
func (c *Client) RespondJoinRequest(ctx context.Context, session, communityID, requestID string, approve bool) (*model.JoinRequest, error) {
	body := struct {
		Approve bool `json:"approve"`
	}{Approve: approve}

	var resp struct {
		JoinRequest model.JoinRequest `json:"joinRequest"`
	}
	path := fmt.Sprintf("/communities/%s/join-requests/%s", communityID, requestID)
	if err := c.do(ctx, session, http.MethodPut, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.JoinRequest, nil
}

// ListJoinRequests fetches a community's pending join requests (manager only).
func (c *Client) ListJoinRequests(ctx context.Context, session, communityID string) ([]model.JoinRequest, error) {
	var resp struct {
		JoinRequests []model.JoinRequest `json:"joinRequests"`
	}
	path := fmt.Sprintf("/communities/%s/join-requests", communityID)
	if err := c.do(ctx, session, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.JoinRequests, nil
}

func (c *Client) ListCommunityMembers(ctx context.Context, session, communityID string) ([]model.CommunityMember, error) {
	var resp struct {
		Members []model.CommunityMember `json:"members"`
	}
	path := fmt.Sprintf("/communities/%s/members", communityID)
	if err := c.do(ctx, session, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Members, nil
}

func (c *Client) LeaveCommunity(ctx context.Context, session, communityID string) error {
	path := fmt.Sprintf("/communities/%s/members/me", communityID)
	return c.do(ctx, session, http.MethodDelete, path, nil, nil, nil)
}
