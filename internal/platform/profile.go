package platform

import (
	"context"
	"net/http"
)

// Profile is the authenticated user as the platform reports it.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Me resolves the session cookie to the logged-in user's profile. Used to
// verify a pasted session token during /login.
func (c *Client) Me(ctx context.Context, session string) (*Profile, error) {
	var resp struct {
		User Profile `json:"user"`
	}
	if err := c.do(ctx, session, http.MethodGet, "/users/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
