package platform

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mentorhub/mentorhub-bot/internal/model"
)

// Search runs the dashboard search. The caller is responsible for debouncing
// and for never sending blank queries.
func (c *Client) Search(ctx context.Context, session, query string) (*model.SearchResults, error) {
	q := url.Values{}
	q.Set("query", query)

	var resp model.SearchResults
	if err := c.do(ctx, session, http.MethodGet, "/dashboard/search", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
