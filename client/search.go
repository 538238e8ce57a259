package client

import (
	"context"
	"net/url"
	"strconv"
)

// Search finds nodes whose description contains the query text. A zero
// limit leaves the server default in effect.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Node, error) {
	q := url.Values{"q": {query}}

	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var body struct {
		Results []Node `json:"results"`
	}

	if err := c.get(ctx, "/api/v1/search", q, &body); err != nil {
		return nil, err
	}

	return body.Results, nil
}
