package client

import "context"

// Reset wipes the graph and rebuilds it from the server's embeddings file.
func (c *Client) Reset(ctx context.Context) (*ResetResult, error) {
	var r ResetResult
	if err := c.post(ctx, "/api/v1/admin/reset", &r); err != nil {
		return nil, err
	}

	return &r, nil
}

// Fix removes nodes whose image files are missing on the server.
func (c *Client) Fix(ctx context.Context) (*FixResult, error) {
	var r FixResult
	if err := c.post(ctx, "/api/v1/admin/fix", &r); err != nil {
		return nil, err
	}

	return &r, nil
}

// Stats returns aggregate node and edge counts.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.get(ctx, "/api/v1/stats", nil, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Health returns the server's liveness report.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.get(ctx, "/api/v1/health", nil, &h); err != nil {
		return nil, err
	}

	return &h, nil
}
