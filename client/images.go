package client

import "context"

// Images lists the image filenames known to the server.
func (c *Client) Images(ctx context.Context) ([]string, error) {
	var body struct {
		Images []string `json:"images"`
	}

	if err := c.get(ctx, "/api/v1/images", nil, &body); err != nil {
		return nil, err
	}

	return body.Images, nil
}

// SyncStatus reports drift between the server's graph store and its image
// directory.
func (c *Client) SyncStatus(ctx context.Context) (*SyncStatus, error) {
	var s SyncStatus
	if err := c.get(ctx, "/api/v1/images/sync", nil, &s); err != nil {
		return nil, err
	}

	return &s, nil
}
