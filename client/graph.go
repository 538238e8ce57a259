package client

import (
	"context"
	"net/url"
	"strconv"
)

// Neighbors fetches the direct neighbors of an image above the similarity
// threshold. Zero values for threshold or limit leave the server defaults
// in effect.
func (c *Client) Neighbors(ctx context.Context, imagePath string, threshold float64, limit int) (*Graph, error) {
	q := url.Values{"image_path": {imagePath}}

	if threshold > 0 {
		q.Set("threshold", strconv.FormatFloat(threshold, 'f', -1, 64))
	}

	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var g Graph
	if err := c.get(ctx, "/neighbors", q, &g); err != nil {
		return nil, err
	}

	return &g, nil
}

// ExtendedNeighbors runs a multi-level traversal from the image. Zero
// values leave the server defaults in effect (depth 1, limit per level 10,
// max nodes 100).
func (c *Client) ExtendedNeighbors(ctx context.Context, imagePath string, threshold float64, depth, limitPerLevel, maxNodes int) (*Graph, error) {
	q := url.Values{"image_path": {imagePath}}

	if threshold > 0 {
		q.Set("threshold", strconv.FormatFloat(threshold, 'f', -1, 64))
	}

	if depth > 0 {
		q.Set("depth", strconv.Itoa(depth))
	}

	if limitPerLevel > 0 {
		q.Set("limit_per_level", strconv.Itoa(limitPerLevel))
	}

	if maxNodes > 0 {
		q.Set("max_nodes", strconv.Itoa(maxNodes))
	}

	var g Graph
	if err := c.get(ctx, "/extended-neighbors", q, &g); err != nil {
		return nil, err
	}

	return &g, nil
}
