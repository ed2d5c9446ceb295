package vectorizer

import (
	"context"
	"net/http"
	"net/url"
)

// HealthCheck asks the routed node whether it is alive. It follows the read
// preference like any other read; pin the master to check the write node:
//
//	status, err := client.WithMaster().HealthCheck(ctx)
func (c *Client) HealthCheck(ctx context.Context, userPreference ...ReadPreference) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.call(ctx, OpHealthCheck, http.MethodGet, "/health", nil, &status, userPreference...); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetStats returns the routed node's collection and cache statistics.
func (c *Client) GetStats(ctx context.Context, userPreference ...ReadPreference) (*ServerStats, error) {
	var stats ServerStats
	if err := c.call(ctx, OpGetStats, http.MethodGet, "/stats", nil, &stats, userPreference...); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetIndexingProgress reports per-collection indexing state.
func (c *Client) GetIndexingProgress(ctx context.Context, userPreference ...ReadPreference) (*IndexingProgress, error) {
	var progress IndexingProgress
	if err := c.call(ctx, OpGetIndexingProgress, http.MethodGet, "/indexing/progress", nil, &progress, userPreference...); err != nil {
		return nil, err
	}
	return &progress, nil
}

// ListCollections returns every collection of the deployment.
func (c *Client) ListCollections(ctx context.Context, userPreference ...ReadPreference) ([]CollectionInfo, error) {
	var answer struct {
		Collections []CollectionInfo `json:"collections"`
	}
	if err := c.call(ctx, OpListCollections, http.MethodGet, "/collections", nil, &answer, userPreference...); err != nil {
		return nil, err
	}
	return answer.Collections, nil
}

// GetCollectionInfo returns one collection's metadata and counters.
func (c *Client) GetCollectionInfo(ctx context.Context, name string, userPreference ...ReadPreference) (*CollectionInfo, error) {
	if name == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	var info CollectionInfo
	path := "/collections/" + url.PathEscape(name)
	if err := c.call(ctx, OpGetCollectionInfo, http.MethodGet, path, nil, &info, userPreference...); err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateCollection creates col on the master. Dimension defaults to the
// server's default when zero; SimilarityMetric defaults to "cosine".
func (c *Client) CreateCollection(ctx context.Context, col Collection) (*CollectionInfo, error) {
	if col.Name == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if col.Dimension < 0 {
		return nil, validationErrorf("collection %q: dimension must not be negative", col.Name)
	}
	var info CollectionInfo
	if err := c.call(ctx, OpCreateCollection, http.MethodPost, "/collections", col, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteCollection removes a collection and all of its vectors.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	if name == "" {
		return validationErrorf("collection name must not be empty")
	}
	path := "/collections/" + url.PathEscape(name)
	return c.call(ctx, OpDeleteCollection, http.MethodDelete, path, nil, nil)
}
