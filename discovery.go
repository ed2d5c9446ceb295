package vectorizer

import (
	"context"
	"net/http"
)

// NewDiscoverRequest returns a discovery request with the pipeline's
// recommended defaults.
func NewDiscoverRequest(query string) DiscoverRequest {
	return DiscoverRequest{
		Query:      query,
		MaxBullets: 20,
		BroadK:     50,
		FocusK:     15,
	}
}

// Discover runs the full discovery pipeline: collection filtering, query
// expansion, broad search and focused rerank, producing a ready-to-use
// answer prompt.
func (c *Client) Discover(ctx context.Context, req DiscoverRequest, userPreference ...ReadPreference) (*DiscoverResponse, error) {
	if req.Query == "" {
		return nil, validationErrorf("query must not be empty")
	}
	var answer DiscoverResponse
	if err := c.call(ctx, OpDiscover, http.MethodPost, "/discover", req, &answer, userPreference...); err != nil {
		return nil, err
	}
	return &answer, nil
}

// FilterCollections pre-filters collections by name patterns. Include and
// exclude take glob-like patterns; exclusion wins.
func (c *Client) FilterCollections(ctx context.Context, query string, include []string, exclude []string, userPreference ...ReadPreference) (*FilterCollectionsResponse, error) {
	if query == "" {
		return nil, validationErrorf("query must not be empty")
	}
	payload := map[string]interface{}{"query": query}
	if len(include) > 0 {
		payload["include"] = include
	}
	if len(exclude) > 0 {
		payload["exclude"] = exclude
	}
	var answer FilterCollectionsResponse
	if err := c.call(ctx, OpFilterCollections, http.MethodPost, "/discovery/filter_collections", payload, &answer, userPreference...); err != nil {
		return nil, err
	}
	return &answer, nil
}

// NewScoreCollectionsRequest returns a scoring request with the pipeline's
// recommended weights.
func NewScoreCollectionsRequest(query string) ScoreCollectionsRequest {
	return ScoreCollectionsRequest{
		Query:             query,
		NameMatchWeight:   0.4,
		TermBoostWeight:   0.3,
		SignalBoostWeight: 0.3,
	}
}

// ScoreCollections ranks collections by how relevant they look for query.
func (c *Client) ScoreCollections(ctx context.Context, req ScoreCollectionsRequest, userPreference ...ReadPreference) (*ScoreCollectionsResponse, error) {
	if req.Query == "" {
		return nil, validationErrorf("query must not be empty")
	}
	var answer ScoreCollectionsResponse
	if err := c.call(ctx, OpScoreCollections, http.MethodPost, "/discovery/score_collections", req, &answer, userPreference...); err != nil {
		return nil, err
	}
	return &answer, nil
}

// NewExpandQueriesRequest returns an expansion request with the pipeline's
// recommended defaults.
func NewExpandQueriesRequest(query string) ExpandQueriesRequest {
	return ExpandQueriesRequest{
		Query:               query,
		MaxExpansions:       8,
		IncludeDefinition:   true,
		IncludeFeatures:     true,
		IncludeArchitecture: true,
	}
}

// ExpandQueries generates query variations for broader recall.
func (c *Client) ExpandQueries(ctx context.Context, req ExpandQueriesRequest, userPreference ...ReadPreference) (*ExpandQueriesResponse, error) {
	if req.Query == "" {
		return nil, validationErrorf("query must not be empty")
	}
	var answer ExpandQueriesResponse
	if err := c.call(ctx, OpExpandQueries, http.MethodPost, "/discovery/expand_queries", req, &answer, userPreference...); err != nil {
		return nil, err
	}
	return &answer, nil
}
