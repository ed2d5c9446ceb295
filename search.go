package vectorizer

import (
	"context"
	"net/http"
	"net/url"
)

// SearchVectors runs a plain similarity search over one collection. The
// query text is embedded by the serving node.
func (c *Client) SearchVectors(ctx context.Context, collection string, query string, opts *SearchOptions, userPreference ...ReadPreference) ([]SearchResult, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if query == "" {
		return nil, validationErrorf("query must not be empty")
	}
	payload := map[string]interface{}{
		"collection": collection,
		"query":      query,
	}
	if opts != nil {
		if opts.Limit < 0 {
			return nil, validationErrorf("limit must not be negative")
		}
		if opts.Limit > 0 {
			payload["limit"] = opts.Limit
		}
		if opts.Filter != nil {
			payload["filter"] = opts.Filter
		}
	}
	var answer struct {
		Results []SearchResult `json:"results"`
	}
	path := "/collections/" + url.PathEscape(collection) + "/search"
	if err := c.call(ctx, OpSearchVectors, http.MethodPost, path, payload, &answer, userPreference...); err != nil {
		return nil, err
	}
	return answer.Results, nil
}

// NewSemanticSearchRequest returns a semantic search request with the
// server's recommended defaults; adjust fields before calling.
func NewSemanticSearchRequest(collection string, query string) SemanticSearchRequest {
	return SemanticSearchRequest{
		Query:               query,
		Collection:          collection,
		MaxResults:          10,
		SemanticReranking:   true,
		SimilarityThreshold: 0.5,
	}
}

// SemanticSearch reranks plain similarity hits with the server's semantic
// model.
func (c *Client) SemanticSearch(ctx context.Context, req SemanticSearchRequest, userPreference ...ReadPreference) (*IntelligentSearchResponse, error) {
	if req.Collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if req.Query == "" {
		return nil, validationErrorf("query must not be empty")
	}
	var answer IntelligentSearchResponse
	if err := c.call(ctx, OpSemanticSearch, http.MethodPost, "/semantic_search", req, &answer, userPreference...); err != nil {
		return nil, err
	}
	return &answer, nil
}

// NewContextualSearchRequest returns a contextual search request with the
// server's recommended defaults.
func NewContextualSearchRequest(collection string, query string) ContextualSearchRequest {
	return ContextualSearchRequest{
		Query:            query,
		Collection:       collection,
		MaxResults:       10,
		ContextReranking: true,
		ContextWeight:    0.3,
	}
}

// ContextualSearch weighs metadata context into the ranking.
func (c *Client) ContextualSearch(ctx context.Context, req ContextualSearchRequest, userPreference ...ReadPreference) (*IntelligentSearchResponse, error) {
	if req.Collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if req.Query == "" {
		return nil, validationErrorf("query must not be empty")
	}
	var answer IntelligentSearchResponse
	if err := c.call(ctx, OpContextualSearch, http.MethodPost, "/contextual_search", req, &answer, userPreference...); err != nil {
		return nil, err
	}
	return &answer, nil
}

// NewIntelligentSearchRequest returns an intelligent search request with
// the server's recommended defaults. Leave Collections empty to search all.
func NewIntelligentSearchRequest(query string) IntelligentSearchRequest {
	return IntelligentSearchRequest{
		Query:           query,
		MaxResults:      10,
		DomainExpansion: true,
		TechnicalFocus:  true,
		MMREnabled:      true,
		MMRLambda:       0.7,
	}
}

// IntelligentSearch expands the query into variants and merges the reranked
// hits across collections.
func (c *Client) IntelligentSearch(ctx context.Context, req IntelligentSearchRequest, userPreference ...ReadPreference) (*IntelligentSearchResponse, error) {
	if req.Query == "" {
		return nil, validationErrorf("query must not be empty")
	}
	var answer IntelligentSearchResponse
	if err := c.call(ctx, OpIntelligentSearch, http.MethodPost, "/intelligent_search", req, &answer, userPreference...); err != nil {
		return nil, err
	}
	return &answer, nil
}

// NewMultiCollectionSearchRequest returns a multi-collection search request
// with the server's recommended defaults.
func NewMultiCollectionSearchRequest(query string, collections []string) MultiCollectionSearchRequest {
	return MultiCollectionSearchRequest{
		Query:                    query,
		Collections:              collections,
		MaxPerCollection:         5,
		MaxTotalResults:          20,
		CrossCollectionReranking: true,
	}
}

// MultiCollectionSearch searches a fixed set of collections and reranks the
// union.
func (c *Client) MultiCollectionSearch(ctx context.Context, req MultiCollectionSearchRequest, userPreference ...ReadPreference) (*IntelligentSearchResponse, error) {
	if req.Query == "" {
		return nil, validationErrorf("query must not be empty")
	}
	if len(req.Collections) == 0 {
		return nil, validationErrorf("collections list must not be empty")
	}
	var answer IntelligentSearchResponse
	if err := c.call(ctx, OpMultiCollectionSearch, http.MethodPost, "/multi_collection_search", req, &answer, userPreference...); err != nil {
		return nil, err
	}
	return &answer, nil
}

// NewHybridSearchRequest returns a hybrid search request with the server's
// recommended defaults: reciprocal rank fusion over dense and sparse hits.
func NewHybridSearchRequest(collection string, query string) HybridSearchRequest {
	return HybridSearchRequest{
		Collection: collection,
		Query:      query,
		Alpha:      0.7,
		Algorithm:  "rrf",
		DenseK:     20,
		SparseK:    20,
		FinalK:     10,
	}
}

// HybridSearch fuses dense and sparse retrieval for one collection.
func (c *Client) HybridSearch(ctx context.Context, req HybridSearchRequest, userPreference ...ReadPreference) (*HybridSearchResponse, error) {
	if req.Collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if req.Query == "" {
		return nil, validationErrorf("query must not be empty")
	}
	var answer HybridSearchResponse
	path := "/collections/" + url.PathEscape(req.Collection) + "/hybrid_search"
	if err := c.call(ctx, OpHybridSearch, http.MethodPost, path, req, &answer, userPreference...); err != nil {
		return nil, err
	}
	return &answer, nil
}
