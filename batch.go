package vectorizer

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// BatchInsertTexts embeds and stores documents in one server-side batch.
// Documents with an empty ID get a generated UUID. A nil config uses the
// server's batch defaults.
func (c *Client) BatchInsertTexts(ctx context.Context, collection string, docs []TextDocument, config *BatchConfig) (*BatchResponse, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if len(docs) == 0 {
		return nil, validationErrorf("documents list must not be empty")
	}
	body := make([]TextDocument, len(docs))
	for i, doc := range docs {
		if doc.Text == "" {
			return nil, validationErrorf("document %d: text must not be empty", i)
		}
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		body[i] = doc
	}
	payload := map[string]interface{}{
		"texts": body,
	}
	if config != nil {
		payload["config"] = config
	}
	var answer BatchResponse
	if err := c.call(ctx, OpBatchInsertTexts, http.MethodPost, "/batch_insert", payload, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// BatchSearchVectors runs several searches against one collection in a
// single round trip. Results hold one slice per query, in query order.
func (c *Client) BatchSearchVectors(ctx context.Context, collection string, queries []BatchSearchQuery, config *BatchConfig, userPreference ...ReadPreference) (*BatchSearchResponse, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if len(queries) == 0 {
		return nil, validationErrorf("queries list must not be empty")
	}
	for i, q := range queries {
		if q.Query == "" {
			return nil, validationErrorf("query %d must not be empty", i)
		}
	}
	payload := map[string]interface{}{
		"queries": queries,
	}
	if config != nil {
		payload["config"] = config
	}
	var answer BatchSearchResponse
	if err := c.call(ctx, OpBatchSearchVectors, http.MethodPost, "/batch_search", payload, &answer, userPreference...); err != nil {
		return nil, err
	}
	return &answer, nil
}

// BatchUpdateVectors applies several vector updates in one server-side
// batch.
func (c *Client) BatchUpdateVectors(ctx context.Context, collection string, updates []BatchVectorUpdate, config *BatchConfig) (*BatchResponse, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if len(updates) == 0 {
		return nil, validationErrorf("updates list must not be empty")
	}
	for i, update := range updates {
		if update.ID == "" {
			return nil, validationErrorf("update %d: vector id must not be empty", i)
		}
		if len(update.Data) > 0 {
			if err := (Vector{ID: update.ID, Data: update.Data}).Validate(); err != nil {
				return nil, err
			}
		}
	}
	payload := map[string]interface{}{
		"updates": updates,
	}
	if config != nil {
		payload["config"] = config
	}
	var answer BatchResponse
	if err := c.call(ctx, OpBatchUpdateVectors, http.MethodPost, "/batch_update", payload, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// BatchDeleteVectors removes a set of vectors in one server-side batch.
func (c *Client) BatchDeleteVectors(ctx context.Context, collection string, ids []string, config *BatchConfig) (*BatchResponse, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if len(ids) == 0 {
		return nil, validationErrorf("vector ids list must not be empty")
	}
	// The service reads "ids"; older payloads used "vector_ids". Both
	// carry the same list.
	payload := map[string]interface{}{
		"ids":        ids,
		"vector_ids": ids,
	}
	if config != nil {
		payload["config"] = config
	}
	var answer BatchResponse
	if err := c.call(ctx, OpBatchDeleteVectors, http.MethodPost, "/batch_delete", payload, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}
