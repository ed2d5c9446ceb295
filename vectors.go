package vectorizer

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// EmbedText asks the routed node to embed text with its configured provider
// and returns the embedding.
func (c *Client) EmbedText(ctx context.Context, text string, userPreference ...ReadPreference) ([]float32, error) {
	if text == "" {
		return nil, validationErrorf("text must not be empty")
	}
	payload := map[string]string{"text": text}
	var answer struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := c.call(ctx, OpEmbedText, http.MethodPost, "/embed", payload, &answer, userPreference...); err != nil {
		return nil, err
	}
	return answer.Embedding, nil
}

// InsertTexts stores documents in collection; the master embeds and indexes
// them server-side. Documents with an empty ID get a generated UUID. The
// returned IDs are in docs order.
func (c *Client) InsertTexts(ctx context.Context, collection string, docs []TextDocument) ([]string, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if len(docs) == 0 {
		return nil, validationErrorf("documents list must not be empty")
	}
	ids := make([]string, len(docs))
	body := make([]TextDocument, len(docs))
	for i, doc := range docs {
		if doc.Text == "" {
			return nil, validationErrorf("document %d: text must not be empty", i)
		}
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		ids[i] = doc.ID
		body[i] = doc
	}
	payload := map[string]interface{}{
		"collection": collection,
		"texts":      body,
	}
	if err := c.call(ctx, OpInsertTexts, http.MethodPost, "/insert_texts", payload, nil); err != nil {
		return nil, err
	}
	return ids, nil
}

// InsertVectors stores pre-embedded vectors in collection. Vectors with an
// empty ID get a generated UUID. The returned IDs are in vectors order.
func (c *Client) InsertVectors(ctx context.Context, collection string, vectors []Vector) ([]string, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if len(vectors) == 0 {
		return nil, validationErrorf("vectors list must not be empty")
	}
	ids := make([]string, len(vectors))
	body := make([]Vector, len(vectors))
	for i, v := range vectors {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		ids[i] = v.ID
		body[i] = v
	}
	payload := map[string]interface{}{
		"collection": collection,
		"vectors":    body,
	}
	path := "/collections/" + url.PathEscape(collection) + "/vectors"
	if err := c.call(ctx, OpInsertVectors, http.MethodPost, path, payload, nil); err != nil {
		return nil, err
	}
	return ids, nil
}

// ListVectors pages through a collection's vectors. The server caps the
// page size; a nil opts asks for the server defaults.
func (c *Client) ListVectors(ctx context.Context, collection string, opts *ListVectorsOptions, userPreference ...ReadPreference) (*VectorList, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	path := "/collections/" + url.PathEscape(collection) + "/vectors"
	if opts != nil {
		query := url.Values{}
		if opts.Limit > 0 {
			query.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			query.Set("offset", strconv.Itoa(opts.Offset))
		}
		if opts.MinScore > 0 {
			query.Set("min_score", strconv.FormatFloat(opts.MinScore, 'f', -1, 64))
		}
		if encoded := query.Encode(); encoded != "" {
			path += "?" + encoded
		}
	}
	var list VectorList
	if err := c.call(ctx, OpListVectors, http.MethodGet, path, nil, &list, userPreference...); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetVector fetches one vector by ID.
func (c *Client) GetVector(ctx context.Context, collection string, id string, userPreference ...ReadPreference) (*Vector, error) {
	if collection == "" {
		return nil, validationErrorf("collection name must not be empty")
	}
	if id == "" {
		return nil, validationErrorf("vector id must not be empty")
	}
	path := "/collections/" + url.PathEscape(collection) + "/vectors/" + url.PathEscape(id)
	var v Vector
	if err := c.call(ctx, OpGetVector, http.MethodGet, path, nil, &v, userPreference...); err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateVector replaces the data and/or metadata of one vector on the
// master.
func (c *Client) UpdateVector(ctx context.Context, collection string, update BatchVectorUpdate) error {
	if collection == "" {
		return validationErrorf("collection name must not be empty")
	}
	if update.ID == "" {
		return validationErrorf("vector id must not be empty")
	}
	if len(update.Data) > 0 {
		if err := (Vector{ID: update.ID, Data: update.Data}).Validate(); err != nil {
			return err
		}
	}
	payload := map[string]interface{}{
		"collection": collection,
		"id":         update.ID,
	}
	if len(update.Data) > 0 {
		payload["data"] = update.Data
	}
	if update.Metadata != nil {
		payload["metadata"] = update.Metadata
	}
	return c.call(ctx, OpUpdateVector, http.MethodPost, "/update", payload, nil)
}

// DeleteVector removes one vector by ID.
func (c *Client) DeleteVector(ctx context.Context, collection string, id string) error {
	if collection == "" {
		return validationErrorf("collection name must not be empty")
	}
	if id == "" {
		return validationErrorf("vector id must not be empty")
	}
	path := "/collections/" + url.PathEscape(collection) + "/vectors/" + url.PathEscape(id)
	return c.call(ctx, OpDeleteVectors, http.MethodDelete, path, nil, nil)
}

// DeleteVectors removes a set of vectors by ID in one round trip.
func (c *Client) DeleteVectors(ctx context.Context, collection string, ids []string) error {
	if collection == "" {
		return validationErrorf("collection name must not be empty")
	}
	if len(ids) == 0 {
		return validationErrorf("vector ids list must not be empty")
	}
	payload := map[string]interface{}{
		"collection": collection,
		"vector_ids": ids,
	}
	path := "/collections/" + url.PathEscape(collection) + "/vectors"
	return c.call(ctx, OpDeleteVectors, http.MethodDelete, path, payload, nil)
}
