package vectorizer

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// NewSummarizeTextRequest returns a text summarization request using the
// server's default extractive method.
func NewSummarizeTextRequest(text string) SummarizeTextRequest {
	return SummarizeTextRequest{Text: text, Method: "extractive"}
}

// SummarizeText summarizes a text and stores the result. Summaries persist
// on the server, so this routes to the master.
func (c *Client) SummarizeText(ctx context.Context, req SummarizeTextRequest) (*Summary, error) {
	if req.Text == "" {
		return nil, validationErrorf("text must not be empty")
	}
	var summary Summary
	if err := c.call(ctx, OpSummarizeText, http.MethodPost, "/summarize/text", req, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// NewSummarizeContextRequest returns a context summarization request using
// the server's default extractive method.
func NewSummarizeContextRequest(context string) SummarizeContextRequest {
	return SummarizeContextRequest{Context: context, Method: "extractive"}
}

// SummarizeContext summarizes a retrieval context and stores the result.
func (c *Client) SummarizeContext(ctx context.Context, req SummarizeContextRequest) (*Summary, error) {
	if req.Context == "" {
		return nil, validationErrorf("context must not be empty")
	}
	var summary Summary
	if err := c.call(ctx, OpSummarizeContext, http.MethodPost, "/summarize/context", req, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetSummary fetches one stored summary by ID.
func (c *Client) GetSummary(ctx context.Context, id string, userPreference ...ReadPreference) (*Summary, error) {
	if id == "" {
		return nil, validationErrorf("summary id must not be empty")
	}
	var summary Summary
	path := "/summaries/" + url.PathEscape(id)
	if err := c.call(ctx, OpGetSummary, http.MethodGet, path, nil, &summary, userPreference...); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListSummaries pages through stored summaries. A nil opts lists with the
// server defaults.
func (c *Client) ListSummaries(ctx context.Context, opts *ListSummariesOptions, userPreference ...ReadPreference) (*ListSummariesResponse, error) {
	path := "/summaries"
	if opts != nil {
		query := url.Values{}
		if opts.Method != "" {
			query.Set("method", opts.Method)
		}
		if opts.Language != "" {
			query.Set("language", opts.Language)
		}
		if opts.Limit > 0 {
			query.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			query.Set("offset", strconv.Itoa(opts.Offset))
		}
		if encoded := query.Encode(); encoded != "" {
			path += "?" + encoded
		}
	}
	var answer ListSummariesResponse
	if err := c.call(ctx, OpListSummaries, http.MethodGet, path, nil, &answer, userPreference...); err != nil {
		return nil, err
	}
	return &answer, nil
}
