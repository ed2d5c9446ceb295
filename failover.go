package vectorizer

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
)

// errorBody covers the message shapes Vectorizer nodes answer errors with.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// apiError converts a non-2xx node answer into an Error.
func apiError(res *Response) error {
	var body errorBody
	msg := ""
	if len(res.Body) > 0 && json.Unmarshal(res.Body, &body) == nil {
		switch {
		case body.Error != "":
			msg = body.Error
		case body.Message != "":
			msg = body.Message
		case body.Detail != "":
			msg = body.Detail
		}
	}
	return Error{StatusCode: res.StatusCode, Msg: msg}
}

// do routes req and executes it with failover. Candidates are tried in
// routing order and the executor advances only on connection-level errors:
// any answer produced by a node, HTTP errors included, is final. When every
// candidate fails to answer, the per-node errors are aggregated into a
// NetworkError.
func (c *Client) do(ctx context.Context, req *Request, userPreference ...ReadPreference) (*Response, error) {
	if atomic.LoadUint32(c.state) != clientOpen {
		return nil, ClientError{Code: ErrClientClosed, Msg: "using closed client"}
	}
	candidates, err := c.router.route(req.Op, userPreference...)
	if err != nil {
		return nil, err
	}
	c.stats.recordCall(KindOf(req.Op))
	c.logger.Debug().
		Str("op", string(req.Op)).
		Str("method", req.Method).
		Str("path", req.Path).
		Int("candidates", len(candidates)).
		Msg("routing request")

	var attempts []Attempt
	for i, nodeURL := range candidates {
		if i > 0 {
			c.stats.recordFailover()
			c.logger.Warn().
				Str("op", string(req.Op)).
				Str("node", nodeURL).
				Err(attempts[len(attempts)-1].Err).
				Msg("failing over to next node")
		}
		c.stats.recordNodeHit(nodeURL)

		res, err := c.transport.Send(ctx, nodeURL, req)
		if err == nil {
			if res.StatusCode >= http.StatusBadRequest {
				return nil, apiError(res)
			}
			return res, nil
		}
		if !isConnError(err) {
			return nil, err
		}
		attempts = append(attempts, Attempt{URL: nodeURL, Err: err})
		if ctx.Err() != nil {
			break
		}
	}
	c.stats.recordExhausted()
	return nil, newNetworkError(req.Op, attempts)
}

// call is the JSON convenience wrapper over do: it marshals payload when
// non-nil and decodes the answer into out when non-nil.
func (c *Client) call(ctx context.Context, op Operation, method string, path string,
	payload interface{}, out interface{}, userPreference ...ReadPreference) error {
	req := &Request{Op: op, Method: method, Path: path}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return validationErrorf("encode %s payload: %s", op, err)
		}
		req.Body = body
	}
	res, err := c.do(ctx, req, userPreference...)
	if err != nil {
		return err
	}
	if out == nil || len(res.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Body, out); err != nil {
		return ClientError{Code: ErrBadResponse, Msg: "decode " + string(op) + " response", Cause: err}
	}
	return nil
}
