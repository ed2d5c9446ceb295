package vectorizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Request describes a single Vectorizer HTTP call before routing: the
// operation used for read/write classification plus the wire-level method,
// path and body shared by every candidate node.
type Request struct {
	Op     Operation
	Method string
	Path   string
	Body   []byte
	// ContentType overrides the default application/json body type. File
	// uploads set it to the multipart boundary type.
	ContentType string
}

// Response is the raw answer of a single node.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport sends a prepared request to one concrete node. Implementations
// must be safe for concurrent use: the same Transport serves the client and
// all of its master-pinned views.
type Transport interface {
	Send(ctx context.Context, baseURL string, req *Request) (*Response, error)
}

// httpTransport is the default Transport, backed by net/http.
type httpTransport struct {
	client    *http.Client
	apiKey    string
	userAgent string
}

func newHTTPTransport(client *http.Client, apiKey string, userAgent string) *httpTransport {
	return &httpTransport{
		client:    client,
		apiKey:    apiKey,
		userAgent: userAgent,
	}
}

func (t *httpTransport) Send(ctx context.Context, baseURL string, req *Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	hreq, err := http.NewRequestWithContext(ctx, req.Method, baseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", req.Op, err)
	}
	if len(req.Body) > 0 {
		contentType := req.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		hreq.Header.Set("Content-Type", contentType)
	}
	hreq.Header.Set("Accept", "application/json")
	if t.apiKey != "" {
		hreq.Header.Set("Authorization", "Bearer "+t.apiKey)
	}
	if t.userAgent != "" {
		hreq.Header.Set("User-Agent", t.userAgent)
	}

	hres, err := t.client.Do(hreq)
	if err != nil {
		return nil, wrapConnError(err)
	}
	defer hres.Body.Close()

	payload, err := io.ReadAll(hres.Body)
	if err != nil {
		return nil, ClientError{Code: ErrConnectionFailed, Msg: "read response body", Cause: err}
	}
	return &Response{StatusCode: hres.StatusCode, Body: payload}, nil
}

// wrapConnError classifies a net/http transport error into a ClientError so
// the failover executor can tell retriable connection failures from final
// ones. Cancellation is final, timeouts and unreachable nodes are not.
func wrapConnError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return ClientError{Code: ErrRequestCanceled, Msg: "request canceled", Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return ClientError{Code: ErrRequestTimeout, Msg: "request timed out", Cause: err}
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return ClientError{Code: ErrRequestTimeout, Msg: "request timed out", Cause: err}
	}
	return ClientError{Code: ErrConnectionFailed, Msg: "connection failed", Cause: err}
}
