package vectorizer

import (
	"context"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

type timeoutNetError struct{}

func (timeoutNetError) Error() string   { return "i/o timeout" }
func (timeoutNetError) Timeout() bool   { return true }
func (timeoutNetError) Temporary() bool { return true }

func TestWrapConnErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code uint32
	}{
		{
			"canceled",
			&url.Error{Op: "Post", URL: "http://master:15002/insert_texts", Err: context.Canceled},
			ErrRequestCanceled,
		},
		{
			"deadline",
			&url.Error{Op: "Get", URL: "http://master:15002/health", Err: context.DeadlineExceeded},
			ErrRequestTimeout,
		},
		{
			"io timeout",
			&url.Error{Op: "Get", URL: "http://master:15002/health", Err: timeoutNetError{}},
			ErrRequestTimeout,
		},
		{
			"refused",
			&url.Error{Op: "Get", URL: "http://master:15002/health", Err: errors.New("connection refused")},
			ErrConnectionFailed,
		},
	}
	for _, tc := range cases {
		wrapped := wrapConnError(tc.err)
		var cerr ClientError
		if !errors.As(wrapped, &cerr) {
			t.Errorf("%s: expected a ClientError, got %v", tc.name, wrapped)
			continue
		}
		if cerr.Code != tc.code {
			t.Errorf("%s: unexpected code 0x%x, want 0x%x", tc.name, cerr.Code, tc.code)
		}
		if !errors.Is(wrapped, tc.err) {
			t.Errorf("%s: original error lost", tc.name)
		}
	}
}

func TestWrapConnErrorTemporary(t *testing.T) {
	canceled := wrapConnError(&url.Error{Err: context.Canceled})
	if isConnError(canceled) {
		t.Errorf("a canceled request must not be retried on another node")
	}

	refused := wrapConnError(&url.Error{Err: errors.New("connection refused")})
	if !isConnError(refused) {
		t.Errorf("an unreachable node must allow failover")
	}
}

func TestHTTPTransportSendHeaders(t *testing.T) {
	var got *http.Request
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		gotBody, _ = ioutil.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	transport := newHTTPTransport(srv.Client(), "secret-key", "go-vectorizer-test")
	res, err := transport.Send(context.Background(), srv.URL, &Request{
		Op:     OpInsertTexts,
		Method: http.MethodPost,
		Path:   "/insert_texts",
		Body:   []byte(`{"collection":"docs"}`),
	})
	if err != nil {
		t.Fatalf("send failed: %s", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("unexpected status %d", res.StatusCode)
	}
	if string(res.Body) != `{"status":"ok"}` {
		t.Errorf("unexpected body %q", res.Body)
	}

	if got.Method != http.MethodPost || got.URL.Path != "/insert_texts" {
		t.Errorf("unexpected request line: %s %s", got.Method, got.URL.Path)
	}
	if string(gotBody) != `{"collection":"docs"}` {
		t.Errorf("unexpected request body %q", gotBody)
	}
	if h := got.Header.Get("Content-Type"); h != "application/json" {
		t.Errorf("unexpected Content-Type %q", h)
	}
	if h := got.Header.Get("Accept"); h != "application/json" {
		t.Errorf("unexpected Accept %q", h)
	}
	if h := got.Header.Get("Authorization"); h != "Bearer secret-key" {
		t.Errorf("unexpected Authorization %q", h)
	}
	if h := got.Header.Get("User-Agent"); h != "go-vectorizer-test" {
		t.Errorf("unexpected User-Agent %q", h)
	}
}

func TestHTTPTransportSendNoBody(t *testing.T) {
	var contentType string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	transport := newHTTPTransport(srv.Client(), "", "go-vectorizer-test")
	res, err := transport.Send(context.Background(), srv.URL, &Request{
		Op:     OpHealthCheck,
		Method: http.MethodGet,
		Path:   "/health",
	})
	if err != nil {
		t.Fatalf("send failed: %s", err)
	}
	if res.StatusCode != http.StatusNoContent {
		t.Errorf("unexpected status %d", res.StatusCode)
	}
	if contentType != "" {
		t.Errorf("Content-Type sent without a body: %q", contentType)
	}
	if hasAuth {
		t.Errorf("Authorization sent without an API key")
	}
}

func TestHTTPTransportSendContentTypeOverride(t *testing.T) {
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	transport := newHTTPTransport(srv.Client(), "", "")
	_, err := transport.Send(context.Background(), srv.URL, &Request{
		Op:          OpUploadFile,
		Method:      http.MethodPost,
		Path:        "/files/upload",
		Body:        []byte("--boundary--"),
		ContentType: "multipart/form-data; boundary=boundary",
	})
	if err != nil {
		t.Fatalf("send failed: %s", err)
	}
	if contentType != "multipart/form-data; boundary=boundary" {
		t.Errorf("unexpected Content-Type %q", contentType)
	}
}

func TestHTTPTransportSendUnreachableNode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	transport := newHTTPTransport(&http.Client{}, "", "")
	_, err := transport.Send(context.Background(), srv.URL, &Request{
		Op:     OpHealthCheck,
		Method: http.MethodGet,
		Path:   "/health",
	})
	var cerr ClientError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected a ClientError, got %v", err)
	}
	if cerr.Code != ErrConnectionFailed {
		t.Errorf("unexpected code 0x%x", cerr.Code)
	}
	if !cerr.Temporary() {
		t.Errorf("an unreachable node must be temporary")
	}
}

func TestHTTPTransportSendCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport := newHTTPTransport(srv.Client(), "", "")
	_, err := transport.Send(ctx, srv.URL, &Request{
		Op:     OpHealthCheck,
		Method: http.MethodGet,
		Path:   "/health",
	})
	var cerr ClientError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected a ClientError, got %v", err)
	}
	if cerr.Code != ErrRequestCanceled {
		t.Errorf("unexpected code 0x%x", cerr.Code)
	}
	if cerr.Temporary() {
		t.Errorf("a canceled request must not be temporary")
	}
}