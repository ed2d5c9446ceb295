package vectorizer

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Error is wrapper around an error returned by a Vectorizer node. The node
// was reached and produced an answer, so the failover executor never retries
// an Error against another candidate: it is surfaced to the caller as is.
type Error struct {
	// StatusCode is the HTTP status the node answered with.
	StatusCode int
	// Msg is the server-provided message, when the node sent one.
	Msg string
}

// Error converts an Error to a string.
func (e Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Msg, e.StatusCode)
	}
	return fmt.Sprintf("request rejected (HTTP %d)", e.StatusCode)
}

// NotFound reports whether the node rejected the request because the target
// collection, vector or summary does not exist.
func (e Error) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Unauthorized reports whether the node rejected the request's credentials.
func (e Error) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// InvalidArgument reports whether the node rejected the request payload.
func (e Error) InvalidArgument() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
}

// ClientError is a connection error produced by this client, i.e. failures
// to reach a node, timeouts, or use of a closed client.
type ClientError struct {
	Code  uint32
	Msg   string
	Cause error
}

// Error converts a ClientError to a string.
func (e ClientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (0x%x): %s", e.Msg, e.Code, e.Cause)
	}
	return fmt.Sprintf("%s (0x%x)", e.Msg, e.Code)
}

func (e ClientError) Unwrap() error {
	return e.Cause
}

// Temporary returns true if the same request may succeed against another
// node. The failover executor advances to the next candidate exactly when an
// attempt fails with a temporary ClientError.
//
// Currently it returns true when:
//
// - the node was unreachable (connection refused, reset, no route)
//
// - the attempt timed out
func (e ClientError) Temporary() bool {
	switch e.Code {
	case ErrConnectionFailed, ErrRequestTimeout:
		return true
	default:
		return false
	}
}

// Vectorizer client error codes.
const (
	ErrConnectionFailed = 0x4000 + iota
	ErrRequestTimeout   = 0x4000 + iota
	ErrRequestCanceled  = 0x4000 + iota
	ErrClientClosed     = 0x4000 + iota
	ErrBadResponse      = 0x4000 + iota
)

var (
	ErrTooManyArgs = errors.New("too many arguments")
)

// ValidationError reports client-side rejection of request parameters. No
// node was contacted.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...interface{}) error {
	return ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Attempt records one failed routing candidate: the node URL and the
// connection-level error it produced.
type Attempt struct {
	URL string
	Err error
}

// NetworkError is returned when every routing candidate of a call failed at
// the connection level. Attempts preserves the order in which candidates
// were tried; a NetworkError for a master-pinned call holds exactly one
// attempt.
type NetworkError struct {
	Op       Operation
	Attempts []Attempt

	errs *multierror.Error
}

func newNetworkError(op Operation, attempts []Attempt) *NetworkError {
	var errs *multierror.Error
	for _, attempt := range attempts {
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", attempt.URL, attempt.Err))
	}
	return &NetworkError{Op: op, Attempts: attempts, errs: errs}
}

// Error lists every attempted node and its failure, in attempt order.
func (e *NetworkError) Error() string {
	urls := make([]string, len(e.Attempts))
	for i, attempt := range e.Attempts {
		urls[i] = attempt.URL
	}
	return fmt.Sprintf("%s: no node answered (tried %s): %s",
		e.Op, strings.Join(urls, ", "), e.errs.Error())
}

// Unwrap exposes the per-node errors to errors.Is and errors.As.
func (e *NetworkError) Unwrap() error {
	return e.errs
}

// isConnError reports whether err signals that the node never answered and
// the next candidate may be tried.
func isConnError(err error) bool {
	var cerr ClientError
	return errors.As(err, &cerr) && cerr.Temporary()
}
