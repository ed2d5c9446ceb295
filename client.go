// Package with implementation of a routing client for a Vectorizer
// master/replica cluster.
//
// The client holds one master URL and any number of read replica URLs.
// Every operation is classified as a read or a write: writes always target
// the master, reads follow the configured ReadPreference and rotate over
// the replicas round-robin. When a node cannot be reached the client fails
// over to the next candidate, with the master as the last resort for reads.
package vectorizer

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

const (
	clientOpen   = 0
	clientClosed = 1
)

// DefaultTimeout bounds a single attempt against a single node when Opts
// does not say otherwise.
const DefaultTimeout = 30 * time.Second

const defaultUserAgent = "go-vectorizer"

// Opts is a way to configure Client.
type Opts struct {
	// Addr is the URL of a single Vectorizer node. It is shorthand for a
	// Topology with Addr as master and no replicas, kept for deployments
	// that have not grown a replica set yet. Ignored when Topology.Master
	// is set.
	Addr string
	// Topology lists the master node and its read replicas.
	Topology Topology
	// ReadPreference selects the default routing target for read
	// operations. The zero value routes every read to the master; pick
	// Replica to spread reads over the replica set. Individual calls may
	// override it for one request.
	ReadPreference ReadPreference
	// APIKey, when set, is sent as a Bearer token with every request.
	APIKey string
	// Timeout bounds a single attempt against a single node, connection
	// setup included. A call that fails over spends up to Timeout per
	// candidate; bound the whole call with context.WithTimeout when that
	// matters. If Timeout is zero, DefaultTimeout is used.
	Timeout time.Duration
	// UserAgent overrides the User-Agent header sent to nodes.
	UserAgent string
	// Logger receives failover warnings and request tracing. By default
	// nothing is logged.
	Logger *zerolog.Logger
	// HTTPClient replaces the http.Client requests are sent with. Timeout
	// is not applied to a caller-provided client.
	HTTPClient *http.Client
	// Transport replaces the node transport entirely. When set, APIKey,
	// Timeout, UserAgent and HTTPClient are unused.
	Transport Transport
}

// Client routes Vectorizer operations over a master/replica topology.
//
// A Client is safe for concurrent use. Views created with WithMaster share
// the transport, the counters and the lifecycle with their parent, so they
// are cheap to create per call site.
type Client struct {
	topology  Topology
	router    *router
	transport Transport
	logger    zerolog.Logger
	stats     *routerStats
	state     *uint32
}

// New creates a routing Client. The topology is validated and frozen here:
// changing a deployment means creating a new Client.
func New(opts Opts) (*Client, error) {
	topology := opts.Topology
	if topology.Master == "" {
		topology.Master = opts.Addr
	}
	topology, err := topology.normalize()
	if err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	transport := opts.Transport
	if transport == nil {
		httpClient := opts.HTTPClient
		if httpClient == nil {
			timeout := opts.Timeout
			if timeout == 0 {
				timeout = DefaultTimeout
			}
			httpClient = &http.Client{Timeout: timeout}
		}
		userAgent := opts.UserAgent
		if userAgent == "" {
			userAgent = defaultUserAgent
		}
		transport = newHTTPTransport(httpClient, opts.APIKey, userAgent)
	}

	c := &Client{
		topology:  topology,
		router:    newRouter(topology, opts.ReadPreference),
		transport: transport,
		logger:    logger,
		stats:     newRouterStats(),
		state:     new(uint32),
	}
	c.logger.Debug().
		Str("master", topology.Master).
		Strs("replicas", topology.Replicas).
		Stringer("read_preference", opts.ReadPreference).
		Msg("vectorizer client created")
	return c, nil
}

// Connect creates a Client and verifies the master answers a health check
// before returning it.
func Connect(ctx context.Context, opts Opts) (*Client, error) {
	c, err := New(opts)
	if err != nil {
		return nil, err
	}
	if _, err := c.WithMaster().HealthCheck(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// WaitReady polls the master's health with exponential backoff until it
// answers, ctx ends, or the master answers with an error. Only
// connection-level failures are retried: a node that is up but refuses the
// request is final.
func (c *Client) WaitReady(ctx context.Context) error {
	poll := func() error {
		_, err := c.WithMaster().HealthCheck(ctx)
		switch {
		case err == nil:
			return nil
		case isConnError(err):
			return err
		default:
			return backoff.Permanent(err)
		}
	}
	return backoff.Retry(poll, backoff.WithContext(backoff.NewExponentialBackOff(), ctx))
}

// WithMaster returns a view of the client that sends every operation, reads
// included, to the master. The parent's routing is left untouched: its
// default preference keeps applying to calls made through it concurrently,
// and its replica rotation does not advance for calls made through the
// view. Use a view for read-your-own-write flows:
//
//	pinned := client.WithMaster()
//	if err := pinned.UpdateVector(ctx, col, vec); err != nil { ... }
//	fresh, err := pinned.GetVector(ctx, col, vec.ID)
func (c *Client) WithMaster() *Client {
	view := *c
	view.router = c.router.pinnedView()
	return &view
}

// OnMaster runs fn against a master-pinned view, for flows that read better
// as a block than as a handle.
func (c *Client) OnMaster(fn func(*Client) error) error {
	return fn(c.WithMaster())
}

// Topology returns the normalized topology the client routes over.
func (c *Client) Topology() Topology {
	replicas := make([]string, len(c.topology.Replicas))
	copy(replicas, c.topology.Replicas)
	return Topology{Master: c.topology.Master, Replicas: replicas}
}

// ReadPreference returns the default routing target for reads.
func (c *Client) ReadPreference() ReadPreference {
	return c.router.preference
}

// Stats returns a snapshot of the routing counters.
func (c *Client) Stats() Stats {
	return c.stats.snapshot()
}

// ClosedNow reports whether the client has been closed.
func (c *Client) ClosedNow() bool {
	return atomic.LoadUint32(c.state) == clientClosed
}

// Close releases the client. Views share the lifecycle with their parent:
// closing any of them closes all, and later calls fail with a ClientError
// coded ErrClientClosed.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(c.state, clientOpen, clientClosed) {
		return ClientError{Code: ErrClientClosed, Msg: "client already closed"}
	}
	if t, ok := c.transport.(*httpTransport); ok {
		t.client.CloseIdleConnections()
	}
	c.logger.Debug().Msg("vectorizer client closed")
	return nil
}
