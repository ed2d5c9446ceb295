package vectorizer_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/hivellm/go-vectorizer"
)

func TestNewRequiresMaster(t *testing.T) {
	_, err := New(Opts{})
	assert.ErrorIs(t, err, ErrMasterRequired)

	_, err = New(Opts{Topology: Topology{Replicas: []string{replica1}}})
	assert.ErrorIs(t, err, ErrMasterRequired)
}

func TestNewRejectsBadURLs(t *testing.T) {
	_, err := New(Opts{Addr: "master:15002"})
	require.Error(t, err)

	_, err = New(Opts{Topology: Topology{Master: master, Replicas: []string{"not a url"}}})
	require.Error(t, err)
}

func TestNewAddrShorthand(t *testing.T) {
	client, err := New(Opts{Addr: "http://master:15002/"})
	require.NoError(t, err)
	defer client.Close()

	topology := client.Topology()
	assert.Equal(t, master, topology.Master)
	assert.Empty(t, topology.Replicas)
	assert.True(t, topology.SingleNode())
	assert.Equal(t, Master, client.ReadPreference())
}

func TestNewTopologyWinsOverAddr(t *testing.T) {
	client, err := New(Opts{
		Addr:     "http://ignored:15002",
		Topology: Topology{Master: master, Replicas: []string{replica1}},
	})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, master, client.Topology().Master)
	assert.Equal(t, []string{replica1}, client.Topology().Replicas)
}

func TestTopologyAccessorReturnsCopy(t *testing.T) {
	client, err := New(Opts{
		Topology: Topology{Master: master, Replicas: []string{replica1, replica2}},
	})
	require.NoError(t, err)
	defer client.Close()

	topology := client.Topology()
	topology.Replicas[0] = "http://hijacked:15002"
	assert.Equal(t, replica1, client.Topology().Replicas[0])
}

func TestWithMasterPinsReads(t *testing.T) {
	script := newNodeScript()
	script.respond(master, http.StatusOK, `{"status":"healthy"}`)
	for _, url := range []string{replica1, replica2, replica3} {
		script.respond(url, http.StatusOK, `{"status":"healthy"}`)
	}

	client := newTestClient(t, script, Replica)
	pinned := client.WithMaster()

	for i := 0; i < 3; i++ {
		_, err := pinned.HealthCheck(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, []string{master, master, master}, script.order())

	// The view must not have advanced the parent's rotation.
	_, err := client.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{master, master, master, replica1}, script.order())
}

func TestWithMasterSharesStats(t *testing.T) {
	script := newNodeScript()
	script.respond(master, http.StatusOK, `{"status":"healthy"}`)

	client := newTestClient(t, script, Master)
	pinned := client.WithMaster()

	_, err := pinned.HealthCheck(context.Background())
	require.NoError(t, err)
	_, err = client.HealthCheck(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(2), client.Stats().Requests)
	assert.Equal(t, uint64(2), pinned.Stats().Requests)
}

func TestWithMasterConcurrentWithParentReads(t *testing.T) {
	script := newNodeScript()
	script.respond(master, http.StatusOK, `{"status":"healthy"}`)
	for _, url := range []string{replica1, replica2, replica3} {
		script.respond(url, http.StatusOK, `{"status":"healthy"}`)
	}

	client := newTestClient(t, script, Replica)
	pinned := client.WithMaster()

	const workers = 6
	const perWorker = 50

	var wg sync.WaitGroup
	wg.Add(workers * 2)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := client.HealthCheck(context.Background()); err != nil {
					t.Errorf("parent read: %s", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := pinned.HealthCheck(context.Background()); err != nil {
					t.Errorf("pinned read: %s", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	// Only parent reads advance the rotation, so the replicas split them
	// exactly; every pinned read lands on the master.
	stats := client.Stats()
	perReplica := uint64(workers * perWorker / 3)
	assert.Equal(t, perReplica, stats.NodeHits[replica1])
	assert.Equal(t, perReplica, stats.NodeHits[replica2])
	assert.Equal(t, perReplica, stats.NodeHits[replica3])
	assert.Equal(t, uint64(workers*perWorker), stats.NodeHits[master])
	assert.Equal(t, uint64(0), stats.Failovers)
}

func TestWithMasterLeavesParentPreference(t *testing.T) {
	script := newNodeScript()
	client := newTestClient(t, script, Replica)

	_ = client.WithMaster()
	assert.Equal(t, Replica, client.ReadPreference())
}

func TestOnMaster(t *testing.T) {
	script := newNodeScript()
	script.respond(master, http.StatusOK, `{"status":"healthy"}`)

	client := newTestClient(t, script, Replica)
	err := client.OnMaster(func(pinned *Client) error {
		_, err := pinned.HealthCheck(context.Background())
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{master}, script.order())

	wantErr := errors.New("boom")
	err = client.OnMaster(func(*Client) error { return wantErr })
	assert.Equal(t, wantErr, err)
}

func TestCloseSharedLifecycle(t *testing.T) {
	script := newNodeScript()
	client := newTestClient(t, script, Master)
	pinned := client.WithMaster()

	require.False(t, client.ClosedNow())
	require.NoError(t, pinned.Close())
	assert.True(t, client.ClosedNow())
	assert.True(t, pinned.ClosedNow())

	_, err := client.HealthCheck(context.Background())
	var cerr ClientError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, uint32(ErrClientClosed), cerr.Code)

	err = client.Close()
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, uint32(ErrClientClosed), cerr.Code)
}

func TestStatsSnapshotIsDetached(t *testing.T) {
	script := newNodeScript()
	script.respond(master, http.StatusOK, `{"status":"healthy"}`)

	client := newTestClient(t, script, Master)
	_, err := client.HealthCheck(context.Background())
	require.NoError(t, err)

	snapshot := client.Stats()
	snapshot.NodeHits[master] = 1000

	assert.Equal(t, uint64(1), client.Stats().NodeHits[master])
}

// clusterNode is one fake Vectorizer node behind a real HTTP listener.
type clusterNode struct {
	role string
	srv  *httptest.Server

	mu       sync.Mutex
	requests []string
	auth     string
}

func newClusterNode(role string) *clusterNode {
	node := &clusterNode{role: role}
	node.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		node.mu.Lock()
		node.requests = append(node.requests, r.Method+" "+r.URL.Path)
		node.auth = r.Header.Get("Authorization")
		node.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/health":
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "healthy",
				"version": node.role,
			})
		case "/collections":
			if r.Method == http.MethodPost {
				var col Collection
				json.NewDecoder(r.Body).Decode(&col)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"name":      col.Name,
					"dimension": col.Dimension,
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"collections": []map[string]interface{}{{"name": node.role}},
			})
		case "/batch_delete":
			// Same contract as the service: the id list must arrive
			// under "ids".
			var payload map[string]interface{}
			json.NewDecoder(r.Body).Decode(&payload)
			ids, ok := payload["ids"].([]interface{})
			if !ok {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"error":"ids is required"}`)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success":               true,
				"operation":             "delete",
				"total_operations":      len(ids),
				"successful_operations": len(ids),
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, `{"error":"no route %s"}`, r.URL.Path)
		}
	}))
	return node
}

func (n *clusterNode) seen() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.requests...)
}

func (n *clusterNode) lastAuth() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.auth
}

func TestClientAgainstHTTPCluster(t *testing.T) {
	masterNode := newClusterNode("master")
	defer masterNode.srv.Close()
	replicaNode1 := newClusterNode("replica-1")
	defer replicaNode1.srv.Close()
	replicaNode2 := newClusterNode("replica-2")
	defer replicaNode2.srv.Close()

	client, err := New(Opts{
		Topology: Topology{
			Master:   masterNode.srv.URL,
			Replicas: []string{replicaNode1.srv.URL, replicaNode2.srv.URL},
		},
		ReadPreference: Replica,
		APIKey:         "secret-key",
		Timeout:        5 * time.Second,
	})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()

	// Reads rotate over the replicas.
	status, err := client.HealthCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, "replica-1", status.Version)

	status, err = client.HealthCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, "replica-2", status.Version)

	// Writes land on the master, never on a replica.
	_, err = client.CreateCollection(ctx, Collection{Name: "docs", Dimension: 512})
	require.NoError(t, err)
	assert.Contains(t, masterNode.seen(), "POST /collections")
	for _, node := range []*clusterNode{replicaNode1, replicaNode2} {
		for _, line := range node.seen() {
			assert.NotEqual(t, "POST /collections", line)
		}
	}

	// The API key travels with every request.
	assert.Equal(t, "Bearer secret-key", masterNode.lastAuth())
	assert.Equal(t, "Bearer secret-key", replicaNode1.lastAuth())

	// A master-pinned view reads fresh data from the master.
	status, err = client.WithMaster().HealthCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, "master", status.Version)

	// An HTTP error is surfaced as an Error, not retried elsewhere.
	_, err = client.GetSummary(ctx, "missing")
	var apiErr Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.NotFound())
}

func TestClientFailsOverToLiveReplica(t *testing.T) {
	masterNode := newClusterNode("master")
	defer masterNode.srv.Close()
	deadNode := newClusterNode("replica-1")
	deadNode.srv.Close()
	liveNode := newClusterNode("replica-2")
	defer liveNode.srv.Close()

	client, err := New(Opts{
		Topology: Topology{
			Master:   masterNode.srv.URL,
			Replicas: []string{deadNode.srv.URL, liveNode.srv.URL},
		},
		ReadPreference: Replica,
		Timeout:        5 * time.Second,
	})
	require.NoError(t, err)
	defer client.Close()

	status, err := client.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "replica-2", status.Version)

	stats := client.Stats()
	assert.Equal(t, uint64(1), stats.Failovers)
	assert.Equal(t, uint64(1), stats.NodeHits[deadNode.srv.URL])
	assert.Equal(t, uint64(1), stats.NodeHits[liveNode.srv.URL])
}

func TestBatchDeleteAgainstHTTPCluster(t *testing.T) {
	node := newClusterNode("master")
	defer node.srv.Close()

	client, err := New(Opts{Addr: node.srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	defer client.Close()

	res, err := client.BatchDeleteVectors(context.Background(), "docs", []string{"a", "b"}, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.TotalOperations)
	assert.Contains(t, node.seen(), "POST /batch_delete")
}

func TestConnect(t *testing.T) {
	node := newClusterNode("master")
	defer node.srv.Close()

	client, err := Connect(context.Background(), Opts{Addr: node.srv.URL})
	require.NoError(t, err)
	defer client.Close()

	assert.Contains(t, node.seen(), "GET /health")
}

func TestConnectFailsWhenMasterIsDown(t *testing.T) {
	node := newClusterNode("master")
	node.srv.Close()

	_, err := Connect(context.Background(), Opts{
		Addr:    node.srv.URL,
		Timeout: time.Second,
	})
	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
}

func TestWaitReadyRecovers(t *testing.T) {
	var calls uint32
	transport := transportFunc(func(_ context.Context, _ string, req *Request) (*Response, error) {
		if atomic.AddUint32(&calls, 1) < 3 {
			return nil, ClientError{Code: ErrConnectionFailed, Msg: "connection failed"}
		}
		return &Response{StatusCode: http.StatusOK, Body: []byte(`{"status":"healthy"}`)}, nil
	})

	client, err := New(Opts{Addr: master, Transport: transport})
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, client.WaitReady(ctx))
	assert.Equal(t, uint32(3), atomic.LoadUint32(&calls))
}

func TestWaitReadyStopsOnNodeAnswer(t *testing.T) {
	var calls uint32
	transport := transportFunc(func(context.Context, string, *Request) (*Response, error) {
		atomic.AddUint32(&calls, 1)
		return &Response{StatusCode: http.StatusServiceUnavailable, Body: []byte(`{"error":"booting"}`)}, nil
	})

	client, err := New(Opts{Addr: master, Transport: transport})
	require.NoError(t, err)
	defer client.Close()

	err = client.WaitReady(context.Background())
	var apiErr Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, uint32(1), atomic.LoadUint32(&calls))
}

func TestWaitReadyHonorsContext(t *testing.T) {
	transport := transportFunc(func(context.Context, string, *Request) (*Response, error) {
		return nil, ClientError{Code: ErrConnectionFailed, Msg: "connection failed"}
	})

	client, err := New(Opts{Addr: master, Transport: transport})
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = client.WaitReady(ctx)
	require.Error(t, err)
}
