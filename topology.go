package vectorizer

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrMasterRequired = errors.New("topology: master URL is required")
)

// Topology describes a master/replica deployment: one master node that
// accepts every operation and an ordered list of read-only replicas.
// A Topology is validated and frozen when the Client is created; it is
// never mutated afterwards.
type Topology struct {
	// Master is the URL of the node authorized to accept writes. Required.
	Master string
	// Replicas holds the URLs of read-only nodes in ring order. It may be
	// empty, in which case every operation, read or write, targets Master.
	Replicas []string
}

// SingleNode reports whether the topology degrades to one node.
func (t Topology) SingleNode() bool {
	return len(t.Replicas) == 0
}

// normalize validates every URL and returns a canonical copy of the
// topology (scheme required, trailing slashes stripped). The copy owns its
// replica slice so later changes to the caller's slice cannot leak in.
func (t Topology) normalize() (Topology, error) {
	if strings.TrimSpace(t.Master) == "" {
		return Topology{}, ErrMasterRequired
	}

	master, err := normalizeNodeURL(t.Master)
	if err != nil {
		return Topology{}, fmt.Errorf("topology: master: %w", err)
	}

	replicas := make([]string, 0, len(t.Replicas))
	for i, replica := range t.Replicas {
		u, err := normalizeNodeURL(replica)
		if err != nil {
			return Topology{}, fmt.Errorf("topology: replica %d: %w", i, err)
		}
		replicas = append(replicas, u)
	}

	return Topology{Master: master, Replicas: replicas}, nil
}

func normalizeNodeURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q in %q", u.Scheme, raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("no host in %q", raw)
	}
	return u.String(), nil
}
