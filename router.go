package vectorizer

// router turns an operation into the ordered list of node URLs the failover
// executor may try. It owns the frozen topology and the replica rotation.
//
// Candidate order is the failover order: for replica-routed reads the ring
// comes first and the master is appended as the last resort, so a read only
// lands on the master once every replica has failed.
type router struct {
	topology   Topology
	preference ReadPreference
	replicas   *roundRobinStrategy

	// pinned forces every operation to the master. Pinned routers are
	// private to WithMaster views and never consult the replica rotation,
	// so reads through a view cannot advance the parent's cursor.
	pinned bool
}

func newRouter(topology Topology, preference ReadPreference) *router {
	return &router{
		topology:   topology,
		preference: preference,
		replicas:   newRoundRobinStrategy(topology.Replicas),
	}
}

// pinnedView returns a copy of the router that routes everything to the
// master. The parent router is left untouched.
func (r *router) pinnedView() *router {
	return &router{
		topology:   r.topology,
		preference: r.preference,
		replicas:   r.replicas,
		pinned:     true,
	}
}

// route resolves op to its candidate node URLs. An optional single
// userPreference overrides the router's default for this call only; the
// default is left as is, and the replica cursor advances only when the call
// actually routes to replicas.
func (r *router) route(op Operation, userPreference ...ReadPreference) ([]string, error) {
	if len(userPreference) > 1 {
		return nil, ErrTooManyArgs
	}
	if r.pinned || KindOf(op) == Write {
		return []string{r.topology.Master}, nil
	}

	preference := r.preference
	if len(userPreference) > 0 {
		preference = userPreference[0]
	}
	switch preference {
	case Master:
		return []string{r.topology.Master}, nil
	case Replica, Nearest:
		ring := r.replicas.GetRing()
		if len(ring) == 0 {
			return []string{r.topology.Master}, nil
		}
		return append(ring, r.topology.Master), nil
	default:
		return nil, validationErrorf("unknown read preference %s", preference)
	}
}
