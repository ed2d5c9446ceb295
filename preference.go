package vectorizer

import "fmt"

/*
Default routing target for each operation kind:

	  Kind    Target
	---------- ----------------------------
	| Write   | master, always            |
	| Read    | decided by ReadPreference |
*/
type ReadPreference uint32

const (
	// Master routes reads to the master node.
	Master ReadPreference = iota
	// Replica distributes reads across the replica list in round-robin
	// order. With no replicas configured it degrades to the master.
	Replica
	// Nearest is an alias for Replica selection: the client performs no
	// latency probing, so the nearest node cannot be told apart from the
	// next replica in the ring.
	Nearest
)

func (p ReadPreference) String() string {
	switch p {
	case Master:
		return "master"
	case Replica:
		return "replica"
	case Nearest:
		return "nearest"
	}
	return fmt.Sprintf("ReadPreference(%d)", uint32(p))
}

// ParseReadPreference converts a configuration string to a ReadPreference.
func ParseReadPreference(s string) (ReadPreference, error) {
	switch s {
	case "master":
		return Master, nil
	case "replica":
		return Replica, nil
	case "nearest":
		return Nearest, nil
	}
	return Master, fmt.Errorf("unknown read preference %q", s)
}

// UnmarshalYAML lets ReadPreference appear in YAML configuration files as
// one of "master", "replica" or "nearest".
func (p *ReadPreference) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseReadPreference(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
