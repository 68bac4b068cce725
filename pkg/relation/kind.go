package relation

import "fmt"

// ID is an arena index. Callers convert their own typed ids to ID.
type ID uint32

// Kind is the closed set of relation kinds.
type Kind uint8

const (
	// AxisUp links a stem to the stem it grows from. Single target, acyclic.
	AxisUp Kind = iota
	// Adjacency links two constraints that share a particle. Symmetric.
	Adjacency

	kindCount
)

var kindNames = [...]string{
	AxisUp:    "AxisUp",
	Adjacency: "Adjacency",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Symmetric reports whether an edge implies its reverse.
func (k Kind) Symmetric() bool {
	return k == Adjacency
}

// Tree reports whether a host may have at most one target.
func (k Kind) Tree() bool {
	return k == AxisUp
}

func (k Kind) valid() bool {
	return k < kindCount
}

// Control is returned by visitors to steer a traversal.
type Control uint8

const (
	// Continue descends into the node's successors.
	Continue Control = iota
	// Close stops descending below the node.
	Close
)
