// Package relation is a small typed relation graph over arena ids.
//
// A relation is a directed edge host -> target tagged with a Kind. Tree kinds
// (AxisUp) allow a single target per host, which makes the target the
// host's parent; the package rejects edges that would close a cycle.
// Symmetric kinds (Adjacency) store both directions and allow any number of
// neighbours.
//
// Traversals take a visitor returning a Control signal. Continue descends
// into the visited node's successors, Close stops that branch while the
// traversal carries on elsewhere.
package relation
