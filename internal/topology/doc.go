// Package topology holds the signal-flow graph the unfolder builds while it
// walks a composite hierarchy.
//
// Nodes are signal endpoints keyed by their absolute address in the
// hierarchy, e.g. `main.prior.control.toggle` for an instance endpoint or
// `control.toggle` for a port of the top composite. Edges point from the
// producing endpoint to the consuming one and are kept in insertion order.
//
// A port of a nested composite is reached twice: once from the parent,
// where it is an instance endpoint, and once from inside, where it is the
// composite's own port. Both resolve to the same address, so the node
// joins the two levels. Such nodes are marked virtual: they carry no
// automaton of their own and Resolve looks through them to the real
// endpoints they lead to.
//
// The graph is write-once-read-many. It is safe for concurrent use.
package topology
