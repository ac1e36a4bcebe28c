// Package unfold flattens a composite hierarchy into a single composite
// whose instances are exactly the atomic statecharts of the tree.
//
// Bindings that crossed one or more composite boundaries are recomposed by
// substitution through a topology.Graph so that every output is bound
// directly to the atomic (or top-level port) inputs it reaches.
//
// Unfolding is a pure rewrite: the input package is never modified and
// identical input always yields identical names and ordering.
package unfold
