// Package trace records which target elements of a generated automata
// network were produced from which source elements of the statechart model.
//
// A Trace is append-only while the transformer runs and read-only after it
// is sealed. Lookups work in both directions: from a source element to the
// target elements it produced, and from any target element back to its
// single source. Elements introduced purely by the encoding (scheduler
// locations, receive loops, intermediate committed locations) have no source
// and are not recorded.
package trace
