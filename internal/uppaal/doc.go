// Package uppaal models a network of timed-automata templates as accepted by
// the UPPAAL model checker: global declarations and channels, templates with
// locations and edges, and the system line that instantiates them.
//
// The model is built by the transformer and consumed by the serializers. It
// holds labels (guards, synchronisations, updates) as already-rendered text.
package uppaal

// StableFlag is the global boolean that holds while every component rests
// in a stable location. Generated reachability queries are conjoined with it.
const StableFlag = "isStable"
