// Package serialize writes an automata network in the model checker's XML
// interchange format and derives the reachability queries that accompany it.
//
// Both writers are pure: they return bytes and leave file handling to the
// caller.
package serialize
