// Package transform maps a flat composite of statecharts onto a network of
// timed-automata templates and records the correspondence in a trace.
//
// # Component templates
//
// Every atomic instance becomes one template. Leaf states become stable
// (normal) locations and composite states become committed entry
// locations with an edge to their initial child, so states and locations
// correspond one to one.
//
// A run-to-completion step is one edge leaving a stable location. For each
// stable location the applicable transitions (its own and its ancestors',
// inner first, then by descending priority, then in declaration order) are
// turned into step edges whose guards say "this transition is enabled and
// no earlier one is". A step assigns variables, consumes every latched
// input and, when the transition raises signals, walks a chain of
// committed locations that broadcast each raised signal before landing on
// the target.
//
// Inputs are latched: every stable location has a receive loop per bound
// input channel that sets the input's flag. Flags are consumed by the next
// step, enabled or not.
//
// # Scheduling
//
// How steps are triggered is delegated to the scheduler package; see
// scheduler.Scheduler.
package transform
