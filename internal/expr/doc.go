// Package expr parses and analyzes the small expression language used in
// statechart transitions: triggers (`port.signal`, `after(ms)`), guards and
// assignment values. Expressions are written in HCL expression syntax and
// parsed with hclsyntax; this package decides which syntax forms the
// timed-automata target can express and renders those forms in the
// target's C-like syntax.
package expr
