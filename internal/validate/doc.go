// Package validate checks that a component graph only uses constructs the
// timed-automata encoding can express and that its structure is sound.
//
// CheckModel is a pure function of its input. It never stops at the first
// problem: every violation is collected so a user can fix a model in one
// pass.
package validate
