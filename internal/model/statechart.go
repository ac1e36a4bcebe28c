// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the statechart definition carried by atomic components.
//
// Triggers, guards and assignment values are kept as source text. They are
// parsed on demand by the expr package, which lets the validator report a
// malformed guard as one violation among many instead of failing the load.
package model

import "github.com/zclconf/go-cty/cty"

// VarType is the declared type of a statechart variable.
type VarType string

const (
	TypeInteger VarType = "integer"
	TypeBoolean VarType = "boolean"
)

// Statechart is the behavior of an atomic component.
type Statechart struct {
	Variables   []*Variable
	Regions     []*Region
	Transitions []*Transition
}

// Variable returns the variable with the given name, or nil.
func (s *Statechart) Variable(name string) *Variable {
	for _, v := range s.Variables {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Variable is an internal variable of a statechart.
type Variable struct {
	Name    string
	Type    VarType
	Initial cty.Value
}

// Region is a container of states with one initial state.
type Region struct {
	Name    string
	Initial string
	// History is "", "shallow" or "deep".
	History string
	States  []*State
}

// State is a node of the state hierarchy. A state with regions is a
// composite state.
type State struct {
	Name    string
	Final   bool
	Regions []*Region
}

// IsComposite reports whether the state has nested regions.
func (s *State) IsComposite() bool {
	return len(s.Regions) > 0
}

// Transition connects two states by name.
type Transition struct {
	Name   string
	Source string
	Target string
	// Trigger is "", "<port>.<signal>" or "after(<ms>)".
	Trigger string
	Guard   string
	// Priority orders transitions leaving the same state; higher wins and
	// ties fall back to declaration order.
	Priority int
	// Raise lists "<port>.<signal>" references sent when the transition fires.
	Raise  []string
	Assign []Assignment
}

// Assignment sets a variable to the value of an expression.
type Assignment struct {
	Variable string
	Value    string
}
