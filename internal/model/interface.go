// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines interfaces, signals and ports.
//
// A signal's direction is declared from the point of view of the component
// that provides the interface. A port that requires the interface sees every
// direction flipped, so `Port.Direction` is the only place that should be
// asked which way a signal flows through a given port.
package model

// Direction is the flow of a signal relative to the providing component.
type Direction string

const (
	DirIn  Direction = "in"
	DirOut Direction = "out"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == DirIn {
		return DirOut
	}
	return DirIn
}

// Realization is how a port relates to its interface.
type Realization string

const (
	Provided Realization = "provided"
	Required Realization = "required"
)

// Interface is a named group of signals.
type Interface struct {
	Name    string
	Signals []*Signal
}

// Signal returns the signal with the given name, or nil.
func (i *Interface) Signal(name string) *Signal {
	for _, s := range i.Signals {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Signal is a parameterless event declared on an interface.
type Signal struct {
	Name      string
	Direction Direction
}

// Port exposes an interface on a component.
type Port struct {
	Name        string
	Interface   *Interface
	Realization Realization
}

// Direction returns the effective direction of the named signal on this
// port. The second result is false when the interface has no such signal.
func (p *Port) Direction(signal string) (Direction, bool) {
	if p.Interface == nil {
		return "", false
	}
	s := p.Interface.Signal(signal)
	if s == nil {
		return "", false
	}
	if p.Realization == Required {
		return s.Direction.Flip(), true
	}
	return s.Direction, true
}

// Signals returns the names of the port's signals flowing in the given
// effective direction, in interface declaration order.
func (p *Port) Signals(dir Direction) []string {
	if p.Interface == nil {
		return nil
	}
	var out []string
	for _, s := range p.Interface.Signals {
		if d, _ := p.Direction(s.Name); d == dir {
			out = append(out, s.Name)
		}
	}
	return out
}
