// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Package, the root container of a model.
package model

// Package holds everything declared in one model file. Components are kept
// in declaration order; stages that iterate over them rely on that order
// for deterministic output.
type Package struct {
	Name       string
	Interfaces []*Interface
	Components []*Component
	FSInfo     *FSInfo
}

// Interface returns the interface with the given name, or nil.
func (p *Package) Interface(name string) *Interface {
	for _, i := range p.Interfaces {
		if i.Name == name {
			return i
		}
	}
	return nil
}

// Component returns the component with the given name, or nil.
func (p *Package) Component(name string) *Component {
	for _, c := range p.Components {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Composites returns the composite components in declaration order.
func (p *Package) Composites() []*Component {
	var out []*Component
	for _, c := range p.Components {
		if c.Kind == KindComposite {
			out = append(out, c)
		}
	}
	return out
}
