// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Component, the single polymorphic node of the model, and
// the structures a composite uses to wire its children together.
//
// Component is a tagged union over Kind. Exactly one of Statechart or
// Composite is set, matching the Kind. Code that recurses over the component
// hierarchy switches on Kind and stops at KindStatechart, which has no
// children.
package model

import (
	"fmt"

	"github.com/vk/sc2ta/internal/nodeid"
)

// Kind discriminates the Component variants.
type Kind int

const (
	KindStatechart Kind = iota
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindStatechart:
		return "statechart"
	case KindComposite:
		return "composite"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Component is a node in the source hierarchy.
type Component struct {
	Name       string
	Kind       Kind
	Ports      []*Port
	Statechart *Statechart
	Composite  *Composite
}

// Port returns the port with the given name, or nil.
func (c *Component) Port(name string) *Port {
	for _, p := range c.Ports {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// IsAtomic reports whether the component is a statechart.
func (c *Component) IsAtomic() bool {
	return c.Kind == KindStatechart
}

// Composite holds the children of a composite component and their wiring.
type Composite struct {
	Instances   []*Instance
	Connections []*Connection
	// Execution optionally fixes the order in which instances are stepped by
	// a fixed-order scheduler. Empty means declaration order.
	Execution []string
}

// Instance returns the instance with the given name, or nil.
func (c *Composite) Instance(name string) *Instance {
	for _, i := range c.Instances {
		if i.Name == name {
			return i
		}
	}
	return nil
}

// Instance is a named use of a component inside a composite.
type Instance struct {
	Name      string
	Component *Component
	// Origin is the dot-separated path of this instance in the unflattened
	// hierarchy. It is empty when the path equals Name.
	Origin string
}

// Path returns Origin if set, else Name.
func (i *Instance) Path() string {
	if i.Origin != "" {
		return i.Origin
	}
	return i.Name
}

// Connection binds a signal source to a signal sink.
type Connection struct {
	From Endpoint
	To   Endpoint
}

func (c *Connection) String() string {
	return c.From.String() + " -> " + c.To.String()
}

// Endpoint addresses a signal on a port. An empty Instance refers to a port
// of the composite that owns the connection.
type Endpoint struct {
	Instance string
	Port     string
	Signal   string
}

// IsOwn reports whether the endpoint refers to the owning composite's port.
func (e Endpoint) IsOwn() bool {
	return e.Instance == ""
}

// Address returns the endpoint as a nodeid address.
func (e Endpoint) Address() nodeid.Address {
	if e.IsOwn() {
		return nodeid.New(e.Port, e.Signal)
	}
	return nodeid.New(e.Instance, e.Port, e.Signal)
}

func (e Endpoint) String() string {
	return e.Address().String()
}

// ParseEndpoint parses `instance.port.signal` or `port.signal`.
func ParseEndpoint(raw string) (Endpoint, error) {
	addr, err := nodeid.Parse(raw)
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid endpoint: %w", err)
	}
	switch addr.Len() {
	case 2:
		return Endpoint{Port: addr.Path[0], Signal: addr.Path[1]}, nil
	case 3:
		return Endpoint{Instance: addr.Path[0], Port: addr.Path[1], Signal: addr.Path[2]}, nil
	default:
		return Endpoint{}, fmt.Errorf("invalid endpoint %q: expected instance.port.signal or port.signal", raw)
	}
}
