package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot is the top-level structure of a model file.
type fileRoot struct {
	Packages []*Package `hcl:"package,block"`
}

// Package is the HCL schema of a `package` block.
type Package struct {
	Name        string        `hcl:"name,label"`
	Interfaces  []*Interface  `hcl:"interface,block"`
	Statecharts []*Statechart `hcl:"statechart,block"`
	Composites  []*Composite  `hcl:"composite,block"`
}

type Interface struct {
	Name    string    `hcl:"name,label"`
	Signals []*Signal `hcl:"signal,block"`
}

type Signal struct {
	Name      string `hcl:"name,label"`
	Direction string `hcl:"direction"`
}

type Port struct {
	Name        string `hcl:"name,label"`
	Interface   string `hcl:"interface"`
	Realization string `hcl:"realization,optional"`
}

type Statechart struct {
	Name        string        `hcl:"name,label"`
	Ports       []*Port       `hcl:"port,block"`
	Variables   []*Variable   `hcl:"variable,block"`
	Regions     []*Region     `hcl:"region,block"`
	Transitions []*Transition `hcl:"transition,block"`
}

// Variable declares its type as a bare keyword, e.g. `type = integer`.
type Variable struct {
	Name    string         `hcl:"name,label"`
	Type    hcl.Expression `hcl:"type"`
	Initial *cty.Value     `hcl:"initial,optional"`
}

type Region struct {
	Name    string   `hcl:"name,label"`
	Initial string   `hcl:"initial,optional"`
	History string   `hcl:"history,optional"`
	States  []*State `hcl:"state,block"`
}

type State struct {
	Name    string    `hcl:"name,label"`
	Final   bool      `hcl:"final,optional"`
	Regions []*Region `hcl:"region,block"`
}

type Transition struct {
	Name     string   `hcl:"name,optional"`
	Source   string   `hcl:"source"`
	Target   string   `hcl:"target"`
	Trigger  string   `hcl:"trigger,optional"`
	Guard    string   `hcl:"guard,optional"`
	Priority int      `hcl:"priority,optional"`
	Raise    []string `hcl:"raise,optional"`

	// Assign is decoded by hand so assignments keep their source order.
	Assign hcl.Expression `hcl:"assign,optional"`
}

type Composite struct {
	Name        string        `hcl:"name,label"`
	Ports       []*Port       `hcl:"port,block"`
	Instances   []*Instance   `hcl:"instance,block"`
	Connections []*Connection `hcl:"connect,block"`
	Execution   []string      `hcl:"execution,optional"`
}

type Instance struct {
	Name      string `hcl:"name,label"`
	Component string `hcl:"component"`
	Origin    string `hcl:"origin,optional"`
}

type Connection struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}
