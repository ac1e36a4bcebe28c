// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file provides deep copies used by stages that build a new graph from
// an existing one.
package model

import "slices"

// CloneInterfaces copies the given interfaces and returns the copies along
// with a mapping from each original to its copy.
func CloneInterfaces(in []*Interface) ([]*Interface, map[*Interface]*Interface) {
	out := make([]*Interface, 0, len(in))
	mapping := make(map[*Interface]*Interface, len(in))
	for _, i := range in {
		cp := &Interface{Name: i.Name}
		for _, s := range i.Signals {
			cp.Signals = append(cp.Signals, &Signal{Name: s.Name, Direction: s.Direction})
		}
		out = append(out, cp)
		mapping[i] = cp
	}
	return out, mapping
}

// ClonePorts copies ports, re-pointing interfaces through the mapping. An
// interface missing from the mapping is kept as is.
func ClonePorts(in []*Port, ifaces map[*Interface]*Interface) []*Port {
	out := make([]*Port, 0, len(in))
	for _, p := range in {
		iface := p.Interface
		if cp, ok := ifaces[iface]; ok {
			iface = cp
		}
		out = append(out, &Port{Name: p.Name, Interface: iface, Realization: p.Realization})
	}
	return out
}

// CloneStatechartComponent deep-copies an atomic component.
func CloneStatechartComponent(c *Component, ifaces map[*Interface]*Interface) *Component {
	return &Component{
		Name:       c.Name,
		Kind:       KindStatechart,
		Ports:      ClonePorts(c.Ports, ifaces),
		Statechart: cloneStatechart(c.Statechart),
	}
}

func cloneStatechart(sc *Statechart) *Statechart {
	if sc == nil {
		return nil
	}
	out := &Statechart{Regions: cloneRegions(sc.Regions)}
	for _, v := range sc.Variables {
		cp := *v
		out.Variables = append(out.Variables, &cp)
	}
	for _, t := range sc.Transitions {
		cp := *t
		cp.Raise = slices.Clone(t.Raise)
		cp.Assign = slices.Clone(t.Assign)
		out.Transitions = append(out.Transitions, &cp)
	}
	return out
}

func cloneRegions(in []*Region) []*Region {
	var out []*Region
	for _, r := range in {
		cp := &Region{Name: r.Name, Initial: r.Initial, History: r.History}
		for _, st := range r.States {
			cp.States = append(cp.States, &State{
				Name:    st.Name,
				Final:   st.Final,
				Regions: cloneRegions(st.Regions),
			})
		}
		out = append(out, cp)
	}
	return out
}
