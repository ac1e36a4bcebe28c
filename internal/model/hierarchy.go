// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file provides Hierarchy, a read-only index over the state tree of a
// statechart. Transitions refer to states by name, so every stage that
// follows a transition needs the same name lookup and parent links.
package model

// Hierarchy indexes the states of a statechart by name. When a name is
// declared twice the first declaration wins; the validator reports the
// duplicate separately.
type Hierarchy struct {
	order   []*State
	byName  map[string]*State
	parent  map[*State]*State
	regions map[*State]*Region
}

// NewHierarchy walks the statechart in declaration order.
func NewHierarchy(sc *Statechart) *Hierarchy {
	h := &Hierarchy{
		byName:  make(map[string]*State),
		parent:  make(map[*State]*State),
		regions: make(map[*State]*Region),
	}
	var walk func(parent *State, regions []*Region)
	walk = func(parent *State, regions []*Region) {
		for _, r := range regions {
			for _, st := range r.States {
				h.order = append(h.order, st)
				if _, dup := h.byName[st.Name]; !dup {
					h.byName[st.Name] = st
				}
				h.parent[st] = parent
				h.regions[st] = r
				walk(st, st.Regions)
			}
		}
	}
	walk(nil, sc.Regions)
	return h
}

// States returns every state in pre-order.
func (h *Hierarchy) States() []*State {
	return h.order
}

// State returns the state with the given name, or nil.
func (h *Hierarchy) State(name string) *State {
	return h.byName[name]
}

// Parent returns the enclosing state, or nil for top-level states.
func (h *Hierarchy) Parent(st *State) *State {
	return h.parent[st]
}

// Region returns the region that directly contains st.
func (h *Hierarchy) Region(st *State) *Region {
	return h.regions[st]
}

// Ancestors returns st followed by its enclosing states, innermost first.
func (h *Hierarchy) Ancestors(st *State) []*State {
	var out []*State
	for cur := st; cur != nil; cur = h.parent[cur] {
		out = append(out, cur)
	}
	return out
}

// Leaves returns the leaf states under st in pre-order, or st itself when it
// is a leaf.
func (h *Hierarchy) Leaves(st *State) []*State {
	if !st.IsComposite() {
		return []*State{st}
	}
	var out []*State
	for _, r := range st.Regions {
		for _, child := range r.States {
			out = append(out, h.Leaves(child)...)
		}
	}
	return out
}

// InitialChild returns the initial state of the first region of a composite
// state, or nil when it cannot be resolved.
func (h *Hierarchy) InitialChild(st *State) *State {
	if !st.IsComposite() {
		return nil
	}
	return RegionInitial(st.Regions[0])
}

// RegionInitial returns the state named by r.Initial among r's direct
// children, or nil.
func RegionInitial(r *Region) *State {
	for _, st := range r.States {
		if st.Name == r.Initial {
			return st
		}
	}
	return nil
}
