package unfold

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/sc2ta/internal/ctxlog"
	"github.com/vk/sc2ta/internal/model"
	"github.com/vk/sc2ta/internal/nodeid"
	"github.com/vk/sc2ta/internal/topology"
)

// Unfolder flattens composite hierarchies.
type Unfolder struct{}

// New creates an Unfolder.
func New() *Unfolder {
	return &Unfolder{}
}

// leaf is an atomic instance found while walking the hierarchy.
type leaf struct {
	path      nodeid.Address
	origin    []string
	component *model.Component
	name      string
}

// run holds the state of one Unfold call.
type run struct {
	root        *model.Component
	graph       *topology.Graph
	leaves      []*leaf
	byPath      map[string]*leaf
	connections []rawConnection
	ordered     bool
}

// rawConnection is a connection of some level, rewritten to absolute
// endpoint addresses.
type rawConnection struct {
	from, to nodeid.Address
}

// Unfold selects the root composite of pkg and returns a new package
// holding copies of every interface, the reachable statecharts and one
// flat top composite, which is returned as well.
func (u *Unfolder) Unfold(ctx context.Context, pkg *model.Package) (*model.Package, *model.Component, error) {
	logger := ctxlog.FromContext(ctx).With("package", pkg.Name)
	logger.Debug("Unfolding started.")

	root, err := model.SelectRoot(pkg)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Root component selected.", "root", root.Name)

	if err := checkContainment(root); err != nil {
		return nil, nil, err
	}

	r := &run{
		root:   root,
		graph:  topology.New(),
		byPath: make(map[string]*leaf),
	}
	if err := r.walk(root, nodeid.Address{}, nil); err != nil {
		return nil, nil, err
	}
	if len(r.leaves) == 0 {
		return nil, nil, fmt.Errorf("composite %q has no atomic components after unfolding", root.Name)
	}
	r.assignNames()

	out, top, err := r.build(pkg)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("Unfolding complete.",
		"instances", len(top.Composite.Instances),
		"connections", len(top.Composite.Connections),
		"components", len(out.Components))
	return out, top, nil
}

// checkContainment rejects a composite that contains itself at any depth.
func checkContainment(root *model.Component) error {
	onStack := make(map[*model.Component]bool)
	done := make(map[*model.Component]bool)
	var stack []string

	var visit func(c *model.Component) error
	visit = func(c *model.Component) error {
		if done[c] || c.Kind != model.KindComposite || c.Composite == nil {
			return nil
		}
		if onStack[c] {
			return fmt.Errorf("containment cycle: %s -> %s", strings.Join(stack, " -> "), c.Name)
		}
		onStack[c] = true
		stack = append(stack, c.Name)
		for _, inst := range c.Composite.Instances {
			if inst.Component == nil {
				return fmt.Errorf("composite %q: instance %q has no component", c.Name, inst.Name)
			}
			if err := visit(inst.Component); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		onStack[c] = false
		done[c] = true
		return nil
	}
	return visit(root)
}

// walk visits a composite depth-first, recording its atomic leaves and
// adding its connections to the topology. prefix is the composite's own
// instance path and origin the same path in the unflattened model; both
// are empty for the root.
func (r *run) walk(c *model.Component, prefix nodeid.Address, origin []string) error {
	comp := c.Composite
	if len(comp.Execution) > 0 {
		r.ordered = true
	}

	for _, conn := range comp.Connections {
		from, err := r.addEndpoint(c, prefix, conn.From)
		if err != nil {
			return fmt.Errorf("composite %q: connection %s: %w", c.Name, conn, err)
		}
		to, err := r.addEndpoint(c, prefix, conn.To)
		if err != nil {
			return fmt.Errorf("composite %q: connection %s: %w", c.Name, conn, err)
		}
		if err := r.graph.AddEdge(from, to); err != nil {
			return err
		}
		r.connections = append(r.connections, rawConnection{from: from, to: to})
	}

	for _, inst := range comp.Instances {
		path := prefix.Child(inst.Name)
		instOrigin := append(append([]string(nil), origin...), inst.Path())
		if inst.Component.IsAtomic() {
			l := &leaf{path: path, origin: instOrigin, component: inst.Component}
			r.leaves = append(r.leaves, l)
			r.byPath[path.String()] = l
			continue
		}
		if err := r.walk(inst.Component, path, instOrigin); err != nil {
			return err
		}
	}
	return nil
}

// addEndpoint registers the topology node for an endpoint of composite c
// at prefix. Ports of nested composites are virtual.
func (r *run) addEndpoint(c *model.Component, prefix nodeid.Address, ep model.Endpoint) (nodeid.Address, error) {
	addr := prefix.Child(ep.Address().Path...)
	if ep.IsOwn() {
		if !prefix.IsZero() && c.Port(ep.Port) == nil {
			return nodeid.Address{}, fmt.Errorf("unknown port %q", ep.Port)
		}
		_, err := r.graph.AddNode(addr, !prefix.IsZero())
		return addr, err
	}

	inst := c.Composite.Instance(ep.Instance)
	if inst == nil {
		return nodeid.Address{}, fmt.Errorf("unknown instance %q", ep.Instance)
	}
	virtual := !inst.Component.IsAtomic()
	if virtual {
		port := inst.Component.Port(ep.Port)
		if port == nil {
			return nodeid.Address{}, fmt.Errorf("composite instance %q has no port %q", ep.Instance, ep.Port)
		}
		if _, ok := port.Direction(ep.Signal); !ok {
			return nodeid.Address{}, fmt.Errorf("port %q of composite instance %q has no signal %q", ep.Port, ep.Instance, ep.Signal)
		}
	}
	_, err := r.graph.AddNode(addr, virtual)
	return addr, err
}

// assignNames gives every leaf its flat instance name. Top-level atomic
// instances keep their own name; nested ones get their path joined with
// underscores, made unique by a numeric suffix in walk order.
func (r *run) assignNames() {
	taken := make(map[string]bool)
	for _, l := range r.leaves {
		if l.path.Len() == 1 {
			l.name = l.path.Last()
			taken[l.name] = true
		}
	}
	for _, l := range r.leaves {
		if l.name != "" {
			continue
		}
		base := l.path.Join("_")
		name := base
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		l.name = name
		taken[name] = true
	}
}

// flatEndpoint maps a real topology address back to an endpoint of the
// flat composite.
func (r *run) flatEndpoint(addr nodeid.Address) (model.Endpoint, error) {
	if addr.Len() == 2 {
		return model.Endpoint{Port: addr.Path[0], Signal: addr.Path[1]}, nil
	}
	n := addr.Len()
	owner := nodeid.New(addr.Path[:n-2]...)
	l, ok := r.byPath[owner.String()]
	if !ok {
		return model.Endpoint{}, fmt.Errorf("endpoint %s does not belong to an atomic instance", addr)
	}
	return model.Endpoint{Instance: l.name, Port: addr.Path[n-2], Signal: addr.Path[n-1]}, nil
}

// flatConnections composes every binding that starts at a real endpoint
// with the virtual hops that follow it, in declaration order.
func (r *run) flatConnections() ([]*model.Connection, error) {
	var out []*model.Connection
	seen := make(map[string]bool)

	emit := func(from, to nodeid.Address) error {
		key := from.String() + "->" + to.String()
		if seen[key] {
			return nil
		}
		seen[key] = true
		f, err := r.flatEndpoint(from)
		if err != nil {
			return err
		}
		t, err := r.flatEndpoint(to)
		if err != nil {
			return err
		}
		out = append(out, &model.Connection{From: f, To: t})
		return nil
	}

	for _, rc := range r.connections {
		fromNode, _ := r.graph.Node(rc.from)
		if fromNode.Virtual {
			continue
		}
		toNode, _ := r.graph.Node(rc.to)
		if !toNode.Virtual {
			if err := emit(rc.from, rc.to); err != nil {
				return nil, err
			}
			continue
		}
		targets, err := r.graph.Resolve(rc.to)
		if err != nil {
			return nil, err
		}
		for _, target := range targets {
			if err := emit(rc.from, target); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// expandExecution rewrites the execution order of c at prefix into flat
// instance names. A composite without an explicit order contributes its
// instances in declaration order.
func (r *run) expandExecution(c *model.Component, prefix nodeid.Address) ([]string, error) {
	names := c.Composite.Execution
	if len(names) == 0 {
		for _, inst := range c.Composite.Instances {
			names = append(names, inst.Name)
		}
	}

	var out []string
	for _, name := range names {
		inst := c.Composite.Instance(name)
		if inst == nil {
			return nil, fmt.Errorf("composite %q: execution names unknown instance %q", c.Name, name)
		}
		path := prefix.Child(name)
		if inst.Component.IsAtomic() {
			out = append(out, r.byPath[path.String()].name)
			continue
		}
		sub, err := r.expandExecution(inst.Component, path)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

func (r *run) build(pkg *model.Package) (*model.Package, *model.Component, error) {
	ifaces, ifaceMap := model.CloneInterfaces(pkg.Interfaces)
	out := &model.Package{Name: pkg.Name, Interfaces: ifaces}

	used := make(map[*model.Component]bool)
	for _, l := range r.leaves {
		used[l.component] = true
	}
	clones := make(map[*model.Component]*model.Component)
	for _, c := range pkg.Components {
		if used[c] {
			cp := model.CloneStatechartComponent(c, ifaceMap)
			clones[c] = cp
			out.Components = append(out.Components, cp)
		}
	}

	flat := &model.Composite{}
	for _, l := range r.leaves {
		inst := &model.Instance{Name: l.name, Component: clones[l.component]}
		if origin := strings.Join(l.origin, "."); origin != l.name {
			inst.Origin = origin
		}
		flat.Instances = append(flat.Instances, inst)
	}

	conns, err := r.flatConnections()
	if err != nil {
		return nil, nil, err
	}
	flat.Connections = conns

	if r.ordered {
		order, err := r.expandExecution(r.root, nodeid.Address{})
		if err != nil {
			return nil, nil, err
		}
		flat.Execution = order
	}

	top := &model.Component{
		Name:      r.root.Name,
		Kind:      model.KindComposite,
		Ports:     model.ClonePorts(r.root.Ports, ifaceMap),
		Composite: flat,
	}
	out.Components = append(out.Components, top)
	return out, top, nil
}
