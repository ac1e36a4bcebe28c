package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/sc2ta/internal/expr"
	"github.com/vk/sc2ta/internal/model"
	"github.com/vk/sc2ta/internal/nodeid"
	"github.com/vk/sc2ta/internal/trace"
	"github.com/vk/sc2ta/internal/uppaal"
)

// input is one latched input signal of a component.
type input struct {
	flag     string
	channels []string
}

// componentBuilder builds the template of one atomic instance.
type componentBuilder struct {
	*run
	inst      *model.Instance
	sc        *model.Statechart
	hierarchy *model.Hierarchy
	tmpl      *uppaal.Template
	local     *uppaal.Namer
	variables map[string]string
	flags     map[string]string
	inputs    []*input
	clock     string
	locations map[*model.State]*uppaal.Location
	edges     map[*model.Transition][]trace.Ref
}

func (r *run) buildComponent(inst *model.Instance) error {
	b := &componentBuilder{
		run:       r,
		inst:      inst,
		sc:        inst.Component.Statechart,
		tmpl:      uppaal.NewTemplate(r.templates[inst.Name], uppaal.ComponentTemplate),
		local:     r.names.Fork(),
		variables: make(map[string]string),
		flags:     make(map[string]string),
		locations: make(map[*model.State]*uppaal.Location),
		edges:     make(map[*model.Transition][]trace.Ref),
	}
	if b.sc == nil {
		return fmt.Errorf("component %q has no statechart", inst.Component.Name)
	}
	b.hierarchy = model.NewHierarchy(b.sc)

	if err := b.declare(); err != nil {
		return err
	}
	if err := b.addLocations(); err != nil {
		return err
	}
	if err := b.addStepEdges(); err != nil {
		return err
	}
	if err := b.recordTransitions(); err != nil {
		return err
	}

	r.net.AddTemplate(b.tmpl)
	return nil
}

// declare emits the local declarations: variables, input flags and the
// clock used by timeouts.
func (b *componentBuilder) declare() error {
	for _, v := range b.sc.Variables {
		name := b.local.Unique(v.Name)
		b.variables[v.Name] = name

		var typ, initial string
		switch v.Type {
		case model.TypeInteger:
			typ, initial = "int", "0"
		case model.TypeBoolean:
			typ, initial = "bool", "false"
		default:
			return fmt.Errorf("variable %q: unsupported type %q", v.Name, v.Type)
		}
		if !v.Initial.IsNull() {
			rendered, err := expr.RenderValue(v.Initial)
			if err != nil {
				return fmt.Errorf("variable %q: %w", v.Name, err)
			}
			initial = rendered
		}
		b.tmpl.Declare(fmt.Sprintf("%s %s = %s;", typ, name, initial))
	}

	for _, p := range b.inst.Component.Ports {
		for _, sig := range p.Signals(model.DirIn) {
			ep := model.Endpoint{Instance: b.inst.Name, Port: p.Name, Signal: sig}
			in := &input{
				flag:     b.local.Unique(p.Name + "_" + sig),
				channels: b.run.inputs[endpointKey(ep)],
			}
			b.flags[p.Name+"."+sig] = in.flag
			b.inputs = append(b.inputs, in)
			b.tmpl.Declare(fmt.Sprintf("bool %s = false;", in.flag))
		}
	}

	for _, t := range b.sc.Transitions {
		trig, err := expr.ParseTrigger(t.Trigger)
		if err == nil && trig.Kind == expr.TriggerTimeout {
			b.clock = b.local.Unique("clk")
			b.tmpl.Declare(fmt.Sprintf("clock %s;", b.clock))
			break
		}
	}
	return nil
}

// addLocations maps every state to one location and links composite
// states to their initial child.
func (b *componentBuilder) addLocations() error {
	for _, st := range b.hierarchy.States() {
		kind := uppaal.Normal
		if st.IsComposite() {
			kind = uppaal.Committed
		}
		loc := b.tmpl.AddLocation(b.local.Unique(st.Name), kind)
		b.locations[st] = loc

		source := trace.Ref{Scope: b.inst.Path(), Element: st.Name}
		target := trace.Ref{Scope: b.tmpl.Name, Element: loc.Name}
		if err := b.trace.Add(trace.KindState, source, target); err != nil {
			return err
		}
	}

	if len(b.sc.Regions) == 0 {
		return fmt.Errorf("statechart has no region")
	}
	initial := model.RegionInitial(b.sc.Regions[0])
	if initial == nil {
		return fmt.Errorf("region %q has no resolvable initial state", b.sc.Regions[0].Name)
	}
	b.tmpl.Init = b.locations[initial]

	for _, st := range b.hierarchy.States() {
		if !st.IsComposite() {
			continue
		}
		child := b.hierarchy.InitialChild(st)
		if child == nil {
			return fmt.Errorf("state %q has no resolvable initial state", st.Name)
		}
		e := b.tmpl.AddEdge(b.locations[st], b.locations[child])
		e.Update = b.landingUpdate(child, true)
	}
	return nil
}

// landingUpdate is the update of an edge that arrives at target. Arriving
// at a stable location restarts the clock and, when components maintain
// stability themselves and the edge leaves a committed location, marks the
// system stable again.
func (b *componentBuilder) landingUpdate(target *model.State, fromCommitted bool) string {
	if target.IsComposite() {
		return ""
	}
	var parts []string
	if b.clock != "" {
		parts = append(parts, b.clock+" = 0")
	}
	if fromCommitted && b.sched.SelfStabilizing() {
		parts = append(parts, uppaal.StableFlag+" = true")
	}
	return strings.Join(parts, ", ")
}

// applicable returns the transitions that may fire from a leaf: its own
// and its ancestors', inner states first, then by descending priority,
// then in declaration order.
func (b *componentBuilder) applicable(leaf *model.State) []*model.Transition {
	var out []*model.Transition
	for _, st := range b.hierarchy.Ancestors(leaf) {
		var own []*model.Transition
		for _, t := range b.sc.Transitions {
			if b.hierarchy.State(t.Source) == st {
				own = append(own, t)
			}
		}
		sort.SliceStable(own, func(i, j int) bool { return own[i].Priority > own[j].Priority })
		out = append(out, own...)
	}
	return out
}

// enabled renders the condition under which t may fire. An empty result
// means t is always enabled.
func (b *componentBuilder) enabled(t *model.Transition) (string, error) {
	var parts []string
	trig, err := expr.ParseTrigger(t.Trigger)
	if err != nil {
		return "", err
	}
	switch trig.Kind {
	case expr.TriggerSignal:
		flag, ok := b.flags[trig.Port+"."+trig.Signal]
		if !ok {
			return "", fmt.Errorf("transition %q: trigger %s.%s is not an input", t.Name, trig.Port, trig.Signal)
		}
		parts = append(parts, flag)
	case expr.TriggerTimeout:
		parts = append(parts, fmt.Sprintf("%s >= %d", b.clock, trig.Millis))
	}
	if t.Guard != "" {
		g, err := expr.RenderSource(t.Guard, b.rename)
		if err != nil {
			return "", fmt.Errorf("transition %q: guard: %w", t.Name, err)
		}
		parts = append(parts, g)
	}
	return conjoin(parts...), nil
}

func (b *componentBuilder) rename(name string) string {
	if local, ok := b.variables[name]; ok {
		return local
	}
	return name
}

// conjoin joins conditions with &&, parenthesizing disjunctions.
func conjoin(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if len(parts) > 1 && strings.Contains(p, "||") {
			p = "(" + p + ")"
		}
		out = append(out, p)
	}
	return strings.Join(out, " && ")
}

// addStepEdges emits, for every stable location, one step edge per
// applicable transition, the fallback loop taken when nothing is enabled
// and one receive loop per bound input channel.
func (b *componentBuilder) addStepEdges() error {
	sync := b.sched.StepSync(b.tmpl.Name)
	stable := uppaal.StableLocations{Template: b.tmpl}

	for _, leaf := range b.hierarchy.States() {
		if leaf.IsComposite() {
			continue
		}
		loc := b.locations[leaf]

		var blocked []string
		shadowed := false
		for _, t := range b.applicable(leaf) {
			cond, err := b.enabled(t)
			if err != nil {
				return err
			}
			guard := "false"
			if !shadowed {
				guard = conjoin(append([]string{cond}, blocked...)...)
			}
			if err := b.addStep(leaf, loc, t, guard, sync); err != nil {
				return err
			}
			if cond == "" {
				shadowed = true
			} else {
				blocked = append(blocked, "!("+cond+")")
			}
		}

		if !shadowed {
			b.addIdleLoop(loc, blocked, sync)
		}

		for _, in := range b.inputs {
			for _, ch := range in.channels {
				e := b.tmpl.AddEdge(loc, loc)
				e.Sync = ch + "?"
				e.Update = in.flag + " = true"
			}
		}

		stable.Locations = append(stable.Locations, loc)
	}

	b.index = append(b.index, stable)
	return nil
}

// consumeInputs clears every input flag.
func (b *componentBuilder) consumeInputs() []string {
	out := make([]string, 0, len(b.inputs))
	for _, in := range b.inputs {
		out = append(out, in.flag+" = false")
	}
	return out
}

// addIdleLoop adds the step taken when no transition is enabled. Under a
// coordinator it keeps the step synchronisation total. Without one it only
// exists to consume inputs that enabled nothing.
func (b *componentBuilder) addIdleLoop(loc *uppaal.Location, blocked []string, sync string) {
	guard := conjoin(blocked...)
	if sync == "" {
		if len(b.inputs) == 0 {
			return
		}
		pending := make([]string, 0, len(b.inputs))
		for _, in := range b.inputs {
			pending = append(pending, in.flag)
		}
		guard = conjoin(strings.Join(pending, " || "), guard)
	}
	e := b.tmpl.AddEdge(loc, loc)
	e.Guard = guard
	e.Sync = sync
	e.Update = strings.Join(b.consumeInputs(), ", ")
}

// addStep emits the edges of one transition leaving one stable location.
func (b *componentBuilder) addStep(leaf *model.State, from *uppaal.Location, t *model.Transition, guard, sync string) error {
	target := b.hierarchy.State(t.Target)
	if target == nil {
		return fmt.Errorf("transition %q: unknown target %q", t.Name, t.Target)
	}
	to := b.locations[target]

	var channels []string
	for _, raw := range t.Raise {
		addr, err := nodeid.ParseN(raw, 2)
		if err != nil {
			return fmt.Errorf("transition %q: raise %q: %w", t.Name, raw, err)
		}
		ep := model.Endpoint{Instance: b.inst.Name, Port: addr.Path[0], Signal: addr.Path[1]}
		channels = append(channels, b.run.outputs[endpointKey(ep)]...)
	}

	var update []string
	for _, a := range t.Assign {
		value, err := expr.RenderSource(a.Value, b.rename)
		if err != nil {
			return fmt.Errorf("transition %q: assignment to %q: %w", t.Name, a.Variable, err)
		}
		update = append(update, fmt.Sprintf("%s = %s", b.rename(a.Variable), value))
	}
	update = append(update, b.consumeInputs()...)
	if (len(channels) > 0 || target.IsComposite()) && b.sched.SelfStabilizing() {
		update = append(update, uppaal.StableFlag+" = false")
	}

	next := to
	if len(channels) > 0 {
		next = b.tmpl.AddLocation(b.local.Unique(fmt.Sprintf("%s_%s_1", leaf.Name, t.Name)), uppaal.Committed)
	} else if landing := b.landingUpdate(target, false); landing != "" {
		update = append(update, landing)
	}

	step := b.tmpl.AddEdge(from, next)
	step.Guard = guard
	step.Sync = sync
	step.Update = strings.Join(update, ", ")
	b.trackEdge(t, step)

	for i, ch := range channels {
		cur := next
		if i == len(channels)-1 {
			next = to
		} else {
			next = b.tmpl.AddLocation(b.local.Unique(fmt.Sprintf("%s_%s_%d", leaf.Name, t.Name, i+2)), uppaal.Committed)
		}
		e := b.tmpl.AddEdge(cur, next)
		e.Sync = ch + "!"
		if next == to {
			e.Update = b.landingUpdate(target, true)
		}
		b.trackEdge(t, e)
	}
	return nil
}

func (b *componentBuilder) trackEdge(t *model.Transition, e *uppaal.Edge) {
	b.pinned[e] = true
	b.edges[t] = append(b.edges[t], trace.Ref{Scope: b.tmpl.Name, Element: e.ID})
}

// recordTransitions adds one trace entry per transition, in declaration
// order, listing every edge generated for it.
func (b *componentBuilder) recordTransitions() error {
	for _, t := range b.sc.Transitions {
		source := trace.Ref{Scope: b.inst.Path(), Element: t.Name}
		if err := b.trace.Add(trace.KindTransition, source, b.edges[t]...); err != nil {
			return err
		}
	}
	return nil
}
