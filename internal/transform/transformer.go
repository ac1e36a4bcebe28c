package transform

import (
	"context"
	"fmt"

	"github.com/vk/sc2ta/internal/ctxlog"
	"github.com/vk/sc2ta/internal/model"
	"github.com/vk/sc2ta/internal/scheduler"
	"github.com/vk/sc2ta/internal/trace"
	"github.com/vk/sc2ta/internal/uppaal"
)

// EnvironmentName is the preferred name of the template that raises the
// top composite's input signals.
const EnvironmentName = "Environment"

// envPrefix stands for the top composite's own ports in channel names.
const envPrefix = "env"

// Transformer builds automata networks from flat composites.
type Transformer struct {
	policy scheduler.Policy
	index  []uppaal.StableLocations
}

// New creates a Transformer for the given scheduling policy.
func New(policy scheduler.Policy) *Transformer {
	return &Transformer{policy: policy}
}

// TemplateLocations returns, for every component template of the last
// successful Execute, the template and its stable locations.
func (t *Transformer) TemplateLocations() []uppaal.StableLocations {
	return append([]uppaal.StableLocations(nil), t.index...)
}

// run holds the state of one Execute call.
type run struct {
	top       *model.Component
	net       *uppaal.Network
	names     *uppaal.Namer
	trace     *trace.Trace
	sched     scheduler.Scheduler
	templates map[string]string
	// outputs and inputs map an endpoint to the channels bound to it.
	outputs map[string][]string
	inputs  map[string][]string
	envSend []string
	pinned  map[*uppaal.Edge]bool
	index   []uppaal.StableLocations
}

// Execute transforms the flat composite top. It performs no I/O.
func (t *Transformer) Execute(ctx context.Context, top *model.Component) (*uppaal.Network, *trace.Trace, error) {
	logger := ctxlog.FromContext(ctx).With("component", top.Name, "scheduler", t.policy)
	logger.Debug("Transformation started.")

	if top.Kind != model.KindComposite || top.Composite == nil {
		return nil, nil, fmt.Errorf("component %q is not a composite", top.Name)
	}

	r := &run{
		top:       top,
		net:       uppaal.NewNetwork(),
		names:     uppaal.NewNamer(),
		trace:     trace.New(),
		sched:     scheduler.New(t.policy),
		templates: make(map[string]string),
		outputs:   make(map[string][]string),
		inputs:    make(map[string][]string),
		pinned:    make(map[*uppaal.Edge]bool),
	}
	r.names.Reserve(uppaal.StableFlag)
	r.net.Declare("bool " + uppaal.StableFlag + " = true;")

	for _, inst := range top.Composite.Instances {
		if inst.Component == nil || !inst.Component.IsAtomic() {
			return nil, nil, fmt.Errorf("instance %q is not atomic; unfold the model first", inst.Name)
		}
		r.templates[inst.Name] = r.names.Unique(inst.Name)
	}

	if err := r.declareChannels(); err != nil {
		return nil, nil, err
	}

	order := scheduler.StepOrder(top.Composite)
	stepOrder := make([]string, 0, len(order))
	for _, name := range order {
		tmpl, ok := r.templates[name]
		if !ok {
			return nil, nil, fmt.Errorf("execution order names unknown instance %q", name)
		}
		stepOrder = append(stepOrder, tmpl)
	}
	if err := r.sched.Bind(r.net, r.names, stepOrder); err != nil {
		return nil, nil, err
	}

	for _, inst := range top.Composite.Instances {
		if err := r.buildComponent(inst); err != nil {
			return nil, nil, fmt.Errorf("instance %q: %w", inst.Name, err)
		}
	}
	r.buildEnvironment()

	if err := r.sched.Encode(r.net, r.names); err != nil {
		return nil, nil, err
	}

	removed := uppaal.ReduceEdges(r.net, func(e *uppaal.Edge) bool { return r.pinned[e] })
	r.trace.Seal()
	if err := r.trace.Verify(r.net); err != nil {
		return nil, nil, err
	}

	t.index = r.index
	logger.Debug("Transformation complete.",
		"templates", len(r.net.Templates),
		"channels", len(r.net.Channels),
		"traceEntries", len(r.trace.Entries()),
		"reducedEdges", removed)
	return r.net, r.trace, nil
}

// endpointKey identifies an endpoint of the top composite. Own ports are
// prefixed so they cannot clash with an instance named like a port.
func endpointKey(ep model.Endpoint) string {
	if ep.IsOwn() {
		return envPrefix + ":" + ep.String()
	}
	return ep.String()
}

// declareChannels allocates one broadcast channel per binding and records
// it in the trace.
func (r *run) declareChannels() error {
	for _, conn := range r.top.Composite.Connections {
		from, to := envPrefix, envPrefix
		if !conn.From.IsOwn() {
			from = conn.From.Instance
		}
		if !conn.To.IsOwn() {
			to = conn.To.Instance
		}
		name := r.names.Unique(fmt.Sprintf("%s_%s_%s_%s", from, conn.From.Signal, to, conn.To.Signal))
		r.net.AddChannel(name, uppaal.SignalChannel, true)

		source := trace.Ref{Scope: r.top.Name, Element: conn.String()}
		if err := r.trace.Add(trace.KindSignal, source, trace.Ref{Element: name}); err != nil {
			return err
		}

		fromKey, toKey := endpointKey(conn.From), endpointKey(conn.To)
		r.outputs[fromKey] = append(r.outputs[fromKey], name)
		r.inputs[toKey] = append(r.inputs[toKey], name)
		if conn.From.IsOwn() {
			r.envSend = append(r.envSend, name)
		}
	}
	return nil
}

// buildEnvironment adds a template that may raise every bound input of the
// top composite whenever the system is stable.
func (r *run) buildEnvironment() {
	if len(r.envSend) == 0 {
		return
	}
	tmpl := uppaal.NewTemplate(r.names.Unique(EnvironmentName), uppaal.EnvironmentTemplate)
	idle := tmpl.AddLocation("Idle", uppaal.Normal)
	for _, ch := range r.envSend {
		e := tmpl.AddEdge(idle, idle)
		e.Guard = uppaal.StableFlag
		e.Sync = ch + "!"
	}
	r.net.AddTemplate(tmpl)
}
