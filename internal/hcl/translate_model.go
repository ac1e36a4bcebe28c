// This file contains the logic for translating HCL schema structs into the
// format-agnostic model defined in the model package.

package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/sc2ta/internal/ctxlog"
	"github.com/vk/sc2ta/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// translator accumulates every problem found so that a broken model file is
// reported in one pass.
type translator struct {
	errs       []string
	interfaces map[string]*model.Interface
	components map[string]*model.Component
}

func (t *translator) errorf(format string, args ...any) {
	t.errs = append(t.errs, fmt.Sprintf(format, args...))
}

func (t *translator) err() error {
	if len(t.errs) == 0 {
		return nil
	}
	return fmt.Errorf("model translation failed:\n- %s", strings.Join(t.errs, "\n- "))
}

// translatePackage converts the HCL package schema into the agnostic model,
// resolving interface and component references by name.
func translatePackage(ctx context.Context, p *Package) (*model.Package, error) {
	logger := ctxlog.FromContext(ctx).With("package", p.Name)
	logger.Debug("Translating HCL package to internal model.")

	t := &translator{
		interfaces: make(map[string]*model.Interface),
		components: make(map[string]*model.Component),
	}
	pkg := &model.Package{Name: p.Name}

	for _, in := range p.Interfaces {
		if _, dup := t.interfaces[in.Name]; dup {
			t.errorf("interface %q is declared more than once", in.Name)
			continue
		}
		iface := t.translateInterface(in)
		t.interfaces[in.Name] = iface
		pkg.Interfaces = append(pkg.Interfaces, iface)
	}

	// Register every component first so instances may refer to components
	// declared later in the file.
	for _, sc := range p.Statecharts {
		pkg.Components = t.register(pkg.Components, sc.Name, model.KindStatechart)
	}
	for _, c := range p.Composites {
		pkg.Components = t.register(pkg.Components, c.Name, model.KindComposite)
	}

	for _, sc := range p.Statecharts {
		if c := t.components[sc.Name]; c != nil && c.Kind == model.KindStatechart && c.Statechart == nil {
			t.translateStatechart(c, sc)
		}
	}
	for _, cs := range p.Composites {
		if c := t.components[cs.Name]; c != nil && c.Kind == model.KindComposite && c.Composite == nil {
			t.translateComposite(c, cs)
		}
	}

	if err := t.err(); err != nil {
		return nil, err
	}
	logger.Debug("Package translated.", "interfaces", len(pkg.Interfaces), "components", len(pkg.Components))
	return pkg, nil
}

func (t *translator) register(list []*model.Component, name string, kind model.Kind) []*model.Component {
	if _, dup := t.components[name]; dup {
		t.errorf("component %q is declared more than once", name)
		return list
	}
	c := &model.Component{Name: name, Kind: kind}
	t.components[name] = c
	return append(list, c)
}

func (t *translator) translateInterface(in *Interface) *model.Interface {
	iface := &model.Interface{Name: in.Name}
	for _, s := range in.Signals {
		dir := model.Direction(s.Direction)
		if dir != model.DirIn && dir != model.DirOut {
			t.errorf("interface %q: signal %q: direction must be \"in\" or \"out\", got %q", in.Name, s.Name, s.Direction)
			continue
		}
		iface.Signals = append(iface.Signals, &model.Signal{Name: s.Name, Direction: dir})
	}
	return iface
}

func (t *translator) translatePorts(owner string, ports []*Port) []*model.Port {
	var out []*model.Port
	for _, p := range ports {
		iface, ok := t.interfaces[p.Interface]
		if !ok {
			t.errorf("component %q: port %q: unknown interface %q", owner, p.Name, p.Interface)
			continue
		}
		realization := model.Realization(p.Realization)
		switch realization {
		case "":
			realization = model.Provided
		case model.Provided, model.Required:
		default:
			t.errorf("component %q: port %q: realization must be \"provided\" or \"required\", got %q", owner, p.Name, p.Realization)
			continue
		}
		out = append(out, &model.Port{Name: p.Name, Interface: iface, Realization: realization})
	}
	return out
}

func (t *translator) translateStatechart(c *model.Component, s *Statechart) {
	c.Ports = t.translatePorts(s.Name, s.Ports)
	sc := &model.Statechart{Regions: translateRegions(s.Regions)}

	for _, v := range s.Variables {
		variable, err := translateVariable(v)
		if err != nil {
			t.errorf("statechart %q: %s", s.Name, err)
			continue
		}
		sc.Variables = append(sc.Variables, variable)
	}

	for i, tr := range s.Transitions {
		name := tr.Name
		if name == "" {
			name = fmt.Sprintf("T%d", i+1)
		}
		sc.Transitions = append(sc.Transitions, &model.Transition{
			Name:     name,
			Source:   tr.Source,
			Target:   tr.Target,
			Trigger:  tr.Trigger,
			Guard:    tr.Guard,
			Priority: tr.Priority,
			Raise:    tr.Raise,
			Assign:   t.translateAssignments(s.Name, name, tr.Assign),
		})
	}
	c.Statechart = sc
}

func translateRegions(in []*Region) []*model.Region {
	var out []*model.Region
	for _, r := range in {
		region := &model.Region{Name: r.Name, Initial: r.Initial, History: r.History}
		for _, st := range r.States {
			region.States = append(region.States, &model.State{
				Name:    st.Name,
				Final:   st.Final,
				Regions: translateRegions(st.Regions),
			})
		}
		out = append(out, region)
	}
	return out
}

// translateAssignments reads an `assign` object in source order. The
// target applies the update left to right, so the order is significant.
func (t *translator) translateAssignments(chart, transition string, expr hcl.Expression) []model.Assignment {
	if expr == nil {
		return nil
	}
	obj, ok := expr.(*hclsyntax.ObjectConsExpr)
	if !ok {
		if v, diags := expr.Value(nil); !diags.HasErrors() && v.IsNull() {
			return nil
		}
		t.errorf("statechart %q: transition %q: assign must be an object of variable = \"expression\" pairs", chart, transition)
		return nil
	}

	out := make([]model.Assignment, 0, len(obj.Items))
	for _, item := range obj.Items {
		name := hcl.ExprAsKeyword(item.KeyExpr)
		if name == "" {
			t.errorf("statechart %q: transition %q: assign keys must be variable names", chart, transition)
			continue
		}
		v, diags := item.ValueExpr.Value(nil)
		if diags.HasErrors() || v.IsNull() || !v.Type().Equals(cty.String) {
			t.errorf("statechart %q: transition %q: assign %q must be a quoted expression", chart, transition, name)
			continue
		}
		out = append(out, model.Assignment{Variable: name, Value: v.AsString()})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (t *translator) translateComposite(c *model.Component, s *Composite) {
	c.Ports = t.translatePorts(s.Name, s.Ports)
	comp := &model.Composite{Execution: s.Execution}

	for _, inst := range s.Instances {
		target, ok := t.components[inst.Component]
		if !ok {
			t.errorf("composite %q: instance %q: unknown component %q", s.Name, inst.Name, inst.Component)
			continue
		}
		comp.Instances = append(comp.Instances, &model.Instance{Name: inst.Name, Component: target, Origin: inst.Origin})
	}

	for _, conn := range s.Connections {
		from, err := model.ParseEndpoint(conn.From)
		if err != nil {
			t.errorf("composite %q: connection from %q: %s", s.Name, conn.From, err)
			continue
		}
		to, err := model.ParseEndpoint(conn.To)
		if err != nil {
			t.errorf("composite %q: connection to %q: %s", s.Name, conn.To, err)
			continue
		}
		comp.Connections = append(comp.Connections, &model.Connection{From: from, To: to})
	}
	c.Composite = comp
}
