package validate

import (
	"fmt"

	"github.com/vk/sc2ta/internal/expr"
	"github.com/vk/sc2ta/internal/model"
	"github.com/vk/sc2ta/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// chartScope is what the checks of one statechart look names up in.
type chartScope struct {
	comp      *model.Component
	hierarchy *model.Hierarchy
	variables map[string]*model.Variable
}

func (c *checker) checkStatechart(comp *model.Component) {
	sc := comp.Statechart
	s := &chartScope{
		comp:      comp,
		hierarchy: model.NewHierarchy(sc),
		variables: make(map[string]*model.Variable),
	}

	for _, v := range sc.Variables {
		if _, dup := s.variables[v.Name]; dup {
			c.report(comp.Name, fmt.Sprintf("variable %q", v.Name), "variable is declared more than once")
			continue
		}
		s.variables[v.Name] = v
		c.checkVariable(comp.Name, v)
	}

	switch len(sc.Regions) {
	case 0:
		c.report(comp.Name, "", "statechart has no region")
	case 1:
	default:
		c.report(comp.Name, "", "orthogonal regions are not supported (%d top-level regions)", len(sc.Regions))
	}
	c.checkRegions(comp.Name, sc.Regions)

	seen := make(map[string]bool)
	for _, st := range s.hierarchy.States() {
		if seen[st.Name] {
			c.report(comp.Name, fmt.Sprintf("state %q", st.Name), "state name is used more than once")
		}
		seen[st.Name] = true
		if len(st.Regions) > 1 {
			c.report(comp.Name, fmt.Sprintf("state %q", st.Name), "orthogonal regions are not supported (%d regions)", len(st.Regions))
		}
	}

	names := make(map[string]bool)
	for _, t := range sc.Transitions {
		el := fmt.Sprintf("transition %q", t.Name)
		if names[t.Name] {
			c.report(comp.Name, el, "transition name is used more than once")
		}
		names[t.Name] = true
		c.checkTransition(s, el, t)
	}
}

func (c *checker) checkVariable(component string, v *model.Variable) {
	el := fmt.Sprintf("variable %q", v.Name)
	switch v.Type {
	case model.TypeInteger:
		switch {
		case v.Initial.IsNull():
		case !v.Initial.Type().Equals(cty.Number):
			c.report(component, el, "initial value of type %s is not an integer", v.Initial.Type().FriendlyName())
		case !v.Initial.AsBigFloat().IsInt():
			c.report(component, el, "non-integer number %s", v.Initial.AsBigFloat().Text('g', -1))
		case !expr.InIntDomain(v.Initial):
			c.report(component, el, "initial value %s outside [%d, %d]", v.Initial.AsBigFloat().Text('f', 0), expr.IntMin, expr.IntMax)
		}
	case model.TypeBoolean:
		if !v.Initial.IsNull() && !v.Initial.Type().Equals(cty.Bool) {
			c.report(component, el, "initial value of type %s is not a boolean", v.Initial.Type().FriendlyName())
		}
	default:
		c.report(component, el, "unsupported variable type %q", v.Type)
	}
}

func (c *checker) checkRegions(component string, regions []*model.Region) {
	for _, r := range regions {
		el := fmt.Sprintf("region %q", r.Name)
		if r.History != "" {
			c.report(component, el, "%s history is not supported", r.History)
		}
		switch {
		case r.Initial == "":
			c.report(component, el, "region has no initial state")
		case model.RegionInitial(r) == nil:
			c.report(component, el, "initial state %q is not a state of the region", r.Initial)
		}
		for _, st := range r.States {
			c.checkRegions(component, st.Regions)
		}
	}
}

func (c *checker) checkTransition(s *chartScope, el string, t *model.Transition) {
	name := s.comp.Name
	source := s.hierarchy.State(t.Source)
	if source == nil {
		c.report(name, el, "unknown source state %q", t.Source)
	} else if source.Final {
		c.report(name, el, "transition leaves final state %q", t.Source)
	}
	if s.hierarchy.State(t.Target) == nil {
		c.report(name, el, "unknown target state %q", t.Target)
	}

	trigger, err := expr.ParseTrigger(t.Trigger)
	if err != nil {
		c.report(name, el, "%s", err)
	} else {
		switch trigger.Kind {
		case expr.TriggerSignal:
			if problem := signalProblem(s.comp, trigger.Port, trigger.Signal, model.DirIn); problem != "" {
				c.report(name, el, "trigger %s", problem)
			}
		case expr.TriggerTimeout:
			if !expr.InTimeoutDomain(trigger.Millis) {
				c.report(name, el, "time constant %d outside [%d, %d]", trigger.Millis, expr.TimeoutMin, expr.TimeoutMax)
			}
			if source != nil && source.IsComposite() {
				c.report(name, el, "after() on composite state %q is not supported", source.Name)
			}
		}
	}

	if t.Guard != "" {
		c.checkExpression(s, el+" guard", t.Guard)
	}

	for _, raw := range t.Raise {
		addr, err := nodeid.ParseN(raw, 2)
		if err != nil {
			c.report(name, el, "raise %q: %s", raw, err)
			continue
		}
		if problem := signalProblem(s.comp, addr.Path[0], addr.Path[1], model.DirOut); problem != "" {
			c.report(name, el, "raise %s", problem)
		}
	}

	for _, a := range t.Assign {
		if _, ok := s.variables[a.Variable]; !ok {
			c.report(name, el, "assignment to unknown variable %q", a.Variable)
			continue
		}
		c.checkExpression(s, fmt.Sprintf("%s assignment to %q", el, a.Variable), a.Value)
	}
}

// signalProblem describes why port.signal cannot be used in the wanted
// direction, or returns "".
func signalProblem(comp *model.Component, port, signal string, want model.Direction) string {
	p := comp.Port(port)
	if p == nil {
		return fmt.Sprintf("%s.%s: unknown port %q", port, signal, port)
	}
	dir, ok := p.Direction(signal)
	if !ok {
		return fmt.Sprintf("%s.%s: port %q has no signal %q", port, signal, port, signal)
	}
	if dir != want {
		return fmt.Sprintf("%s.%s: signal flows %s", port, signal, dir)
	}
	return ""
}

// checkExpression reports a parse failure, then every unsupported form,
// then every unknown variable of a guard or assigned value.
func (c *checker) checkExpression(s *chartScope, el, src string) {
	e, err := expr.Parse(src)
	if err != nil {
		c.report(s.comp.Name, el, "%s", err)
		return
	}
	forms := expr.Unsupported(e)
	for _, problem := range forms {
		c.report(s.comp.Name, el, "unsupported %s", problem)
	}
	if len(forms) > 0 {
		return
	}
	for _, ref := range expr.References(e) {
		if _, ok := s.variables[ref]; !ok {
			c.report(s.comp.Name, el, "unknown variable %q", ref)
		}
	}
}
