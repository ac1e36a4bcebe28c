package validate

import (
	"fmt"
	"strings"

	"github.com/vk/sc2ta/internal/model"
)

func (c *checker) checkComposite(comp *model.Component) {
	name := comp.Name
	cs := comp.Composite

	if len(cs.Instances) == 0 {
		c.report(name, "", "composite has no instances")
	}

	seen := make(map[string]bool)
	for _, inst := range cs.Instances {
		el := fmt.Sprintf("instance %q", inst.Name)
		if seen[inst.Name] {
			c.report(name, el, "instance name is used more than once")
			continue
		}
		seen[inst.Name] = true
		switch {
		case inst.Component == nil:
			c.report(name, el, "instance has no component")
		case c.onStack[inst.Component]:
			c.report(name, el, "component %q contains itself", inst.Component.Name)
		}
	}

	c.checkExecution(comp)

	sources := make(map[string][]string)
	var inputs []string
	for _, conn := range cs.Connections {
		el := fmt.Sprintf("connection %s", conn)
		if problem := c.endpointProblem(comp, conn.From, true); problem != "" {
			c.report(name, el, "%s", problem)
			continue
		}
		if problem := c.endpointProblem(comp, conn.To, false); problem != "" {
			c.report(name, el, "%s", problem)
			continue
		}
		if !conn.From.IsOwn() && conn.From.Instance == conn.To.Instance {
			c.report(name, el, "instance %q is bound to itself", conn.From.Instance)
			continue
		}
		key := conn.To.String()
		if _, ok := sources[key]; !ok {
			inputs = append(inputs, key)
		}
		sources[key] = append(sources[key], conn.From.String())
	}
	for _, input := range inputs {
		if from := sources[input]; len(from) > 1 {
			c.report(name, fmt.Sprintf("input %s", input), "bound from more than one source: %s", strings.Join(from, ", "))
		}
	}
}

// endpointProblem describes what is wrong with one side of a connection.
// A source must produce the signal: an output of an instance or an input
// of the composite's own port. A sink is the reverse.
func (c *checker) endpointProblem(comp *model.Component, ep model.Endpoint, source bool) string {
	var port *model.Port
	if ep.IsOwn() {
		port = comp.Port(ep.Port)
		if port == nil {
			return fmt.Sprintf("composite has no port %q", ep.Port)
		}
	} else {
		inst := comp.Composite.Instance(ep.Instance)
		if inst == nil {
			return fmt.Sprintf("unknown instance %q", ep.Instance)
		}
		if inst.Component == nil {
			return fmt.Sprintf("instance %q has no component", ep.Instance)
		}
		port = inst.Component.Port(ep.Port)
		if port == nil {
			return fmt.Sprintf("component %q has no port %q", inst.Component.Name, ep.Port)
		}
	}

	dir, ok := port.Direction(ep.Signal)
	if !ok {
		return fmt.Sprintf("port %q has no signal %q", ep.Port, ep.Signal)
	}
	want := model.DirOut
	if ep.IsOwn() == source {
		want = model.DirIn
	}
	if dir != want {
		role := "sink"
		if source {
			role = "source"
		}
		return fmt.Sprintf("%s cannot be a %s: signal %q flows %s", ep, role, ep.Signal, dir)
	}
	return ""
}

func (c *checker) checkExecution(comp *model.Component) {
	order := comp.Composite.Execution
	if len(order) == 0 {
		return
	}
	listed := make(map[string]bool)
	for _, name := range order {
		switch {
		case comp.Composite.Instance(name) == nil:
			c.report(comp.Name, "execution", "unknown instance %q", name)
		case listed[name]:
			c.report(comp.Name, "execution", "instance %q is listed more than once", name)
		}
		listed[name] = true
	}
	for _, inst := range comp.Composite.Instances {
		if !listed[inst.Name] {
			c.report(comp.Name, "execution", "instance %q is missing", inst.Name)
		}
	}
}
