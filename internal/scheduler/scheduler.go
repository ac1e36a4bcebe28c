package scheduler

import (
	"fmt"

	"github.com/vk/sc2ta/internal/model"
	"github.com/vk/sc2ta/internal/uppaal"
)

// TemplateName is the preferred name of the fixed-order coordinator.
const TemplateName = "Scheduler"

// StepOrder returns the order in which the instances of a flat composite
// are stepped: its execution order when declared, else declaration order.
func StepOrder(c *model.Composite) []string {
	if len(c.Execution) > 0 {
		return append([]string(nil), c.Execution...)
	}
	out := make([]string, 0, len(c.Instances))
	for _, inst := range c.Instances {
		out = append(out, inst.Name)
	}
	return out
}

// FixedScheduler generates a coordinator that steps every component once
// per round in a fixed order.
type FixedScheduler struct {
	order    []string
	channels map[string]string
}

func (s *FixedScheduler) Policy() Policy { return Fixed }

func (s *FixedScheduler) SelfStabilizing() bool { return false }

// Bind declares one binary step channel per component template.
func (s *FixedScheduler) Bind(net *uppaal.Network, names *uppaal.Namer, order []string) error {
	if s.channels != nil {
		return fmt.Errorf("scheduler is already bound")
	}
	s.order = append([]string(nil), order...)
	s.channels = make(map[string]string, len(order))
	for _, t := range order {
		if _, dup := s.channels[t]; dup {
			return fmt.Errorf("template %q appears twice in the step order", t)
		}
		ch := names.Unique("step_" + t)
		net.AddChannel(ch, uppaal.StepChannel, false)
		s.channels[t] = ch
	}
	return nil
}

func (s *FixedScheduler) StepSync(template string) string {
	ch, ok := s.channels[template]
	if !ok {
		return ""
	}
	return ch + "?"
}

// Encode adds the coordinator: Ready steps the first component while
// clearing the stability flag, each urgent wait Wi steps the next one and
// the last wait closes the round.
func (s *FixedScheduler) Encode(net *uppaal.Network, names *uppaal.Namer) error {
	if s.channels == nil {
		return fmt.Errorf("scheduler is not bound")
	}
	if len(s.order) == 0 {
		return nil
	}

	for _, t := range s.order {
		if net.Template(t) == nil {
			return fmt.Errorf("step order names unknown template %q", t)
		}
	}

	tmpl := uppaal.NewTemplate(names.Unique(TemplateName), uppaal.SchedulerTemplate)
	ready := tmpl.AddLocation("Ready", uppaal.Normal)
	prev := ready
	for i, t := range s.order {
		wait := tmpl.AddLocation(fmt.Sprintf("W%d", i+1), uppaal.Urgent)
		e := tmpl.AddEdge(prev, wait)
		e.Sync = s.channels[t] + "!"
		if prev == ready {
			e.Update = uppaal.StableFlag + " = false"
		}
		prev = wait
	}
	tmpl.AddEdge(prev, ready).Update = uppaal.StableFlag + " = true"

	net.AddTemplate(tmpl)
	return nil
}

// RandomScheduler adds nothing to the network; the model checker's
// interleaving picks the order.
type RandomScheduler struct{}

func (s *RandomScheduler) Policy() Policy { return Random }

func (s *RandomScheduler) SelfStabilizing() bool { return true }

func (s *RandomScheduler) Bind(*uppaal.Network, *uppaal.Namer, []string) error { return nil }

func (s *RandomScheduler) StepSync(string) string { return "" }

func (s *RandomScheduler) Encode(*uppaal.Network, *uppaal.Namer) error { return nil }
