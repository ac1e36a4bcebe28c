package validate

import (
	"context"
	"fmt"

	"github.com/vk/sc2ta/internal/ctxlog"
	"github.com/vk/sc2ta/internal/model"
)

// Validator checks component graphs.
type Validator struct{}

// New creates a Validator.
func New() *Validator {
	return &Validator{}
}

// checker accumulates the violations of one CheckModel call.
type checker struct {
	violations []Violation
	visited    map[*model.Component]bool
	onStack    map[*model.Component]bool
}

func (c *checker) report(component, element, format string, args ...any) {
	c.violations = append(c.violations, Violation{
		Component: component,
		Element:   element,
		Message:   fmt.Sprintf(format, args...),
	})
}

// CheckModel walks every component reachable from top exactly once and
// returns a *ValidationError listing all violations, or nil.
func (v *Validator) CheckModel(ctx context.Context, top *model.Component) error {
	logger := ctxlog.FromContext(ctx).With("component", top.Name)
	logger.Debug("Model validation started.")

	c := &checker{
		visited: make(map[*model.Component]bool),
		onStack: make(map[*model.Component]bool),
	}
	c.visit(top)

	if len(c.violations) > 0 {
		logger.Debug("Model validation failed.", "violations", len(c.violations))
		return &ValidationError{Violations: c.violations}
	}
	logger.Debug("Model validation passed.", "components", len(c.visited))
	return nil
}

func (c *checker) visit(comp *model.Component) {
	if c.visited[comp] {
		return
	}
	c.visited[comp] = true

	switch comp.Kind {
	case model.KindStatechart:
		if comp.Statechart == nil {
			c.report(comp.Name, "", "statechart has no definition")
			return
		}
		c.checkStatechart(comp)
	case model.KindComposite:
		if comp.Composite == nil {
			c.report(comp.Name, "", "composite has no definition")
			return
		}
		c.onStack[comp] = true
		c.checkComposite(comp)
		for _, inst := range comp.Composite.Instances {
			if inst.Component != nil && !c.onStack[inst.Component] {
				c.visit(inst.Component)
			}
		}
		c.onStack[comp] = false
	}
}
