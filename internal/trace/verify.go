package trace

import (
	"fmt"
	"strings"
)

// Resolver answers whether target elements exist in a generated network.
type Resolver interface {
	HasLocation(template, name string) bool
	HasEdge(template, id string) bool
	HasChannel(name string) bool
}

// Verify checks that every target of every entry exists in the network, so
// that no lookup can return a dangling reference.
func (t *Trace) Verify(r Resolver) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var errs []string
	for _, e := range t.entries {
		for _, target := range e.Targets {
			var ok bool
			switch e.Kind {
			case KindState:
				ok = r.HasLocation(target.Scope, target.Element)
			case KindTransition:
				ok = r.HasEdge(target.Scope, target.Element)
			case KindSignal:
				ok = r.HasChannel(target.Element)
			}
			if !ok {
				errs = append(errs, fmt.Sprintf("%s %s: target %s does not exist", e.Kind, e.Source, target))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("trace verification failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
