package trace

import (
	"errors"
	"fmt"
	"sync"
)

// Kind partitions trace entries by element kind.
type Kind string

const (
	// KindState maps a statechart state to one location.
	KindState Kind = "state"
	// KindTransition maps a transition to the edges that implement it.
	KindTransition Kind = "transition"
	// KindSignal maps a binding between two signals to one channel.
	KindSignal Kind = "signal"
)

// ParseKind validates a persisted kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindState, KindTransition, KindSignal:
		return k, nil
	default:
		return "", fmt.Errorf("unknown trace kind %q", s)
	}
}

// Ref identifies an element. For source refs Scope is the instance path in
// the unflattened model (or the composite name for bindings). For target
// refs Scope is the template name, or empty for global channels.
type Ref struct {
	Scope   string
	Element string
}

func (r Ref) String() string {
	if r.Scope == "" {
		return r.Element
	}
	return r.Scope + "." + r.Element
}

// Entry is one source element and everything generated from it.
type Entry struct {
	Kind    Kind
	Source  Ref
	Targets []Ref
}

// ErrSealed is returned when adding to a sealed trace.
var ErrSealed = errors.New("trace is sealed")

type key struct {
	kind Kind
	ref  Ref
}

// Trace is the record of source and target correspondences.
type Trace struct {
	mu       sync.RWMutex
	entries  []*Entry
	bySource map[key]*Entry
	byTarget map[key]*Entry
	sealed   bool
}

// New creates an empty, unsealed trace.
func New() *Trace {
	return &Trace{
		bySource: make(map[key]*Entry),
		byTarget: make(map[key]*Entry),
	}
}

// Add records that source produced targets. A source may be added once per
// kind, and a target may belong to only one entry of its kind.
func (t *Trace) Add(kind Kind, source Ref, targets ...Ref) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sealed {
		return ErrSealed
	}
	if _, ok := t.bySource[key{kind, source}]; ok {
		return fmt.Errorf("%s %s is already traced", kind, source)
	}
	seen := make(map[Ref]bool, len(targets))
	for _, target := range targets {
		if prev, ok := t.byTarget[key{kind, target}]; ok {
			return fmt.Errorf("target %s is already traced to %s %s", target, kind, prev.Source)
		}
		if seen[target] {
			return fmt.Errorf("target %s listed twice for %s %s", target, kind, source)
		}
		seen[target] = true
	}

	e := &Entry{Kind: kind, Source: source, Targets: append([]Ref(nil), targets...)}
	t.entries = append(t.entries, e)
	t.bySource[key{kind, source}] = e
	for _, target := range targets {
		t.byTarget[key{kind, target}] = e
	}
	return nil
}

// Seal makes the trace read-only.
func (t *Trace) Seal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sealed = true
}

// Sealed reports whether Seal has been called.
func (t *Trace) Sealed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sealed
}

// Entries returns the entries in insertion order.
func (t *Trace) Entries() []*Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]*Entry(nil), t.entries...)
}

// Count returns the number of entries of the given kind.
func (t *Trace) Count(kind Kind) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, e := range t.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Targets returns the targets recorded for a source element.
func (t *Trace) Targets(kind Kind, source Ref) ([]Ref, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.bySource[key{kind, source}]
	if !ok {
		return nil, false
	}
	return append([]Ref(nil), e.Targets...), true
}

// Source returns the source element a target was produced from.
func (t *Trace) Source(kind Kind, target Ref) (Ref, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.byTarget[key{kind, target}]
	if !ok {
		return Ref{}, false
	}
	return e.Source, true
}
