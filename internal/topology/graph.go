package topology

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vk/sc2ta/internal/nodeid"
)

// Node is one signal endpoint of the hierarchy.
type Node struct {
	ID nodeid.Address
	// Virtual marks a port of a nested composite.
	Virtual bool
}

// Graph is an ordered directed graph of endpoints.
type Graph struct {
	mu    sync.RWMutex
	order []*Node
	nodes map[string]*Node
	succ  map[string][]nodeid.Address
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		succ:  make(map[string][]nodeid.Address),
	}
}

// AddNode registers an endpoint. Adding the same address twice is
// idempotent as long as both calls agree on whether it is virtual.
func (g *Graph) AddNode(id nodeid.Address, virtual bool) (*Node, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := id.String()
	if n, exists := g.nodes[key]; exists {
		if n.Virtual != virtual {
			return nil, fmt.Errorf("endpoint '%s' is registered as both virtual and real", key)
		}
		return n, nil
	}
	n := &Node{ID: id, Virtual: virtual}
	g.nodes[key] = n
	g.order = append(g.order, n)
	return n, nil
}

// AddEdge links a producing endpoint to a consuming one. Both must already
// exist. A repeated edge is ignored.
func (g *Graph) AddEdge(from, to nodeid.Address) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	fromKey, toKey := from.String(), to.String()
	if _, exists := g.nodes[fromKey]; !exists {
		return fmt.Errorf("edge source '%s' not found in topology", fromKey)
	}
	if _, exists := g.nodes[toKey]; !exists {
		return fmt.Errorf("edge target '%s' not found in topology", toKey)
	}
	for _, s := range g.succ[fromKey] {
		if s.Equal(to) {
			return nil
		}
	}
	g.succ[fromKey] = append(g.succ[fromKey], to)
	return nil
}

// Node returns the node registered at id.
func (g *Graph) Node(id nodeid.Address) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id.String()]
	return n, ok
}

// Nodes returns every node in registration order.
func (g *Graph) Nodes() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]*Node(nil), g.order...)
}

// Successors returns the direct successors of id in insertion order.
func (g *Graph) Successors(id nodeid.Address) ([]nodeid.Address, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	key := id.String()
	if _, exists := g.nodes[key]; !exists {
		return nil, fmt.Errorf("node '%s' not found in topology", key)
	}
	return append([]nodeid.Address(nil), g.succ[key]...), nil
}

// Resolve returns the real endpoints reachable from id through virtual
// nodes only, depth-first in edge insertion order and without duplicates.
// A cycle of virtual nodes is an error.
func (g *Graph) Resolve(id nodeid.Address) ([]nodeid.Address, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, exists := g.nodes[id.String()]; !exists {
		return nil, fmt.Errorf("node '%s' not found in topology", id)
	}

	var (
		out     []nodeid.Address
		seen    = make(map[string]bool)
		onStack = make(map[string]bool)
		stack   []string
	)
	var visit func(nodeid.Address) error
	visit = func(cur nodeid.Address) error {
		key := cur.String()
		onStack[key] = true
		stack = append(stack, key)
		defer func() {
			onStack[key] = false
			stack = stack[:len(stack)-1]
		}()

		for _, next := range g.succ[key] {
			nextKey := next.String()
			if !g.nodes[nextKey].Virtual {
				if !seen[nextKey] {
					seen[nextKey] = true
					out = append(out, next)
				}
				continue
			}
			if onStack[nextKey] {
				return fmt.Errorf("binding cycle: %s -> %s", strings.Join(stack, " -> "), nextKey)
			}
			if err := visit(next); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(id); err != nil {
		return nil, err
	}
	return out, nil
}
