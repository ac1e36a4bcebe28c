package uppaal

// ReduceEdges removes duplicate edges from every template of the network.
// Two edges are duplicates when they connect the same locations with the
// same labels. The first edge of a duplicate group is kept. Edges for which
// pinned returns true are never removed. It returns the number of removed
// edges.
func ReduceEdges(n *Network, pinned func(*Edge) bool) int {
	removed := 0
	for _, t := range n.Templates {
		removed += reduceEdgesInTemplate(t, pinned)
	}
	return removed
}

type locationPair struct {
	source, target *Location
}

func reduceEdgesInTemplate(t *Template, pinned func(*Edge) bool) int {
	lookup := make(map[locationPair][]*Edge)
	var order []locationPair
	for _, e := range t.Edges {
		key := locationPair{e.Source, e.Target}
		if _, ok := lookup[key]; !ok {
			order = append(order, key)
		}
		lookup[key] = append(lookup[key], e)
	}

	removalSet := make(map[*Edge]bool)
	for _, key := range order {
		edges := lookup[key]
		for i, e1 := range edges {
			if removalSet[e1] {
				continue
			}
			for _, e2 := range edges[i+1:] {
				if pinned != nil && pinned(e2) {
					continue
				}
				if e1.Select == e2.Select &&
					e1.Guard == e2.Guard &&
					e1.Sync == e2.Sync &&
					e1.Update == e2.Update {
					removalSet[e2] = true
				}
			}
		}
	}
	if len(removalSet) > 0 {
		t.RemoveEdges(removalSet)
	}
	return len(removalSet)
}
