package uppaal

import (
	"fmt"
	"strings"
)

// TemplateKind tells what a template was generated for.
type TemplateKind int

const (
	ComponentTemplate TemplateKind = iota
	SchedulerTemplate
	EnvironmentTemplate
)

func (k TemplateKind) String() string {
	switch k {
	case ComponentTemplate:
		return "component"
	case SchedulerTemplate:
		return "scheduler"
	case EnvironmentTemplate:
		return "environment"
	default:
		return fmt.Sprintf("TemplateKind(%d)", int(k))
	}
}

// ParseTemplateKind is the inverse of TemplateKind.String.
func ParseTemplateKind(s string) (TemplateKind, error) {
	switch s {
	case "component":
		return ComponentTemplate, nil
	case "scheduler":
		return SchedulerTemplate, nil
	case "environment":
		return EnvironmentTemplate, nil
	default:
		return 0, fmt.Errorf("unknown template kind %q", s)
	}
}

// LocationKind is the urgency class of a location.
type LocationKind int

const (
	Normal LocationKind = iota
	Urgent
	Committed
)

func (k LocationKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Urgent:
		return "urgent"
	case Committed:
		return "committed"
	default:
		return fmt.Sprintf("LocationKind(%d)", int(k))
	}
}

// ParseLocationKind is the inverse of LocationKind.String.
func ParseLocationKind(s string) (LocationKind, error) {
	switch s {
	case "normal":
		return Normal, nil
	case "urgent":
		return Urgent, nil
	case "committed":
		return Committed, nil
	default:
		return 0, fmt.Errorf("unknown location kind %q", s)
	}
}

// Location is a node of a template.
type Location struct {
	Name      string
	Kind      LocationKind
	Invariant string
}

// Edge is a labelled transition between two locations of a template.
type Edge struct {
	ID     string
	Source *Location
	Target *Location
	Select string
	Guard  string
	Sync   string
	Update string
}

// Template is one automaton of the network.
type Template struct {
	Name         string
	Kind         TemplateKind
	Declarations []string
	Locations    []*Location
	Init         *Location
	Edges        []*Edge

	nextEdge int
}

// NewTemplate creates an empty template.
func NewTemplate(name string, kind TemplateKind) *Template {
	return &Template{Name: name, Kind: kind}
}

// Declare appends a local declaration statement.
func (t *Template) Declare(decl string) {
	t.Declarations = append(t.Declarations, decl)
}

// LocalDeclarations renders the local declaration section.
func (t *Template) LocalDeclarations() string {
	return strings.Join(t.Declarations, "\n")
}

// AddLocation adds a location. The first location added becomes the
// initial one unless Init is set explicitly.
func (t *Template) AddLocation(name string, kind LocationKind) *Location {
	if t.Location(name) != nil {
		panic(fmt.Sprintf("uppaal: location %q added twice to template %q", name, t.Name))
	}
	l := &Location{Name: name, Kind: kind}
	t.Locations = append(t.Locations, l)
	if t.Init == nil {
		t.Init = l
	}
	return l
}

// Location returns the location with the given name, or nil.
func (t *Template) Location(name string) *Location {
	for _, l := range t.Locations {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// AddEdge adds an edge between two locations of the template and assigns
// it a template-unique ID.
func (t *Template) AddEdge(source, target *Location) *Edge {
	var id string
	for {
		t.nextEdge++
		id = fmt.Sprintf("e%d", t.nextEdge)
		if t.Edge(id) == nil {
			break
		}
	}
	e := &Edge{ID: id, Source: source, Target: target}
	t.Edges = append(t.Edges, e)
	return e
}

// AppendEdge adds an edge that already carries an ID, as read back from a
// persisted network.
func (t *Template) AppendEdge(e *Edge) {
	t.Edges = append(t.Edges, e)
}

// Edge returns the edge with the given ID, or nil.
func (t *Template) Edge(id string) *Edge {
	for _, e := range t.Edges {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// EdgesFrom returns the edges leaving l in insertion order.
func (t *Template) EdgesFrom(l *Location) []*Edge {
	var out []*Edge
	for _, e := range t.Edges {
		if e.Source == l {
			out = append(out, e)
		}
	}
	return out
}

// RemoveEdges drops every edge in the set, keeping the order of the rest.
func (t *Template) RemoveEdges(set map[*Edge]bool) {
	kept := t.Edges[:0]
	for _, e := range t.Edges {
		if !set[e] {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(t.Edges); i++ {
		t.Edges[i] = nil
	}
	t.Edges = kept
}
