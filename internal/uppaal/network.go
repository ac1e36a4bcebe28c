package uppaal

import (
	"fmt"
	"strings"
)

// ChannelKind tells where a channel came from.
type ChannelKind int

const (
	// SignalChannel carries a bound signal between components.
	SignalChannel ChannelKind = iota
	// StepChannel is owned by the scheduler and triggers a component step.
	StepChannel
)

func (k ChannelKind) String() string {
	switch k {
	case SignalChannel:
		return "signal"
	case StepChannel:
		return "step"
	default:
		return fmt.Sprintf("ChannelKind(%d)", int(k))
	}
}

// ParseChannelKind is the inverse of ChannelKind.String.
func ParseChannelKind(s string) (ChannelKind, error) {
	switch s {
	case "signal":
		return SignalChannel, nil
	case "step":
		return StepChannel, nil
	default:
		return 0, fmt.Errorf("unknown channel kind %q", s)
	}
}

// Channel is a global synchronisation channel.
type Channel struct {
	Name      string
	Kind      ChannelKind
	Broadcast bool
}

// Declaration returns the channel's declaration statement.
func (c *Channel) Declaration() string {
	if c.Broadcast {
		return "broadcast chan " + c.Name + ";"
	}
	return "chan " + c.Name + ";"
}

// Network is a complete system of templates.
type Network struct {
	Declarations []string
	Channels     []*Channel
	Templates    []*Template
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{}
}

// Declare appends a global declaration statement.
func (n *Network) Declare(decl string) {
	n.Declarations = append(n.Declarations, decl)
}

// AddChannel declares a new global channel.
func (n *Network) AddChannel(name string, kind ChannelKind, broadcast bool) *Channel {
	if n.Channel(name) != nil {
		panic(fmt.Sprintf("uppaal: channel %q declared twice", name))
	}
	c := &Channel{Name: name, Kind: kind, Broadcast: broadcast}
	n.Channels = append(n.Channels, c)
	return c
}

// Channel returns the channel with the given name, or nil.
func (n *Network) Channel(name string) *Channel {
	for _, c := range n.Channels {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChannelsOfKind returns the channels of one kind in declaration order.
func (n *Network) ChannelsOfKind(kind ChannelKind) []*Channel {
	var out []*Channel
	for _, c := range n.Channels {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// AddTemplate appends a template to the system.
func (n *Network) AddTemplate(t *Template) {
	if n.Template(t.Name) != nil {
		panic(fmt.Sprintf("uppaal: template %q added twice", t.Name))
	}
	n.Templates = append(n.Templates, t)
}

// Template returns the template with the given name, or nil.
func (n *Network) Template(name string) *Template {
	for _, t := range n.Templates {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// TemplatesOfKind returns the templates of one kind in system order.
func (n *Network) TemplatesOfKind(kind TemplateKind) []*Template {
	var out []*Template
	for _, t := range n.Templates {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// HasLocation reports whether the named template has the named location.
func (n *Network) HasLocation(template, name string) bool {
	t := n.Template(template)
	return t != nil && t.Location(name) != nil
}

// HasEdge reports whether the named template has an edge with the given ID.
func (n *Network) HasEdge(template, id string) bool {
	t := n.Template(template)
	return t != nil && t.Edge(id) != nil
}

// HasChannel reports whether a channel with the given name is declared.
func (n *Network) HasChannel(name string) bool {
	return n.Channel(name) != nil
}

// GlobalDeclarations renders the global declaration section: variable
// declarations followed by channel declarations.
func (n *Network) GlobalDeclarations() string {
	lines := make([]string, 0, len(n.Declarations)+len(n.Channels))
	lines = append(lines, n.Declarations...)
	for _, c := range n.Channels {
		lines = append(lines, c.Declaration())
	}
	return strings.Join(lines, "\n")
}

// SystemDeclaration renders the system line instantiating every template.
func (n *Network) SystemDeclaration() string {
	names := make([]string, 0, len(n.Templates))
	for _, t := range n.Templates {
		names = append(names, t.Name)
	}
	return "system " + strings.Join(names, ", ") + ";"
}

// StableLocations pairs a component template with its stable locations.
type StableLocations struct {
	Template  *Template
	Locations []*Location
}
