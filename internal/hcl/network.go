package hcl

import (
	"context"
	"fmt"

	"github.com/vk/sc2ta/internal/ctxlog"
	"github.com/vk/sc2ta/internal/fsutil"
	"github.com/vk/sc2ta/internal/uppaal"
)

type networkFile struct {
	Network *networkBlock `hcl:"network,block"`
}

type networkBlock struct {
	Declarations []string         `hcl:"declarations"`
	Channels     []*channelBlock  `hcl:"channel,block"`
	Templates    []*templateBlock `hcl:"template,block"`
}

type channelBlock struct {
	Name      string `hcl:"name,label"`
	Kind      string `hcl:"kind"`
	Broadcast bool   `hcl:"broadcast"`
}

type templateBlock struct {
	Name         string           `hcl:"name,label"`
	Kind         string           `hcl:"kind"`
	Declarations []string         `hcl:"declarations"`
	Init         string           `hcl:"init"`
	Locations    []*locationBlock `hcl:"location,block"`
	Edges        []*edgeBlock     `hcl:"edge,block"`
}

type locationBlock struct {
	Name      string `hcl:"name,label"`
	Kind      string `hcl:"kind"`
	Invariant string `hcl:"invariant,optional"`
}

type edgeBlock struct {
	ID     string `hcl:"id,label"`
	Source string `hcl:"source"`
	Target string `hcl:"target"`
	Select string `hcl:"select,optional"`
	Guard  string `hcl:"guard,optional"`
	Sync   string `hcl:"sync,optional"`
	Update string `hcl:"update,optional"`
}

// SaveNetwork writes the automata network object graph.
func (s *Store) SaveNetwork(ctx context.Context, path string, net *uppaal.Network) error {
	ctxlog.FromContext(ctx).Debug("Saving network.", "path", path, "templates", len(net.Templates))
	if err := fsutil.WriteFile(path, EncodeNetwork(net), artifactMode); err != nil {
		return fmt.Errorf("failed to save network to %s: %w", path, err)
	}
	return nil
}

// LoadNetwork reads a network written by SaveNetwork.
func (s *Store) LoadNetwork(ctx context.Context, path string) (*uppaal.Network, error) {
	ctxlog.FromContext(ctx).Debug("Loading network.", "path", path)
	var f networkFile
	if err := decodeSchemaFile(path, &f); err != nil {
		return nil, err
	}
	if f.Network == nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path,
			diagError("Missing network block", "A network file must contain a \"network\" block."))
	}
	net, err := decodeNetwork(f.Network)
	if err != nil {
		return nil, fmt.Errorf("invalid network in %s: %w", path, err)
	}
	return net, nil
}

// EncodeNetwork renders a network in the schema LoadNetwork reads.
func EncodeNetwork(net *uppaal.Network) []byte {
	nb := &networkBlock{Declarations: nonNil(net.Declarations)}
	for _, c := range net.Channels {
		nb.Channels = append(nb.Channels, &channelBlock{Name: c.Name, Kind: c.Kind.String(), Broadcast: c.Broadcast})
	}
	for _, t := range net.Templates {
		tb := &templateBlock{Name: t.Name, Kind: t.Kind.String(), Declarations: nonNil(t.Declarations)}
		if t.Init != nil {
			tb.Init = t.Init.Name
		}
		for _, l := range t.Locations {
			tb.Locations = append(tb.Locations, &locationBlock{Name: l.Name, Kind: l.Kind.String(), Invariant: l.Invariant})
		}
		for _, e := range t.Edges {
			tb.Edges = append(tb.Edges, &edgeBlock{
				ID:     e.ID,
				Source: e.Source.Name,
				Target: e.Target.Name,
				Select: e.Select,
				Guard:  e.Guard,
				Sync:   e.Sync,
				Update: e.Update,
			})
		}
		nb.Templates = append(nb.Templates, tb)
	}
	return encodeSchema(&networkFile{Network: nb})
}

func decodeNetwork(nb *networkBlock) (*uppaal.Network, error) {
	net := uppaal.NewNetwork()
	net.Declarations = nb.Declarations

	for _, cb := range nb.Channels {
		kind, err := uppaal.ParseChannelKind(cb.Kind)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", cb.Name, err)
		}
		if net.Channel(cb.Name) != nil {
			return nil, fmt.Errorf("channel %s is declared twice", cb.Name)
		}
		net.AddChannel(cb.Name, kind, cb.Broadcast)
	}

	for _, tb := range nb.Templates {
		kind, err := uppaal.ParseTemplateKind(tb.Kind)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", tb.Name, err)
		}
		if net.Template(tb.Name) != nil {
			return nil, fmt.Errorf("template %s is declared twice", tb.Name)
		}
		t := uppaal.NewTemplate(tb.Name, kind)
		t.Declarations = tb.Declarations

		for _, lb := range tb.Locations {
			lk, err := uppaal.ParseLocationKind(lb.Kind)
			if err != nil {
				return nil, fmt.Errorf("template %s location %s: %w", tb.Name, lb.Name, err)
			}
			if t.Location(lb.Name) != nil {
				return nil, fmt.Errorf("template %s: location %s is declared twice", tb.Name, lb.Name)
			}
			t.AddLocation(lb.Name, lk).Invariant = lb.Invariant
		}
		if t.Init = t.Location(tb.Init); t.Init == nil {
			return nil, fmt.Errorf("template %s: unknown initial location %q", tb.Name, tb.Init)
		}

		for _, eb := range tb.Edges {
			src, dst := t.Location(eb.Source), t.Location(eb.Target)
			if src == nil || dst == nil {
				return nil, fmt.Errorf("template %s edge %s: unknown location", tb.Name, eb.ID)
			}
			if t.Edge(eb.ID) != nil {
				return nil, fmt.Errorf("template %s: edge %s is declared twice", tb.Name, eb.ID)
			}
			t.AppendEdge(&uppaal.Edge{
				ID:     eb.ID,
				Source: src,
				Target: dst,
				Select: eb.Select,
				Guard:  eb.Guard,
				Sync:   eb.Sync,
				Update: eb.Update,
			})
		}
		net.AddTemplate(t)
	}
	return net, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
