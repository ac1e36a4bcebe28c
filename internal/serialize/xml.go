package serialize

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/vk/sc2ta/internal/uppaal"
)

const doctype = `<!DOCTYPE nta PUBLIC '-//Uppaal Team//DTD Flat System 1.1//EN' 'http://www.it.uu.se/research/group/darts/uppaal/flat-1_2.dtd'>`

type ntaXML struct {
	XMLName     xml.Name      `xml:"nta"`
	Declaration string        `xml:"declaration"`
	Templates   []templateXML `xml:"template"`
	System      string        `xml:"system"`
}

type templateXML struct {
	Name        string          `xml:"name"`
	Declaration string          `xml:"declaration,omitempty"`
	Locations   []locationXML   `xml:"location"`
	Init        *refXML         `xml:"init"`
	Transitions []transitionXML `xml:"transition"`
}

type locationXML struct {
	ID        string    `xml:"id,attr"`
	Name      string    `xml:"name"`
	Label     *labelXML `xml:"label"`
	Urgent    *struct{} `xml:"urgent"`
	Committed *struct{} `xml:"committed"`
}

type refXML struct {
	Ref string `xml:"ref,attr"`
}

type labelXML struct {
	Kind  string `xml:"kind,attr"`
	Value string `xml:",chardata"`
}

type transitionXML struct {
	Source refXML     `xml:"source"`
	Target refXML     `xml:"target"`
	Labels []labelXML `xml:"label"`
}

// EncodeXML renders net as an UPPAAL flat system document. Location ids
// are assigned in template order, so equal networks give equal bytes.
func EncodeXML(net *uppaal.Network) ([]byte, error) {
	doc := ntaXML{
		Declaration: net.GlobalDeclarations(),
		System:      net.SystemDeclaration(),
	}

	next := 0
	for _, t := range net.Templates {
		ids := make(map[*uppaal.Location]string, len(t.Locations))
		tx := templateXML{Name: t.Name, Declaration: t.LocalDeclarations()}

		for _, l := range t.Locations {
			id := fmt.Sprintf("id%d", next)
			next++
			ids[l] = id

			lx := locationXML{ID: id, Name: l.Name}
			if l.Invariant != "" {
				lx.Label = &labelXML{Kind: "invariant", Value: l.Invariant}
			}
			switch l.Kind {
			case uppaal.Urgent:
				lx.Urgent = &struct{}{}
			case uppaal.Committed:
				lx.Committed = &struct{}{}
			}
			tx.Locations = append(tx.Locations, lx)
		}

		if t.Init != nil {
			id, ok := ids[t.Init]
			if !ok {
				return nil, fmt.Errorf("template %q: initial location %q is not part of the template", t.Name, t.Init.Name)
			}
			tx.Init = &refXML{Ref: id}
		}

		for _, e := range t.Edges {
			src, ok1 := ids[e.Source]
			dst, ok2 := ids[e.Target]
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("template %q: edge %q connects locations outside the template", t.Name, e.ID)
			}
			tx.Transitions = append(tx.Transitions, transitionXML{
				Source: refXML{Ref: src},
				Target: refXML{Ref: dst},
				Labels: edgeLabels(e),
			})
		}
		doc.Templates = append(doc.Templates, tx)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(doctype + "\n")
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding network: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func edgeLabels(e *uppaal.Edge) []labelXML {
	var out []labelXML
	for _, l := range []labelXML{
		{Kind: "select", Value: e.Select},
		{Kind: "guard", Value: e.Guard},
		{Kind: "synchronisation", Value: e.Sync},
		{Kind: "assignment", Value: e.Update},
	} {
		if l.Value != "" {
			out = append(out, l)
		}
	}
	return out
}
