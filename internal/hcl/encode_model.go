package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/sc2ta/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// EncodeModel renders a package in the same schema Load reads. Optional
// attributes holding their zero value are omitted.
func EncodeModel(pkg *model.Package) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body().AppendNewBlock("package", []string{pkg.Name}).Body()

	for _, iface := range pkg.Interfaces {
		ib := body.AppendNewBlock("interface", []string{iface.Name}).Body()
		for _, s := range iface.Signals {
			ib.AppendNewBlock("signal", []string{s.Name}).Body().
				SetAttributeValue("direction", cty.StringVal(string(s.Direction)))
		}
	}

	for _, c := range pkg.Components {
		if c.Kind != model.KindStatechart {
			continue
		}
		body.AppendNewline()
		encodeStatechart(body.AppendNewBlock("statechart", []string{c.Name}).Body(), c)
	}
	for _, c := range pkg.Components {
		if c.Kind != model.KindComposite {
			continue
		}
		body.AppendNewline()
		encodeComposite(body.AppendNewBlock("composite", []string{c.Name}).Body(), c)
	}

	return hclwrite.Format(f.Bytes())
}

func encodePorts(body *hclwrite.Body, ports []*model.Port) {
	for _, p := range ports {
		pb := body.AppendNewBlock("port", []string{p.Name}).Body()
		pb.SetAttributeValue("interface", cty.StringVal(p.Interface.Name))
		pb.SetAttributeValue("realization", cty.StringVal(string(p.Realization)))
	}
}

func encodeStatechart(body *hclwrite.Body, c *model.Component) {
	encodePorts(body, c.Ports)
	sc := c.Statechart
	if sc == nil {
		return
	}

	for _, v := range sc.Variables {
		vb := body.AppendNewBlock("variable", []string{v.Name}).Body()
		vb.SetAttributeTraversal("type", hcl.Traversal{hcl.TraverseRoot{Name: string(v.Type)}})
		if !v.Initial.IsNull() {
			vb.SetAttributeValue("initial", v.Initial)
		}
	}

	encodeRegions(body, sc.Regions)

	for _, t := range sc.Transitions {
		tb := body.AppendNewBlock("transition", nil).Body()
		tb.SetAttributeValue("name", cty.StringVal(t.Name))
		tb.SetAttributeValue("source", cty.StringVal(t.Source))
		tb.SetAttributeValue("target", cty.StringVal(t.Target))
		setOptionalString(tb, "trigger", t.Trigger)
		setOptionalString(tb, "guard", t.Guard)
		if t.Priority != 0 {
			tb.SetAttributeValue("priority", cty.NumberIntVal(int64(t.Priority)))
		}
		if len(t.Raise) > 0 {
			tb.SetAttributeValue("raise", stringList(t.Raise))
		}
		if len(t.Assign) > 0 {
			// cty objects sort their attributes; write tokens to keep order.
			attrs := make([]hclwrite.ObjectAttrTokens, 0, len(t.Assign))
			for _, a := range t.Assign {
				attrs = append(attrs, hclwrite.ObjectAttrTokens{
					Name:  hclwrite.TokensForIdentifier(a.Variable),
					Value: hclwrite.TokensForValue(cty.StringVal(a.Value)),
				})
			}
			tb.SetAttributeRaw("assign", hclwrite.TokensForObject(attrs))
		}
	}
}

func encodeRegions(body *hclwrite.Body, regions []*model.Region) {
	for _, r := range regions {
		rb := body.AppendNewBlock("region", []string{r.Name}).Body()
		setOptionalString(rb, "initial", r.Initial)
		setOptionalString(rb, "history", r.History)
		for _, st := range r.States {
			sb := rb.AppendNewBlock("state", []string{st.Name}).Body()
			if st.Final {
				sb.SetAttributeValue("final", cty.True)
			}
			encodeRegions(sb, st.Regions)
		}
	}
}

func encodeComposite(body *hclwrite.Body, c *model.Component) {
	encodePorts(body, c.Ports)
	comp := c.Composite
	if comp == nil {
		return
	}

	for _, inst := range comp.Instances {
		ib := body.AppendNewBlock("instance", []string{inst.Name}).Body()
		ib.SetAttributeValue("component", cty.StringVal(inst.Component.Name))
		setOptionalString(ib, "origin", inst.Origin)
	}
	for _, conn := range comp.Connections {
		cb := body.AppendNewBlock("connect", nil).Body()
		cb.SetAttributeValue("from", cty.StringVal(conn.From.String()))
		cb.SetAttributeValue("to", cty.StringVal(conn.To.String()))
	}
	if len(comp.Execution) > 0 {
		body.SetAttributeValue("execution", stringList(comp.Execution))
	}
}

func setOptionalString(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, 0, len(items))
	for _, s := range items {
		vals = append(vals, cty.StringVal(s))
	}
	return cty.ListVal(vals)
}
