package expr

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// TraversalKey generates a stable, canonical string representation for an
// hcl.Traversal, suitable for use as a map key.
func TraversalKey(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// Parse parses a guard or assignment value.
func Parse(src string) (hclsyntax.Expression, error) {
	e, diags := hclsyntax.ParseExpression([]byte(src), "expression", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, &FormError{Construct: "expression", Detail: diags.Error()}
	}
	return e, nil
}

// References returns the unique root names referenced by e, sorted to
// ensure a deterministic order.
func References(e hcl.Expression) []string {
	seen := make(map[string]struct{})
	for _, t := range e.Variables() {
		seen[t.RootName()] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Unsupported walks the AST and describes every node whose form cannot be
// expressed in the target language. Each offending node yields one entry,
// in source order. Children of an offending node are not inspected.
func Unsupported(e hclsyntax.Expression) []string {
	var problems []string
	walkForms(e, &problems)
	return problems
}

func walkForms(e hclsyntax.Expression, problems *[]string) {
	if e == nil {
		return
	}
	report := func(format string, args ...any) {
		*problems = append(*problems, fmt.Sprintf(format, args...))
	}

	switch x := e.(type) {
	case *hclsyntax.LiteralValueExpr:
		switch {
		case x.Val.IsNull():
			report("null literal")
		case x.Val.Type().Equals(cty.Bool):
		case x.Val.Type().Equals(cty.Number):
			if !x.Val.AsBigFloat().IsInt() {
				report("non-integer number %s", x.Val.AsBigFloat().Text('g', -1))
			} else if !InIntDomain(x.Val) {
				report("integer %s outside [%d, %d]", x.Val.AsBigFloat().Text('f', 0), IntMin, IntMax)
			}
		default:
			report("%s literal", x.Val.Type().FriendlyName())
		}
	case *hclsyntax.ScopeTraversalExpr:
		if len(x.Traversal) != 1 {
			report("attribute or index access %s", TraversalKey(x.Traversal))
		}
	case *hclsyntax.BinaryOpExpr:
		walkForms(x.LHS, problems)
		walkForms(x.RHS, problems)
	case *hclsyntax.UnaryOpExpr:
		if lit, ok := x.Val.(*hclsyntax.LiteralValueExpr); ok && x.Op == hclsyntax.OpNegate &&
			!lit.Val.IsNull() && lit.Val.Type().Equals(cty.Number) && lit.Val.AsBigFloat().IsInt() {
			if !InIntDomain(lit.Val.Negate()) {
				report("integer -%s outside [%d, %d]", lit.Val.AsBigFloat().Text('f', 0), IntMin, IntMax)
			}
			return
		}
		walkForms(x.Val, problems)
	case *hclsyntax.ParenthesesExpr:
		walkForms(x.Expression, problems)
	case *hclsyntax.FunctionCallExpr:
		report("function call %s()", x.Name)
	case *hclsyntax.ConditionalExpr:
		report("conditional expression")
	case *hclsyntax.TemplateExpr, *hclsyntax.TemplateWrapExpr, *hclsyntax.TemplateJoinExpr:
		report("string template")
	case *hclsyntax.TupleConsExpr:
		report("tuple constructor")
	case *hclsyntax.ObjectConsExpr:
		report("object constructor")
	case *hclsyntax.ForExpr:
		report("for expression")
	case *hclsyntax.IndexExpr:
		report("index expression")
	case *hclsyntax.SplatExpr:
		report("splat expression")
	case *hclsyntax.RelativeTraversalExpr:
		report("attribute or index access")
	default:
		report("expression of type %T", e)
	}
}
