package expr

import (
	"math"
	"math/big"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// TriggerKind distinguishes the supported trigger forms.
type TriggerKind int

const (
	TriggerNone TriggerKind = iota
	TriggerSignal
	TriggerTimeout
)

// Trigger is a parsed transition trigger.
type Trigger struct {
	Kind   TriggerKind
	Port   string
	Signal string
	// Millis is the timeout of an `after` trigger. Values that do not fit
	// an int64 saturate.
	Millis int64
}

// ParseTrigger parses a trigger. The empty string is a triggerless
// (completion) transition.
func ParseTrigger(src string) (Trigger, error) {
	if strings.TrimSpace(src) == "" {
		return Trigger{Kind: TriggerNone}, nil
	}

	e, diags := hclsyntax.ParseExpression([]byte(src), "trigger", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return Trigger{}, &FormError{Construct: "trigger", Detail: diags.Error()}
	}

	switch x := e.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		names, ok := TraversalNames(x.Traversal)
		if !ok || len(names) != 2 {
			return Trigger{}, &FormError{Construct: "trigger", Detail: "expected <port>.<signal>, got " + src}
		}
		return Trigger{Kind: TriggerSignal, Port: names[0], Signal: names[1]}, nil
	case *hclsyntax.FunctionCallExpr:
		if x.Name != "after" || len(x.Args) != 1 || x.ExpandFinal {
			return Trigger{}, &FormError{Construct: "trigger", Detail: "only after(<milliseconds>) is supported, got " + src}
		}
		ms, ok := integerLiteral(x.Args[0])
		if !ok {
			return Trigger{}, &FormError{Construct: "trigger", Detail: "after() requires an integer literal, got " + src}
		}
		return Trigger{Kind: TriggerTimeout, Millis: saturate(ms)}, nil
	default:
		return Trigger{}, &FormError{Construct: "trigger", Detail: "expected <port>.<signal> or after(<milliseconds>), got " + src}
	}
}

// TraversalNames returns the names of a traversal made only of a root and
// attribute steps.
func TraversalNames(t hcl.Traversal) ([]string, bool) {
	names := make([]string, 0, len(t))
	for _, step := range t {
		switch s := step.(type) {
		case hcl.TraverseRoot:
			names = append(names, s.Name)
		case hcl.TraverseAttr:
			names = append(names, s.Name)
		default:
			return nil, false
		}
	}
	return names, true
}

// integerLiteral accepts a number literal, optionally negated, whose value
// is whole.
func integerLiteral(e hclsyntax.Expression) (*big.Float, bool) {
	negate := false
	if u, ok := e.(*hclsyntax.UnaryOpExpr); ok && u.Op == hclsyntax.OpNegate {
		negate = true
		e = u.Val
	}
	lit, ok := e.(*hclsyntax.LiteralValueExpr)
	if !ok || lit.Val.IsNull() || !lit.Val.Type().Equals(cty.Number) {
		return nil, false
	}
	bf := new(big.Float).Copy(lit.Val.AsBigFloat())
	if !bf.IsInt() {
		return nil, false
	}
	if negate {
		bf.Neg(bf)
	}
	return bf, true
}

func saturate(bf *big.Float) int64 {
	i, acc := bf.Int64()
	if acc != big.Exact {
		if bf.Sign() < 0 {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return i
}
