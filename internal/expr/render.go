package expr

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

type operator struct {
	token      string
	precedence int
}

var binaryOps = map[*hclsyntax.Operation]operator{
	hclsyntax.OpLogicalOr:          {"||", 1},
	hclsyntax.OpLogicalAnd:         {"&&", 2},
	hclsyntax.OpEqual:              {"==", 3},
	hclsyntax.OpNotEqual:           {"!=", 3},
	hclsyntax.OpGreaterThan:        {">", 4},
	hclsyntax.OpGreaterThanOrEqual: {">=", 4},
	hclsyntax.OpLessThan:           {"<", 4},
	hclsyntax.OpLessThanOrEqual:    {"<=", 4},
	hclsyntax.OpAdd:                {"+", 5},
	hclsyntax.OpSubtract:           {"-", 5},
	hclsyntax.OpMultiply:           {"*", 6},
	hclsyntax.OpDivide:             {"/", 6},
	hclsyntax.OpModulo:             {"%", 6},
}

const unaryPrecedence = 7

// Render prints e in the target's C-like syntax. Variable references are
// passed through rename so callers can map model names to declared
// identifiers. Render fails on any form Unsupported would report.
func Render(e hclsyntax.Expression, rename func(string) string) (string, error) {
	var sb strings.Builder
	if err := render(&sb, e, rename); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderSource parses and renders src in one step.
func RenderSource(src string, rename func(string) string) (string, error) {
	e, err := Parse(src)
	if err != nil {
		return "", err
	}
	return Render(e, rename)
}

func render(sb *strings.Builder, e hclsyntax.Expression, rename func(string) string) error {
	switch x := e.(type) {
	case *hclsyntax.LiteralValueExpr:
		return renderLiteral(sb, x.Val)
	case *hclsyntax.ScopeTraversalExpr:
		if len(x.Traversal) != 1 {
			return &FormError{Construct: "expression", Detail: "attribute or index access " + TraversalKey(x.Traversal)}
		}
		name := x.Traversal.RootName()
		if rename != nil {
			name = rename(name)
		}
		sb.WriteString(name)
		return nil
	case *hclsyntax.ParenthesesExpr:
		sb.WriteByte('(')
		if err := render(sb, x.Expression, rename); err != nil {
			return err
		}
		sb.WriteByte(')')
		return nil
	case *hclsyntax.UnaryOpExpr:
		switch x.Op {
		case hclsyntax.OpLogicalNot:
			sb.WriteByte('!')
		case hclsyntax.OpNegate:
			sb.WriteByte('-')
		default:
			return &FormError{Construct: "expression", Detail: "unknown unary operator"}
		}
		return renderOperand(sb, x.Val, unaryPrecedence, rename)
	case *hclsyntax.BinaryOpExpr:
		op, ok := binaryOps[x.Op]
		if !ok {
			return &FormError{Construct: "expression", Detail: "unknown binary operator"}
		}
		if err := renderOperand(sb, x.LHS, op.precedence, rename); err != nil {
			return err
		}
		sb.WriteString(" " + op.token + " ")
		// Right operands of equal precedence need parentheses because all
		// these operators are left-associative.
		return renderOperand(sb, x.RHS, op.precedence+1, rename)
	default:
		problems := Unsupported(e)
		detail := fmt.Sprintf("%T", e)
		if len(problems) > 0 {
			detail = problems[0]
		}
		return &FormError{Construct: "expression", Detail: detail}
	}
}

func renderOperand(sb *strings.Builder, e hclsyntax.Expression, min int, rename func(string) string) error {
	if b, ok := e.(*hclsyntax.BinaryOpExpr); ok {
		if op, known := binaryOps[b.Op]; known && op.precedence < min {
			sb.WriteByte('(')
			if err := render(sb, e, rename); err != nil {
				return err
			}
			sb.WriteByte(')')
			return nil
		}
	}
	return render(sb, e, rename)
}

func renderLiteral(sb *strings.Builder, v cty.Value) error {
	switch {
	case v.IsNull():
		return &FormError{Construct: "expression", Detail: "null literal"}
	case v.Type().Equals(cty.Bool):
		if v.True() {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
		return nil
	case v.Type().Equals(cty.Number):
		bf := v.AsBigFloat()
		if !bf.IsInt() {
			return &FormError{Construct: "expression", Detail: "non-integer number " + bf.Text('g', -1)}
		}
		sb.WriteString(bf.Text('f', 0))
		return nil
	default:
		return &FormError{Construct: "expression", Detail: v.Type().FriendlyName() + " literal"}
	}
}

// RenderValue prints a literal value, such as a variable's initial value.
func RenderValue(v cty.Value) (string, error) {
	var sb strings.Builder
	if err := renderLiteral(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}
