package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/sc2ta/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateVariable converts a variable block. The type must be a bare
// keyword; unsupported keywords are kept so the validator can report them.
func translateVariable(v *Variable) (*model.Variable, error) {
	typ, err := typeKeyword(v.Type)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", v.Name, err)
	}

	initial := defaultValue(typ)
	if v.Initial != nil && !v.Initial.IsNull() {
		initial = normalizeValue(typ, *v.Initial)
	}
	return &model.Variable{Name: v.Name, Type: typ, Initial: initial}, nil
}

// typeKeyword reads a type written as a simple identifier like `integer`,
// not a string or a complex expression.
func typeKeyword(expr hcl.Expression) (model.VarType, error) {
	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() || len(traversal) != 1 {
		return "", fmt.Errorf("invalid type specification: the type must be a keyword like integer or boolean")
	}
	return model.VarType(traversal.RootName()), nil
}

func defaultValue(typ model.VarType) cty.Value {
	switch typ {
	case model.TypeInteger:
		return cty.Zero
	case model.TypeBoolean:
		return cty.False
	default:
		return cty.NullVal(cty.DynamicPseudoType)
	}
}

// normalizeValue converts an initial value to the cty type matching the
// declared variable type when a safe conversion exists. Values that cannot
// be converted are kept unchanged for the validator to reject.
func normalizeValue(typ model.VarType, v cty.Value) cty.Value {
	var want cty.Type
	switch typ {
	case model.TypeInteger:
		want = cty.Number
	case model.TypeBoolean:
		want = cty.Bool
	default:
		return v
	}
	if v.Type().Equals(cty.String) {
		// "1" and "true" would convert, but quoting a number is a mistake
		// the user should hear about.
		return v
	}
	converted, err := convert.Convert(v, want)
	if err != nil {
		return v
	}
	return converted
}
