package unfold

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/vk/sc2ta/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// CompareOptions are the go-cmp options under which two components are
// considered the same logical component: object identity is ignored, nil
// and empty collections are equal, and cty values compare by value.
func CompareOptions() cmp.Options {
	return cmp.Options{
		cmpopts.EquateEmpty(),
		cmp.Comparer(func(a, b cty.Value) bool { return a.RawEquals(b) }),
	}
}

// ResolveEquivalent finds the component of pkg that is structurally equal
// to want. It is used after a save and reload, which assigns new object
// identities to every element.
func ResolveEquivalent(pkg *model.Package, want *model.Component) (*model.Component, error) {
	opts := CompareOptions()
	candidate := pkg.Component(want.Name)
	if candidate == nil {
		return nil, &IdentityError{Component: want.Name}
	}
	if diff := cmp.Diff(want, candidate, opts); diff != "" {
		return nil, &IdentityError{Component: want.Name, Diff: diff}
	}
	return candidate, nil
}
