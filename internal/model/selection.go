// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements the selection of the single root composite that a
// transformation run starts from.
package model

import (
	"fmt"
	"strings"
)

// SelectionError reports that a package does not contain exactly one
// eligible root component.
type SelectionError struct {
	Package    string
	Candidates []string
}

func (e *SelectionError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("package %q: there must be exactly one root composite component, found none", e.Package)
	}
	return fmt.Sprintf("package %q: there must be exactly one root composite component, found %d: %s",
		e.Package, len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// RootCandidates returns the composites that no other composite of the
// package instantiates, in declaration order.
func RootCandidates(pkg *Package) []*Component {
	used := make(map[*Component]bool)
	for _, c := range pkg.Composites() {
		for _, inst := range c.Composite.Instances {
			if inst.Component != nil && inst.Component != c {
				used[inst.Component] = true
			}
		}
	}
	var out []*Component
	for _, c := range pkg.Composites() {
		if !used[c] {
			out = append(out, c)
		}
	}
	return out
}

// SelectRoot returns the single eligible root composite of the package.
func SelectRoot(pkg *Package) (*Component, error) {
	candidates := RootCandidates(pkg)
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	return nil, &SelectionError{Package: pkg.Name, Candidates: names}
}
