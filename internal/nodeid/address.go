// internal/nodeid/address.go
package nodeid

import (
	"slices"
	"strings"
)

// String serializes the Address into its canonical dotted representation.
func (a Address) String() string {
	return a.Join(".")
}

// Join concatenates the segments with the given separator. The unfolder
// uses "_" to derive flat instance names from hierarchy paths.
func (a Address) Join(sep string) string {
	return strings.Join(a.Path, sep)
}

// Equal reports whether both addresses have the same segments.
func (a Address) Equal(other Address) bool {
	return slices.Equal(a.Path, other.Path)
}

// Child returns a new address with the given segments appended. The
// receiver is never modified.
func (a Address) Child(segments ...string) Address {
	path := make([]string, 0, len(a.Path)+len(segments))
	path = append(path, a.Path...)
	path = append(path, segments...)
	return Address{Path: path}
}

// Parent returns the address without its last segment. The parent of a
// single-segment or empty address is the empty address.
func (a Address) Parent() Address {
	if len(a.Path) <= 1 {
		return Address{}
	}
	return New(a.Path[:len(a.Path)-1]...)
}

// Last returns the final segment, or "" for the empty address.
func (a Address) Last() string {
	if len(a.Path) == 0 {
		return ""
	}
	return a.Path[len(a.Path)-1]
}

// HasPrefix reports whether prefix is a leading sub-path of a.
func (a Address) HasPrefix(prefix Address) bool {
	if len(prefix.Path) > len(a.Path) {
		return false
	}
	return slices.Equal(a.Path[:len(prefix.Path)], prefix.Path)
}
