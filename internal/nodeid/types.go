// internal/nodeid/types.go
package nodeid

// Address is the structured representation of a qualified element name.
// It is modeled as a path of identifier segments, outermost first.
type Address struct {
	Path []string
}

// New creates an address from the given segments. The segments are copied.
func New(segments ...string) Address {
	path := make([]string, len(segments))
	copy(path, segments)
	return Address{Path: path}
}

// Len returns the number of segments in the address.
func (a Address) Len() int {
	return len(a.Path)
}

// IsZero reports whether the address has no segments.
func (a Address) IsZero() bool {
	return len(a.Path) == 0
}
