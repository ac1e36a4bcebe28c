// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single identifier segment, e.g., `prior` or `step_2`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// Parse creates a new Address by parsing its canonical dotted representation.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("identifier cannot be empty")
	}

	var addr Address
	for _, segment := range strings.Split(raw, ".") {
		if segment == "" {
			return Address{}, fmt.Errorf("identifier %q contains an empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return Address{}, fmt.Errorf("invalid segment %q in identifier %q", segment, raw)
		}
		addr.Path = append(addr.Path, segment)
	}
	return addr, nil
}

// ParseN parses raw and requires the result to have exactly n segments.
func ParseN(raw string, n int) (Address, error) {
	addr, err := Parse(raw)
	if err != nil {
		return Address{}, err
	}
	if addr.Len() != n {
		return Address{}, fmt.Errorf("identifier %q must have %d segments, got %d", raw, n, addr.Len())
	}
	return addr, nil
}
