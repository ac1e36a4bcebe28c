package uppaal

import (
	"strconv"
	"strings"
)

// keywords cannot be used as identifiers in UPPAAL declarations.
var keywords = []string{
	"bool", "int", "clock", "chan", "broadcast", "urgent", "const", "void",
	"true", "false", "system", "process", "state", "commit", "init", "trans",
	"select", "guard", "sync", "assign", "for", "while", "do", "if", "else",
	"return", "typedef", "struct", "meta", "priority", "default", "forall",
	"exists", "sum", "imply", "not", "and", "or", "double", "string", "scalar",
}

// Namer hands out identifiers that are unique within one scope.
type Namer struct {
	used map[string]struct{}
}

// NewNamer creates a namer with the target language's keywords reserved.
func NewNamer() *Namer {
	n := &Namer{used: make(map[string]struct{})}
	n.Reserve(keywords...)
	return n
}

// Reserve marks names as taken.
func (n *Namer) Reserve(names ...string) {
	for _, name := range names {
		n.used[name] = struct{}{}
	}
}

// Taken reports whether name has been handed out or reserved.
func (n *Namer) Taken(name string) bool {
	_, ok := n.used[name]
	return ok
}

// Unique sanitizes base into an identifier and returns it, appending _2,
// _3, ... until it no longer collides. The same sequence of calls always
// yields the same names.
func (n *Namer) Unique(base string) string {
	name := Sanitize(base)
	if !n.Taken(name) {
		n.Reserve(name)
		return name
	}
	for i := 2; ; i++ {
		candidate := name + "_" + strconv.Itoa(i)
		if !n.Taken(candidate) {
			n.Reserve(candidate)
			return candidate
		}
	}
}

// Fork returns an independent copy of the namer. Names taken in the copy
// do not affect the original.
func (n *Namer) Fork() *Namer {
	cp := &Namer{used: make(map[string]struct{}, len(n.used))}
	for k := range n.used {
		cp.used[k] = struct{}{}
	}
	return cp
}

// Sanitize maps s to a valid identifier: letters, digits and underscores,
// not starting with a digit.
func Sanitize(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	out := sb.String()
	if out == "" || (out[0] >= '0' && out[0] <= '9') {
		out = "_" + out
	}
	return out
}
