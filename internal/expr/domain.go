package expr

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Bounds of the target's default integer type (16-bit) and of supported
// timeouts.
const (
	IntMin     = -32768
	IntMax     = 32767
	TimeoutMin = 1
	TimeoutMax = 32767
)

// InIntDomain reports whether v is a whole number within [IntMin, IntMax].
func InIntDomain(v cty.Value) bool {
	if v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.Number) {
		return false
	}
	var n int16
	return gocty.FromCtyValue(v, &n) == nil
}

// InTimeoutDomain reports whether ms is a supported `after` constant.
func InTimeoutDomain(ms int64) bool {
	return ms >= TimeoutMin && ms <= TimeoutMax
}
