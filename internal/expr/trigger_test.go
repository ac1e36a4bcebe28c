package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrigger(t *testing.T) {
	testCases := []struct {
		name      string
		src       string
		expected  Trigger
		expectErr bool
	}{
		{name: "empty", src: "", expected: Trigger{Kind: TriggerNone}},
		{name: "blank", src: "   ", expected: Trigger{Kind: TriggerNone}},
		{name: "signal", src: "control.toggle", expected: Trigger{Kind: TriggerSignal, Port: "control", Signal: "toggle"}},
		{name: "timeout", src: "after(500)", expected: Trigger{Kind: TriggerTimeout, Millis: 500}},
		{name: "negative timeout parses", src: "after(-5)", expected: Trigger{Kind: TriggerTimeout, Millis: -5}},
		{name: "huge timeout saturates", src: "after(1e30)", expected: Trigger{Kind: TriggerTimeout, Millis: math.MaxInt64}},
		{name: "error - bare name", src: "toggle", expectErr: true},
		{name: "error - three segments", src: "a.b.c", expectErr: true},
		{name: "error - other function", src: "every(5)", expectErr: true},
		{name: "error - fractional timeout", src: "after(1.5)", expectErr: true},
		{name: "error - non literal timeout", src: "after(x)", expectErr: true},
		{name: "error - composite expression", src: "control.toggle || control.other", expectErr: true},
		{name: "error - syntax", src: "control.", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trig, err := ParseTrigger(tc.src)
			if tc.expectErr {
				var formErr *FormError
				require.ErrorAs(t, err, &formErr)
				assert.Equal(t, "trigger", formErr.Construct)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, trig)
		})
	}
}

func TestInTimeoutDomain(t *testing.T) {
	assert.False(t, InTimeoutDomain(0))
	assert.True(t, InTimeoutDomain(1))
	assert.True(t, InTimeoutDomain(32767))
	assert.False(t, InTimeoutDomain(32768))
}
