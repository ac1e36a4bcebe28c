// internal/nodeid/parser_test.go
package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		rawID        string
		expectErr    bool
		expectedAddr Address
	}{
		{
			name:         "simple path",
			rawID:        "a.b.c",
			expectedAddr: New("a", "b", "c"),
		},
		{
			name:         "single segment",
			rawID:        "prior",
			expectedAddr: New("prior"),
		},
		{
			name:         "underscores and hyphens",
			rawID:        "_x.y-z.w_1",
			expectedAddr: New("_x", "y-z", "w_1"),
		},
		{
			name:      "error - empty path segment",
			rawID:     "a..b",
			expectErr: true,
		},
		{
			name:      "error - index suffix",
			rawID:     "a.b[0]",
			expectErr: true,
		},
		{
			name:      "error - empty string",
			rawID:     "",
			expectErr: true,
		},
		{
			name:      "error - leading digit",
			rawID:     "a.1b",
			expectErr: true,
		},
		{
			name:      "error - just hyphen",
			rawID:     "-",
			expectErr: true,
		},
		{
			name:      "error - just dot",
			rawID:     ".",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.rawID)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.expectedAddr.Equal(addr), "Parsed address does not match expected address")
		})
	}
}

func TestParseN(t *testing.T) {
	_, err := ParseN("prior.control.toggle", 3)
	require.NoError(t, err)

	_, err = ParseN("control.toggle", 3)
	require.ErrorContains(t, err, "must have 3 segments")
}
