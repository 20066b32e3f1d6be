package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaskQueryValues(t *testing.T) {
	type testCase struct {
		name     string
		rawURL   string
		keys     []string
		expected string
	}

	cases := []testCase{
		{
			name: "empty",
		},
		{
			name:     "noQuery",
			rawURL:   "https://account.blob.core.windows.net/container",
			keys:     []string{"sig"},
			expected: "https://account.blob.core.windows.net/container",
		},
		{
			name:     "nothingToMask",
			rawURL:   "https://account.blob.core.windows.net/container?restype=container&timeout=30",
			keys:     []string{"sig"},
			expected: "https://account.blob.core.windows.net/container?restype=container&timeout=30",
		},
		{
			name:     "maskPreservesOrder",
			rawURL:   "https://account.blob.core.windows.net/container/blob?sp=r&sig=supersecret&se=2026-01-01",
			keys:     []string{"sig"},
			expected: "https://account.blob.core.windows.net/container/blob?sp=r&sig=*****&se=2026-01-01",
		},
		{
			name:     "maskMultiple",
			rawURL:   "http://127.0.0.1:10000/devstoreaccount1?sig=abc&skoid=def",
			keys:     []string{"sig", "skoid"},
			expected: "http://127.0.0.1:10000/devstoreaccount1?sig=*****&skoid=*****",
		},
		{
			name:     "keyWithoutValueLeftAlone",
			rawURL:   "https://account.blob.core.windows.net/container?sig",
			keys:     []string{"sig"},
			expected: "https://account.blob.core.windows.net/container?sig",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, MaskQueryValues(tc.rawURL, tc.keys))
		})
	}
}

func TestMaskURL(t *testing.T) {
	require.Equal(
		t,
		"https://account.blob.core.windows.net/container?sv=2018-03-28&sig=*****",
		MaskURL("https://account.blob.core.windows.net/container?sv=2018-03-28&sig=c2VjcmV0"),
	)
}
