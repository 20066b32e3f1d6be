package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes(t *testing.T) {
	type test struct {
		name     string
		input    uint64
		expected string
	}

	tests := []*test{
		{
			name:     "LowerByteRange",
			expected: "0B",
		},
		{
			name:     "MidByteRange",
			input:    500,
			expected: "500B",
		},
		{
			name:     "HighByteRange",
			input:    1023,
			expected: "1023B",
		},
		{
			name:     "LowKiBRange",
			input:    1024,
			expected: "1.00KiB",
		},
		{
			name:     "MidKiBRange",
			input:    1024 + 100,
			expected: "1.10KiB",
		},
		{
			name:     "LowMiBRange",
			input:    1024 * 1024,
			expected: "1.00MiB",
		},
		{
			name:     "MidMiBRange",
			input:    1024*1024 + 1024*500,
			expected: "1.49MiB",
		},
		{
			name:     "LowGiBRange",
			input:    1024 * 1024 * 1024,
			expected: "1.00GiB",
		},
		{
			name:     "HighGiBRange",
			input:    1024*1024*1024*1024 - 1024*1024*100,
			expected: "1023.90GiB",
		},
		{
			name:     "LowTiBRange",
			input:    1024 * 1024 * 1024 * 1024,
			expected: "1.00TiB",
		},
		{
			name:     "LowPiBRange",
			input:    1024 * 1024 * 1024 * 1024 * 1024,
			expected: "1.00PiB",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Bytes(test.input))
		})
	}
}
