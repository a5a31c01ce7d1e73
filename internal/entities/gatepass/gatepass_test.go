package gatepass

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountsRate(t *testing.T) {
	tests := map[string]struct {
		counts Counts
		want   int
	}{
		"none":         {Counts{}, 0},
		"all pending":  {Counts{Pending: 4}, 0},
		"all history":  {Counts{History: 4}, 100},
		"rounds up":    {Counts{Pending: 1, History: 2}, 67},
		"rounds down":  {Counts{Pending: 2, History: 1}, 33},
		"half":         {Counts{Pending: 5, History: 5}, 50},
		"large totals": {Counts{Pending: 3, History: 11}, 79},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.counts.Rate())
		})
	}
}
