package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRevenueDelta(t *testing.T) {
	cases := []struct {
		name     string
		previous float64
		current  float64
		want     float64
	}{
		{"no history no revenue", 0, 0, 0},
		{"first revenue", 0, 100, 100},
		{"growth", 100, 150, 50},
		{"decline", 200, 150, -25},
		{"flat", 80, 80, 0},
		{"all lost", 120, 0, -100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, RevenueDelta(tc.previous, tc.current), 0.0001)
		})
	}
}
