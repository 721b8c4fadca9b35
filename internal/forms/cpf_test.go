package forms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidCPF(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want bool
	}{
		{"bare digits", "52998224725", true},
		{"formatted", "529.982.247-25", true},
		{"wrong check digit", "52998224726", false},
		{"wrong first digit", "52998224735", false},
		{"repeated digits", "11111111111", false},
		{"too short", "5299822472", false},
		{"too long", "529982247250", false},
		{"letters", "5299822472a", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ValidCPF(tc.raw))
		})
	}
}
