package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAmount(t *testing.T) {
	cases := []struct {
		raw   string
		want  *float64
		valid bool
	}{
		{"", nil, true},
		{"  ", nil, true},
		{"10", ptr(10.0), true},
		{"10.50", ptr(10.5), true},
		{"10,50", ptr(10.5), true},
		{"0", ptr(0.0), true},
		{"-3,25", ptr(-3.25), true},
		{"abc", nil, false},
		{"1.2.3", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := Amount(tc.raw)
			require.Equal(t, tc.valid, ok)
			if tc.want == nil {
				require.Nil(t, got)
			} else {
				require.NotNil(t, got)
				require.Equal(t, *tc.want, *got)
			}
		})
	}
}

func TestRequiredAmount(t *testing.T) {
	value, ok := RequiredAmount("85,50")
	require.True(t, ok)
	require.Equal(t, 85.5, value)

	_, ok = RequiredAmount("")
	require.False(t, ok)

	_, ok = RequiredAmount("x")
	require.False(t, ok)
}

func TestDay(t *testing.T) {
	day, ok := Day("2025-09-24")
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 9, 24, 0, 0, 0, 0, time.UTC), day)

	zero, ok := Day("")
	require.True(t, ok)
	require.True(t, zero.IsZero())

	_, ok = Day("24/09/2025")
	require.False(t, ok)
}

func TestOptionalString(t *testing.T) {
	require.Nil(t, OptionalString("   "))
	got := OptionalString("  oi  ")
	require.NotNil(t, got)
	require.Equal(t, "oi", *got)
}

func TestCheckTranslatesMessages(t *testing.T) {
	type sample struct {
		Name  string `validate:"required"`
		Email string `validate:"omitempty,email"`
		Kind  string `validate:"oneof=a b"`
	}
	errs := Check(sample{Email: "nope", Kind: "c"})
	require.Contains(t, errs, "Name")
	require.Contains(t, errs, "Email")
	require.Contains(t, errs, "Kind")
	require.Empty(t, Check(sample{Name: "x", Kind: "a"}))
}

func ptr(v float64) *float64 { return &v }
