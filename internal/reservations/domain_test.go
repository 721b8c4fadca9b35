package reservations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusCheckedIn, StatusCheckedOut, true},
		{StatusPending, StatusCanceled, true},
		{StatusConfirmed, StatusCanceled, true},
		{StatusCheckedIn, StatusCanceled, true},

		{StatusPending, StatusCheckedIn, false},
		{StatusConfirmed, StatusCheckedOut, false},
		{StatusCheckedOut, StatusCanceled, false},
		{StatusCanceled, StatusConfirmed, false},
		{StatusCheckedOut, StatusCheckedIn, false},
		{StatusCanceled, StatusCanceled, false},
	}
	for _, tc := range cases {
		require.Equalf(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
