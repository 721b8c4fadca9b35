package lodging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEffectiveCapacity(t *testing.T) {
	rt := RoomType{BaseOccupancy: 2, MaxOccupancy: 4}

	t.Run("no override falls back to room type", func(t *testing.T) {
		base, max := EffectiveCapacity(Accommodation{}, rt)
		require.Equal(t, 2, base)
		require.Equal(t, 4, max)
	})

	t.Run("partial override keeps the other default", func(t *testing.T) {
		three := 3
		base, max := EffectiveCapacity(Accommodation{BaseCapacity: &three}, rt)
		require.Equal(t, 3, base)
		require.Equal(t, 4, max)
	})

	t.Run("full override wins", func(t *testing.T) {
		one, six := 1, 6
		base, max := EffectiveCapacity(Accommodation{BaseCapacity: &one, MaxCapacity: &six}, rt)
		require.Equal(t, 1, base)
		require.Equal(t, 6, max)
	})

	t.Run("unknown room type resolves overrides only", func(t *testing.T) {
		two := 2
		base, max := EffectiveCapacity(Accommodation{MaxCapacity: &two}, RoomType{})
		require.Equal(t, 0, base)
		require.Equal(t, 2, max)
	})
}
