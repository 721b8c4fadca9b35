package reservations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEffectiveUnit(t *testing.T) {
	unit, err := EffectiveUnit(150, 30)
	require.NoError(t, err)
	require.Equal(t, 120.0, unit)

	unit, err = EffectiveUnit(80, 0)
	require.NoError(t, err)
	require.Equal(t, 80.0, unit)

	unit, err = EffectiveUnit(80, 80)
	require.NoError(t, err)
	require.Equal(t, 0.0, unit)

	_, err = EffectiveUnit(100, -1)
	require.ErrorIs(t, err, ErrNegativeDiscount)

	_, err = EffectiveUnit(100, 100.01)
	require.ErrorIs(t, err, ErrDiscountExceedsPrice)
}

func TestLineTotal(t *testing.T) {
	total, err := LineTotal(150, 30, 3)
	require.NoError(t, err)
	require.Equal(t, 360.0, total)

	total, err = LineTotal(33.33, 0, 3)
	require.NoError(t, err)
	require.Equal(t, 99.99, total)

	_, err = LineTotal(150, 0, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = LineTotal(150, 200, 1)
	require.ErrorIs(t, err, ErrDiscountExceedsPrice)
}

func TestBalance(t *testing.T) {
	entries := []FolioEntry{
		{Amount: 150},
		{Amount: 50},
		{Amount: 20},
	}
	payments := []Payment{
		{Amount: 60},
		{Amount: 25.50},
	}
	require.Equal(t, 134.50, Balance(entries, payments))
}

func TestBalanceEmptyFolio(t *testing.T) {
	require.Equal(t, 0.0, Balance(nil, nil))
}

func TestBalanceCredit(t *testing.T) {
	entries := []FolioEntry{{Amount: 100}}
	payments := []Payment{{Amount: 120}}
	require.Equal(t, -20.0, Balance(entries, payments))
}
