package lodging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoomTypeFormValidate(t *testing.T) {
	form := RoomTypeForm{
		Name:          "Quarto Duplo",
		OccupancyMode: "private",
		BaseOccupancy: 2,
		MaxOccupancy:  3,
	}
	require.Empty(t, form.Validate())
}

func TestRoomTypeFormRejectsMaxBelowBase(t *testing.T) {
	form := RoomTypeForm{
		Name:          "Quarto Duplo",
		OccupancyMode: "private",
		BaseOccupancy: 2,
		MaxOccupancy:  1,
	}
	errs := form.Validate()
	require.Contains(t, errs, "MaxOccupancy")
}

func TestRoomTypeFormRejectsUnknownMode(t *testing.T) {
	form := RoomTypeForm{
		Name:          "Dormitório",
		OccupancyMode: "dorm",
		BaseOccupancy: 1,
		MaxOccupancy:  8,
	}
	errs := form.Validate()
	require.Contains(t, errs, "OccupancyMode")
}

func TestAccommodationFormValidate(t *testing.T) {
	form := AccommodationForm{
		Code:       "101",
		Type:       "room",
		RoomTypeID: "rt-1",
	}
	require.Empty(t, form.Validate())
}

func TestAccommodationFormCapacityOverrides(t *testing.T) {
	form := AccommodationForm{
		Code:         "101",
		Type:         "room",
		RoomTypeID:   "rt-1",
		BaseCapacity: "3",
		MaxCapacity:  "2",
	}
	errs := form.Validate()
	require.Contains(t, errs, "MaxCapacity")

	form.MaxCapacity = "4"
	require.Empty(t, form.Validate())

	input := form.Input()
	require.NotNil(t, input.BaseCapacity)
	require.Equal(t, 3, *input.BaseCapacity)
	require.NotNil(t, input.MaxCapacity)
	require.Equal(t, 4, *input.MaxCapacity)
}

func TestAccommodationFormRejectsBadCapacity(t *testing.T) {
	form := AccommodationForm{
		Code:         "101",
		Type:         "bed",
		RoomTypeID:   "rt-1",
		BaseCapacity: "dois",
	}
	errs := form.Validate()
	require.Contains(t, errs, "BaseCapacity")
}
