package lodging

import "github.com/maresia/maresia/internal/ui"

// AccommodationType distinguishes whole rooms from beds in shared rooms.
type AccommodationType string

const (
	TypeRoom AccommodationType = "room"
	TypeBed  AccommodationType = "bed"
)

// AccommodationStatus enumerates operational states of an accommodation.
type AccommodationStatus string

const (
	StatusAvailable   AccommodationStatus = "available"
	StatusOccupied    AccommodationStatus = "occupied"
	StatusMaintenance AccommodationStatus = "maintenance"
)

// HousekeepingStatus tracks the cleaning state, orthogonal to occupancy.
type HousekeepingStatus string

const (
	HousekeepingClean    HousekeepingStatus = "clean"
	HousekeepingDirty    HousekeepingStatus = "dirty"
	HousekeepingCleaning HousekeepingStatus = "cleaning"
)

// OccupancyMode of a room type.
type OccupancyMode string

const (
	OccupancyPrivate OccupancyMode = "private"
	OccupancyShared  OccupancyMode = "shared"
)

// Accommodation is a bookable room or bed (quarto).
type Accommodation struct {
	ID           string              `json:"id"`
	Code         string              `json:"code"`
	Name         string              `json:"name"`
	Floor        string              `json:"floor"`
	Description  string              `json:"description"`
	Type         AccommodationType   `json:"type"`
	RoomTypeID   string              `json:"room_type_id"`
	RoomTypeName string              `json:"room_type_name"`
	BaseCapacity *int                `json:"base_capacity"`
	MaxCapacity  *int                `json:"max_capacity"`
	Status       AccommodationStatus `json:"status"`
	Housekeeping HousekeepingStatus  `json:"housekeeping_status"`
	Amenities    []string            `json:"amenities"`
}

// RoomType groups accommodations sharing occupancy defaults and amenities.
type RoomType struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	OccupancyMode OccupancyMode `json:"occupancy_mode"`
	BaseOccupancy int           `json:"base_occupancy"`
	MaxOccupancy  int           `json:"max_occupancy"`
	Description   string        `json:"description"`
	Amenities     []Amenity     `json:"amenities"`
}

// Amenity is a property-scoped feature linked to room types.
type Amenity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AccommodationInput is the create/update payload.
type AccommodationInput struct {
	Code         string            `json:"code"`
	Name         *string           `json:"name"`
	Floor        *string           `json:"floor"`
	Description  *string           `json:"description"`
	Type         AccommodationType `json:"type"`
	RoomTypeID   string            `json:"room_type_id"`
	BaseCapacity *int              `json:"base_capacity"`
	MaxCapacity  *int              `json:"max_capacity"`
}

// RoomTypeInput is the create/update payload for room types.
type RoomTypeInput struct {
	Name          string        `json:"name"`
	OccupancyMode OccupancyMode `json:"occupancy_mode"`
	BaseOccupancy int           `json:"base_occupancy"`
	MaxOccupancy  int           `json:"max_occupancy"`
	Description   *string       `json:"description"`
}

// EffectiveCapacity resolves an accommodation's capacity, falling back to
// the room type defaults when no per-room override is set.
func EffectiveCapacity(acc Accommodation, rt RoomType) (base, max int) {
	base = rt.BaseOccupancy
	max = rt.MaxOccupancy
	if acc.BaseCapacity != nil {
		base = *acc.BaseCapacity
	}
	if acc.MaxCapacity != nil {
		max = *acc.MaxCapacity
	}
	return base, max
}

// StatusBadge maps an accommodation status for both listing layouts.
func StatusBadge(status AccommodationStatus) ui.Badge {
	switch status {
	case StatusAvailable:
		return ui.Badge{Label: "Disponível", Variant: ui.VariantSuccess}
	case StatusOccupied:
		return ui.Badge{Label: "Ocupado", Variant: ui.VariantInfo}
	case StatusMaintenance:
		return ui.Badge{Label: "Manutenção", Variant: ui.VariantWarning}
	default:
		return ui.Badge{Label: string(status), Variant: ui.VariantNeutral}
	}
}

// HousekeepingBadge maps a housekeeping status.
func HousekeepingBadge(status HousekeepingStatus) ui.Badge {
	switch status {
	case HousekeepingClean:
		return ui.Badge{Label: "Limpo", Variant: ui.VariantSuccess}
	case HousekeepingDirty:
		return ui.Badge{Label: "Sujo", Variant: ui.VariantDanger}
	case HousekeepingCleaning:
		return ui.Badge{Label: "Em limpeza", Variant: ui.VariantWarning}
	default:
		return ui.Badge{Label: string(status), Variant: ui.VariantNeutral}
	}
}
