package lodging

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/maresia/maresia/internal/forms"
)

// RoomTypeForm mirrors the room type create/edit screen. Max occupancy must
// cover at least the base occupancy.
type RoomTypeForm struct {
	Name          string `validate:"required"`
	OccupancyMode string `validate:"required,oneof=private shared"`
	BaseOccupancy int    `validate:"required,gte=1"`
	MaxOccupancy  int    `validate:"required,gtefield=BaseOccupancy"`
	Description   string
}

// ParseRoomTypeForm binds and validates a posted room type form.
func ParseRoomTypeForm(r *http.Request) (RoomTypeForm, map[string]string) {
	base, _ := strconv.Atoi(r.PostFormValue("base_occupancy"))
	max, _ := strconv.Atoi(r.PostFormValue("max_occupancy"))
	form := RoomTypeForm{
		Name:          strings.TrimSpace(r.PostFormValue("name")),
		OccupancyMode: strings.TrimSpace(r.PostFormValue("occupancy_mode")),
		BaseOccupancy: base,
		MaxOccupancy:  max,
		Description:   strings.TrimSpace(r.PostFormValue("description")),
	}
	return form, form.Validate()
}

func (f RoomTypeForm) Validate() map[string]string {
	return forms.Check(f)
}

func (f RoomTypeForm) Input() RoomTypeInput {
	return RoomTypeInput{
		Name:          f.Name,
		OccupancyMode: OccupancyMode(f.OccupancyMode),
		BaseOccupancy: f.BaseOccupancy,
		MaxOccupancy:  f.MaxOccupancy,
		Description:   forms.OptionalString(f.Description),
	}
}

// AccommodationForm mirrors the accommodation create/edit screen. Capacity
// fields are optional overrides of the room type defaults.
type AccommodationForm struct {
	Code         string `validate:"required"`
	Name         string
	Floor        string
	Description  string
	Type         string `validate:"required,oneof=room bed"`
	RoomTypeID   string `validate:"required"`
	BaseCapacity string
	MaxCapacity  string
}

// ParseAccommodationForm binds and validates a posted accommodation form.
func ParseAccommodationForm(r *http.Request) (AccommodationForm, map[string]string) {
	form := AccommodationForm{
		Code:         strings.TrimSpace(r.PostFormValue("code")),
		Name:         strings.TrimSpace(r.PostFormValue("name")),
		Floor:        strings.TrimSpace(r.PostFormValue("floor")),
		Description:  strings.TrimSpace(r.PostFormValue("description")),
		Type:         strings.TrimSpace(r.PostFormValue("type")),
		RoomTypeID:   strings.TrimSpace(r.PostFormValue("room_type_id")),
		BaseCapacity: strings.TrimSpace(r.PostFormValue("base_capacity")),
		MaxCapacity:  strings.TrimSpace(r.PostFormValue("max_capacity")),
	}
	return form, form.Validate()
}

func (f AccommodationForm) Validate() map[string]string {
	errs := forms.Check(f)
	base, baseOK := parseOptionalInt(f.BaseCapacity)
	max, maxOK := parseOptionalInt(f.MaxCapacity)
	if !baseOK {
		errs["BaseCapacity"] = "número inválido"
	}
	if !maxOK {
		errs["MaxCapacity"] = "número inválido"
	}
	if base != nil && *base < 1 {
		errs["BaseCapacity"] = "deve ser maior ou igual a 1"
	}
	if base != nil && max != nil && *max < *base {
		errs["MaxCapacity"] = "deve ser maior ou igual à capacidade base"
	}
	return errs
}

func (f AccommodationForm) Input() AccommodationInput {
	base, _ := parseOptionalInt(f.BaseCapacity)
	max, _ := parseOptionalInt(f.MaxCapacity)
	return AccommodationInput{
		Code:         f.Code,
		Name:         forms.OptionalString(f.Name),
		Floor:        forms.OptionalString(f.Floor),
		Description:  forms.OptionalString(f.Description),
		Type:         AccommodationType(f.Type),
		RoomTypeID:   f.RoomTypeID,
		BaseCapacity: base,
		MaxCapacity:  max,
	}
}

func parseOptionalInt(raw string) (*int, bool) {
	if raw == "" {
		return nil, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &value, true
}
