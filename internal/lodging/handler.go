package lodging

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/shared"
	"github.com/maresia/maresia/internal/ui"
	"github.com/maresia/maresia/internal/view"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf}
}

// MountRoutes registers accommodation, room type and amenity routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.ListAccommodations)
	r.Get("/novo", h.NewAccommodation)
	r.Post("/", h.CreateAccommodation)
	r.Get("/{id}/editar", h.EditAccommodation)
	r.Post("/{id}", h.UpdateAccommodation)
	r.Post("/{id}/status", h.SetStatus)
	r.Post("/{id}/limpeza", h.SetHousekeeping)

	r.Get("/tipos", h.ListRoomTypes)
	r.Get("/tipos/novo", h.NewRoomType)
	r.Post("/tipos", h.CreateRoomType)
	r.Get("/tipos/{id}/editar", h.EditRoomType)
	r.Post("/tipos/{id}", h.UpdateRoomType)
	r.Post("/tipos/{id}/excluir", h.DeleteRoomType)
	r.Post("/tipos/{id}/comodidades", h.LinkAmenity)
	r.Post("/tipos/{id}/comodidades/{amenityID}/remover", h.UnlinkAmenity)

	r.Get("/comodidades", h.ListAmenities)
	r.Post("/comodidades", h.CreateAmenity)
	r.Post("/comodidades/{id}/excluir", h.DeleteAmenity)
}

type accommodationRow struct {
	Accommodation Accommodation
	Status        ui.Badge
	Housekeeping  ui.Badge
	BaseCapacity  int
	MaxCapacity   int
}

func (h *Handler) ListAccommodations(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	filters := ListFilters{
		Status: r.URL.Query().Get("status"),
		Type:   r.URL.Query().Get("type"),
	}
	items, err := h.service.ListAccommodations(api.RequestContext(r), propertyID, filters)
	if err != nil {
		h.logger.Error("list accommodations failed", slog.Any("error", err))
		h.renderError(w, r, "Não foi possível carregar as acomodações")
		return
	}
	roomTypes, err := h.service.ListRoomTypes(api.RequestContext(r), propertyID)
	if err != nil {
		h.logger.Warn("list room types failed", slog.Any("error", err))
	}
	typesByID := make(map[string]RoomType, len(roomTypes))
	for _, rt := range roomTypes {
		typesByID[rt.ID] = rt
	}
	rows := make([]accommodationRow, 0, len(items))
	for _, acc := range items {
		base, max := EffectiveCapacity(acc, typesByID[acc.RoomTypeID])
		rows = append(rows, accommodationRow{
			Accommodation: acc,
			Status:        StatusBadge(acc.Status),
			Housekeeping:  HousekeepingBadge(acc.Housekeeping),
			BaseCapacity:  base,
			MaxCapacity:   max,
		})
	}
	h.render(w, r, "pages/accommodations_list.html", "Acomodações", map[string]any{
		"Rows":    rows,
		"Filters": filters,
	})
}

func (h *Handler) NewAccommodation(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	roomTypes, err := h.service.ListRoomTypes(api.RequestContext(r), propertyID)
	if err != nil {
		h.renderError(w, r, "Não foi possível carregar os tipos de quarto")
		return
	}
	h.render(w, r, "pages/accommodation_form.html", "Nova acomodação", map[string]any{
		"Form":      AccommodationForm{},
		"Errors":    map[string]string{},
		"RoomTypes": roomTypes,
	})
}

func (h *Handler) CreateAccommodation(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseAccommodationForm(r)
	if len(errs) > 0 {
		roomTypes, _ := h.service.ListRoomTypes(api.RequestContext(r), propertyID)
		h.render(w, r, "pages/accommodation_form.html", "Nova acomodação", map[string]any{
			"Form":      form,
			"Errors":    errs,
			"RoomTypes": roomTypes,
		})
		return
	}
	if _, err := h.service.CreateAccommodation(api.RequestContext(r), propertyID, form.Input()); err != nil {
		h.flashError(r, err, "Falha ao criar acomodação")
		http.Redirect(w, r, "/acomodacoes/novo", http.StatusSeeOther)
		return
	}
	h.flashSuccess(r, "Acomodação criada")
	http.Redirect(w, r, "/acomodacoes", http.StatusSeeOther)
}

func (h *Handler) EditAccommodation(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	acc, err := h.service.GetAccommodation(api.RequestContext(r), id)
	if err != nil {
		h.renderError(w, r, "Acomodação não encontrada")
		return
	}
	roomTypes, _ := h.service.ListRoomTypes(api.RequestContext(r), propertyID)
	h.render(w, r, "pages/accommodation_form.html", "Editar acomodação", map[string]any{
		"Form":      accommodationForm(acc),
		"Errors":    map[string]string{},
		"RoomTypes": roomTypes,
		"ID":        id,
	})
}

func (h *Handler) UpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseAccommodationForm(r)
	if len(errs) > 0 {
		h.render(w, r, "pages/accommodation_form.html", "Editar acomodação", map[string]any{
			"Form":   form,
			"Errors": errs,
			"ID":     id,
		})
		return
	}
	if err := h.service.UpdateAccommodation(api.RequestContext(r), id, form.Input()); err != nil {
		h.flashError(r, err, "Falha ao salvar acomodação")
	} else {
		h.flashSuccess(r, "Acomodação atualizada")
	}
	http.Redirect(w, r, "/acomodacoes", http.StatusSeeOther)
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status := AccommodationStatus(r.PostFormValue("status"))
	switch status {
	case StatusAvailable, StatusOccupied, StatusMaintenance:
	default:
		h.flashError(r, nil, "Status inválido")
		http.Redirect(w, r, "/acomodacoes", http.StatusSeeOther)
		return
	}
	if err := h.service.SetStatus(api.RequestContext(r), id, status); err != nil {
		h.flashError(r, err, "Falha ao atualizar status")
	} else {
		h.flashSuccess(r, "Status atualizado")
	}
	http.Redirect(w, r, "/acomodacoes", http.StatusSeeOther)
}

func (h *Handler) SetHousekeeping(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status := HousekeepingStatus(r.PostFormValue("status"))
	switch status {
	case HousekeepingClean, HousekeepingDirty, HousekeepingCleaning:
	default:
		h.flashError(r, nil, "Status de limpeza inválido")
		http.Redirect(w, r, "/acomodacoes", http.StatusSeeOther)
		return
	}
	if err := h.service.SetHousekeeping(api.RequestContext(r), id, status); err != nil {
		h.flashError(r, err, "Falha ao atualizar limpeza")
	} else {
		h.flashSuccess(r, "Limpeza atualizada")
	}
	http.Redirect(w, r, "/acomodacoes", http.StatusSeeOther)
}

func (h *Handler) ListRoomTypes(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	items, err := h.service.ListRoomTypes(api.RequestContext(r), propertyID)
	if err != nil {
		h.logger.Error("list room types failed", slog.Any("error", err))
		h.renderError(w, r, "Não foi possível carregar os tipos de quarto")
		return
	}
	h.render(w, r, "pages/room_types_list.html", "Tipos de quarto", map[string]any{
		"RoomTypes": items,
	})
}

func (h *Handler) NewRoomType(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/room_type_form.html", "Novo tipo de quarto", map[string]any{
		"Form":   RoomTypeForm{},
		"Errors": map[string]string{},
	})
}

func (h *Handler) CreateRoomType(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseRoomTypeForm(r)
	if len(errs) > 0 {
		h.render(w, r, "pages/room_type_form.html", "Novo tipo de quarto", map[string]any{
			"Form":   form,
			"Errors": errs,
		})
		return
	}
	if _, err := h.service.CreateRoomType(api.RequestContext(r), propertyID, form.Input()); err != nil {
		h.flashError(r, err, "Falha ao criar tipo de quarto")
		http.Redirect(w, r, "/acomodacoes/tipos/novo", http.StatusSeeOther)
		return
	}
	h.flashSuccess(r, "Tipo de quarto criado")
	http.Redirect(w, r, "/acomodacoes/tipos", http.StatusSeeOther)
}

func (h *Handler) EditRoomType(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	rt, err := h.service.GetRoomType(api.RequestContext(r), id)
	if err != nil {
		h.renderError(w, r, "Tipo de quarto não encontrado")
		return
	}
	amenities, _ := h.service.ListAmenities(api.RequestContext(r), propertyID)
	h.render(w, r, "pages/room_type_form.html", "Editar tipo de quarto", map[string]any{
		"Form": RoomTypeForm{
			Name:          rt.Name,
			OccupancyMode: string(rt.OccupancyMode),
			BaseOccupancy: rt.BaseOccupancy,
			MaxOccupancy:  rt.MaxOccupancy,
			Description:   rt.Description,
		},
		"Errors":    map[string]string{},
		"ID":        id,
		"Linked":    rt.Amenities,
		"Amenities": amenities,
	})
}

func (h *Handler) UpdateRoomType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseRoomTypeForm(r)
	if len(errs) > 0 {
		h.render(w, r, "pages/room_type_form.html", "Editar tipo de quarto", map[string]any{
			"Form":   form,
			"Errors": errs,
			"ID":     id,
		})
		return
	}
	if err := h.service.UpdateRoomType(api.RequestContext(r), id, form.Input()); err != nil {
		h.flashError(r, err, "Falha ao salvar tipo de quarto")
	} else {
		h.flashSuccess(r, "Tipo de quarto atualizado")
	}
	http.Redirect(w, r, "/acomodacoes/tipos", http.StatusSeeOther)
}

func (h *Handler) DeleteRoomType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if r.PostFormValue("confirm") != "1" {
		h.flashError(r, nil, "Confirmação necessária")
		http.Redirect(w, r, "/acomodacoes/tipos", http.StatusSeeOther)
		return
	}
	if err := h.service.DeleteRoomType(api.RequestContext(r), id); err != nil {
		h.flashError(r, err, "Falha ao excluir tipo de quarto")
	} else {
		h.flashSuccess(r, "Tipo de quarto excluído")
	}
	http.Redirect(w, r, "/acomodacoes/tipos", http.StatusSeeOther)
}

func (h *Handler) LinkAmenity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	amenityID := r.PostFormValue("amenity_id")
	if amenityID == "" {
		h.flashError(r, nil, "Selecione uma comodidade")
		http.Redirect(w, r, "/acomodacoes/tipos/"+id+"/editar", http.StatusSeeOther)
		return
	}
	if err := h.service.LinkAmenity(api.RequestContext(r), id, amenityID); err != nil {
		h.flashError(r, err, "Falha ao vincular comodidade")
	} else {
		h.flashSuccess(r, "Comodidade vinculada")
	}
	http.Redirect(w, r, "/acomodacoes/tipos/"+id+"/editar", http.StatusSeeOther)
}

func (h *Handler) UnlinkAmenity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	amenityID := chi.URLParam(r, "amenityID")
	if err := h.service.UnlinkAmenity(api.RequestContext(r), id, amenityID); err != nil {
		h.flashError(r, err, "Falha ao desvincular comodidade")
	} else {
		h.flashSuccess(r, "Comodidade desvinculada")
	}
	http.Redirect(w, r, "/acomodacoes/tipos/"+id+"/editar", http.StatusSeeOther)
}

func (h *Handler) ListAmenities(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	items, err := h.service.ListAmenities(api.RequestContext(r), propertyID)
	if err != nil {
		h.renderError(w, r, "Não foi possível carregar as comodidades")
		return
	}
	h.render(w, r, "pages/amenities_list.html", "Comodidades", map[string]any{
		"Amenities": items,
	})
}

func (h *Handler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	name := r.PostFormValue("name")
	if name == "" {
		h.flashError(r, nil, "Nome é obrigatório")
		http.Redirect(w, r, "/acomodacoes/comodidades", http.StatusSeeOther)
		return
	}
	if _, err := h.service.CreateAmenity(api.RequestContext(r), propertyID, name); err != nil {
		h.flashError(r, err, "Falha ao criar comodidade")
	} else {
		h.flashSuccess(r, "Comodidade criada")
	}
	http.Redirect(w, r, "/acomodacoes/comodidades", http.StatusSeeOther)
}

func (h *Handler) DeleteAmenity(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := h.property(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if r.PostFormValue("confirm") != "1" {
		h.flashError(r, nil, "Confirmação necessária")
		http.Redirect(w, r, "/acomodacoes/comodidades", http.StatusSeeOther)
		return
	}
	if err := h.service.DeleteAmenity(api.RequestContext(r), propertyID, id); err != nil {
		h.flashError(r, err, "Falha ao excluir comodidade")
	} else {
		h.flashSuccess(r, "Comodidade excluída")
	}
	http.Redirect(w, r, "/acomodacoes/comodidades", http.StatusSeeOther)
}

func accommodationForm(acc Accommodation) AccommodationForm {
	form := AccommodationForm{
		Code:        acc.Code,
		Name:        acc.Name,
		Floor:       acc.Floor,
		Description: acc.Description,
		Type:        string(acc.Type),
		RoomTypeID:  acc.RoomTypeID,
	}
	if acc.BaseCapacity != nil {
		form.BaseCapacity = strconv.Itoa(*acc.BaseCapacity)
	}
	if acc.MaxCapacity != nil {
		form.MaxCapacity = strconv.Itoa(*acc.MaxCapacity)
	}
	return form
}

func (h *Handler) property(w http.ResponseWriter, r *http.Request) (string, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.Property() == "" {
		shared.Flash(r.Context(), shared.FlashError, "Selecione uma pousada")
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return "", false
	}
	return sess.Property(), true
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	if err := h.templates.Page(w, r, h.csrf, name, title, data); err != nil {
		h.logger.Error("render page", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, message string) {
	if err := h.templates.Fail(w, r, h.csrf, message); err != nil {
		http.Error(w, message, http.StatusInternalServerError)
	}
}

func (h *Handler) flashSuccess(r *http.Request, message string) {
	shared.Flash(r.Context(), shared.FlashSuccess, message)
}

func (h *Handler) flashError(r *http.Request, err error, fallback string) {
	shared.Flash(r.Context(), shared.FlashError, api.UserMessage(err, fallback))
}
